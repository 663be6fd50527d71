package extractor

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/rsilvagit/jobfit/internal/model"
)

const jobAddress = "https://www.linkedin.com/jobs/view/3912345678/"

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return New(Options{Now: func() time.Time { return fixedNow }})
}

func mustDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + body + "</body></html>"))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

// text returns exactly n characters starting with prefix.
func text(prefix string, n int) string {
	if len(prefix) >= n {
		return prefix[:n]
	}
	return prefix + strings.Repeat("x", n-len(prefix))
}

func TestExtractEndToEnd(t *testing.T) {
	desc := text("Key requirements: ", 600)
	doc := mustDoc(t, `
		<h1 class="t-24 t-bold inline"><a href="#"> </a></h1>
		<div class="job-details-jobs-unified-top-card__job-title"> Senior Engineer </div>
		<div class="jobs-box__html-content">`+desc+`</div>`)

	p, err := newTestExtractor().Extract(doc, jobAddress)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if p.Title != "Senior Engineer" {
		t.Fatalf("expected title from second selector, got %q", p.Title)
	}
	if p.Company != model.CompanyNotFound {
		t.Fatalf("expected company sentinel, got %q", p.Company)
	}
	if p.Location != model.LocationNotFound {
		t.Fatalf("expected location sentinel, got %q", p.Location)
	}
	if p.Description != desc {
		t.Fatalf("unexpected description %q", p.Description)
	}
	if p.SourceAddress != jobAddress {
		t.Fatalf("unexpected source address %q", p.SourceAddress)
	}
	if !p.ExtractedAt.Equal(fixedNow) {
		t.Fatalf("unexpected extraction time %v", p.ExtractedAt)
	}
}

func TestExtractDescriptionFromThirdSelector(t *testing.T) {
	desc := text("About the role. ", 250)
	doc := mustDoc(t, `
		<div class="jobs-description__content">`+desc+`</div>`)

	p, err := newTestExtractor().Extract(doc, jobAddress)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := p.DescriptionLength(); got != 250 {
		t.Fatalf("expected 250 characters, got %d", got)
	}
}

func TestExtractDescriptionTooShort(t *testing.T) {
	doc := mustDoc(t, `
		<h1 class="jobs-unified-top-card__job-title">Engineer</h1>
		<div class="jobs-box__html-content">`+text("Short blurb. ", 80)+`</div>`)

	_, err := newTestExtractor().Extract(doc, jobAddress)
	if !errors.Is(err, model.ErrDescriptionTooShort) {
		t.Fatalf("expected ErrDescriptionTooShort, got %v", err)
	}
	if !strings.Contains(err.Error(), "80 characters") {
		t.Fatalf("expected length in error, got %q", err)
	}
}

func TestExtractDescriptionMissing(t *testing.T) {
	doc := mustDoc(t, `
		<h1 class="jobs-unified-top-card__job-title">Engineer</h1>
		<section>`+text("Cookie policy. ", 700)+`</section>`)

	_, err := newTestExtractor().Extract(doc, jobAddress)
	if !errors.Is(err, model.ErrDescriptionMissing) {
		t.Fatalf("expected ErrDescriptionMissing, got %v", err)
	}
}

func TestExtractDescriptionSecondaryScan(t *testing.T) {
	desc := text("What you will do. ", 300)
	doc := mustDoc(t, `
		<div class="job-description">Apply now</div>
		<div class="job-description">`+desc+`</div>`)

	p, err := newTestExtractor().Extract(doc, jobAddress)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if p.Description != desc {
		t.Fatalf("expected the second content element, got %q", p.Description)
	}
}

func TestExtractDescriptionLastResort(t *testing.T) {
	desc := text("Your responsibilities include ", 650)
	doc := mustDoc(t, `
		<section>Navigation</section>
		<section>`+desc+`</section>`)

	p, err := newTestExtractor().Extract(doc, jobAddress)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if p.Description != desc {
		t.Fatalf("expected last-resort block, got %q", p.Description)
	}
}

func TestExtractLocationSkipsCompanyDuplicate(t *testing.T) {
	doc := mustDoc(t, `
		<div class="job-details-jobs-unified-top-card__company-name"><a>Acme Corp</a></div>
		<span class="tvm__text tvm__text--low-emphasis">Acme Corp</span>
		<span class="jobs-unified-top-card__bullet">Berlin, Germany</span>
		<div class="jobs-box__html-content">`+text("Requirements: ", 300)+`</div>`)

	p, err := newTestExtractor().Extract(doc, jobAddress)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if p.Company != "Acme Corp" {
		t.Fatalf("unexpected company %q", p.Company)
	}
	if p.Location != "Berlin, Germany" {
		t.Fatalf("expected location from next candidate, got %q", p.Location)
	}
}

func TestExtractLocationRejectsLongText(t *testing.T) {
	doc := mustDoc(t, `
		<span class="tvm__text tvm__text--low-emphasis">`+text("Somewhere ", 100)+`</span>
		<div class="jobs-box__html-content">`+text("Requirements: ", 300)+`</div>`)

	p, err := newTestExtractor().Extract(doc, jobAddress)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if p.Location != model.LocationNotFound {
		t.Fatalf("expected location sentinel, got %q", p.Location)
	}
}

func TestExtractSupplementary(t *testing.T) {
	doc := mustDoc(t, `
		<div class="job-details-fit-level-preferences">
			<button>Remote</button>
			<button>Full-time</button>
			<button>Matches your job preferences</button>
		</div>
		<div class="jobs-company__box"><span class="t-14">501-1,000 employees</span></div>
		<div class="jobs-unified-top-card__subtitle-secondary-grouping"><span class="t-14">2 weeks ago</span></div>
		<div class="jobs-box__html-content">`+text("Requirements: ", 300)+`</div>`)

	p, err := newTestExtractor().Extract(doc, jobAddress)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	s := p.Supplementary
	if v, _ := s.WorkMode.Get(); v != "Remote" {
		t.Fatalf("unexpected work mode %+v", s.WorkMode)
	}
	if v, _ := s.EmploymentType.Get(); v != "Full-time" {
		t.Fatalf("unexpected employment type %+v", s.EmploymentType)
	}
	if v, _ := s.CompanyDetails.Get(); v != "501-1,000 employees" {
		t.Fatalf("unexpected company details %+v", s.CompanyDetails)
	}
	if v, _ := s.PostedDate.Get(); v != "2 weeks ago" {
		t.Fatalf("unexpected posted date %+v", s.PostedDate)
	}
	if s.Seniority.Present {
		t.Fatalf("seniority must be absent, got %+v", s.Seniority)
	}
}

func TestExtractRejectsIneligibleAddress(t *testing.T) {
	doc := mustDoc(t, `<div class="jobs-box__html-content">`+text("Requirements: ", 300)+`</div>`)

	_, err := newTestExtractor().Extract(doc, "https://www.linkedin.com/jobs/search/?keywords=go")
	if !errors.Is(err, ErrPageChanged) {
		t.Fatalf("expected ErrPageChanged, got %v", err)
	}
}

func TestRoutineDetectsNavigation(t *testing.T) {
	doc := mustDoc(t, `<div class="jobs-box__html-content">`+text("Requirements: ", 300)+`</div>`)
	routine := newTestExtractor().Routine(jobAddress)

	if _, err := routine(doc, "https://www.linkedin.com/jobs/view/1/"); !errors.Is(err, ErrPageChanged) {
		t.Fatalf("expected ErrPageChanged, got %v", err)
	}
	if _, err := routine(doc, jobAddress); err != nil {
		t.Fatalf("expected extraction at target address, got %v", err)
	}
}

func TestRoutineFollowsRedirectForSameJob(t *testing.T) {
	doc := mustDoc(t, `<div class="jobs-box__html-content">`+text("Requirements: ", 300)+`</div>`)
	routine := newTestExtractor().Routine(jobAddress)

	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"slug url", "https://www.linkedin.com/jobs/view/senior-engineer-at-acme-3912345678/", false},
		{"tracking query", "https://www.linkedin.com/jobs/view/3912345678/?trk=public_jobs", false},
		{"other job slug", "https://www.linkedin.com/jobs/view/senior-engineer-at-acme-4000000001/", true},
		{"login wall", "https://www.linkedin.com/authwall?trk=3912345678", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posting, err := routine(doc, tt.address)
			if tt.wantErr {
				if !errors.Is(err, ErrPageChanged) {
					t.Fatalf("expected ErrPageChanged, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if posting.SourceAddress != tt.address {
				t.Fatalf("SourceAddress = %q, want %q", posting.SourceAddress, tt.address)
			}
		})
	}
}

func TestChainResolveSkipsEmptyAndRejected(t *testing.T) {
	doc := mustDoc(t, `
		<p class="a"></p>
		<p class="b">no</p>
		<p class="c">yes please</p>`)

	c := Chain{
		Field:    "test",
		Locators: []Locator{Query(".a"), Query(".missing"), Query(".b"), Query(".c")},
		Accept:   func(s string) bool { return len(s) > 2 },
	}

	m, ok := c.Resolve(doc)
	if !ok {
		t.Fatalf("expected a match")
	}
	if m.Text != "yes please" || m.Selector != ".c" {
		t.Fatalf("unexpected match %+v", m)
	}
	if got := c.Longest(doc); got != "yes please" {
		t.Fatalf("unexpected longest %q", got)
	}
}
