// Package extractor builds a JobPosting out of a live job posting document by
// running prioritised selector chains per field.
package extractor

import (
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/rsilvagit/jobfit/internal/classifier"
	"github.com/rsilvagit/jobfit/internal/filter"
	"github.com/rsilvagit/jobfit/internal/host"
	"github.com/rsilvagit/jobfit/internal/logger"
	"github.com/rsilvagit/jobfit/internal/model"
)

// ErrPageChanged means the document no longer shows the posting the
// extraction was started for, usually after a client-side navigation.
var ErrPageChanged = errors.New("page changed since extraction was scheduled")

// Options configures an Extractor.
type Options struct {
	Logger *zap.Logger
	Now    func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Extractor reads job postings out of documents. It never mutates the document.
type Extractor struct {
	logger *zap.Logger
	now    func() time.Time
}

func New(opts Options) *Extractor {
	opts = opts.withDefaults()
	return &Extractor{logger: opts.Logger, now: opts.Now}
}

// Routine returns a host routine that extracts the posting at target. The
// document address is checked again at execution time because the page may
// have navigated since the address was classified. A redirect to another
// eligible address of the same job id is accepted.
func (e *Extractor) Routine(target string) host.Routine {
	return func(doc *goquery.Document, address string) (model.JobPosting, error) {
		if address != target && !sameJob(target, address) {
			return model.JobPosting{}, fmt.Errorf("%w: expected %s, document shows %s", ErrPageChanged, target, address)
		}
		return e.Extract(doc, address)
	}
}

func sameJob(target, address string) bool {
	id := classifier.JobID(target)
	return id != "" && classifier.IsEligible(address) && classifier.JobID(address) == id
}

// Extract builds and validates a posting from doc. Unresolved title, company
// and location become sentinels; only a missing or short description fails.
func (e *Extractor) Extract(doc *goquery.Document, address string) (model.JobPosting, error) {
	if !classifier.IsEligible(address) {
		return model.JobPosting{}, fmt.Errorf("%w: %s is not a job posting", ErrPageChanged, address)
	}

	title := e.resolve(doc, titleChain())
	company := e.resolve(doc, companyChain())
	location := e.resolve(doc, locationChain(company))

	description, err := e.description(doc)
	if err != nil {
		return model.JobPosting{}, err
	}

	posting := model.JobPosting{
		Title:         orSentinel(title, model.TitleNotFound),
		Company:       orSentinel(company, model.CompanyNotFound),
		Location:      orSentinel(location, model.LocationNotFound),
		Description:   description,
		SourceAddress: address,
		Supplementary: supplementary(doc),
		ExtractedAt:   e.now().UTC(),
	}

	if err := posting.Validate(); err != nil {
		return model.JobPosting{}, err
	}
	return posting, nil
}

func (e *Extractor) resolve(doc *goquery.Document, c Chain) string {
	m, ok := c.Resolve(doc)
	if !ok {
		e.logger.Debug("field not resolved", zap.String("field", c.Field))
		return ""
	}
	e.logger.Debug("field resolved",
		zap.String("field", c.Field),
		zap.String("selector", m.Selector),
		zap.String("text", logger.TruncateForLog(m.Text, 60)),
		zap.Int("length", runeLen(m.Text)),
	)
	return m.Text
}

func (e *Extractor) description(doc *goquery.Document) (string, error) {
	chains := descriptionChains()
	for _, c := range chains {
		if text := e.resolve(doc, c); text != "" {
			return text, nil
		}
	}

	// Nothing qualified. Report the best text the description containers
	// offered so a short description is told apart from a missing one.
	best := chains[0].Longest(doc)
	if alt := chains[1].Longest(doc); runeLen(alt) > runeLen(best) {
		best = alt
	}
	if best == "" {
		return "", model.ErrDescriptionMissing
	}
	return "", fmt.Errorf("%w: best candidate has %d characters", model.ErrDescriptionTooShort, runeLen(best))
}

func supplementary(doc *goquery.Document) model.Supplementary {
	var s model.Supplementary

	insights := filter.Classify(texts(doc, insightButtonSelector), insightCategories)
	if v, ok := insights[model.KeyWorkMode]; ok {
		s.WorkMode = model.Some(v)
	}
	if v, ok := insights[model.KeyJobType]; ok {
		s.EmploymentType = model.Some(v)
	}

	details := filter.Classify(texts(doc, companyInfoSelector), companyCategories)
	if v, ok := details[model.KeyCompanyDetails]; ok {
		s.CompanyDetails = model.Some(v)
	}

	if v, ok := first(doc, postedDateSelector); ok {
		s.PostedDate = model.Some(v)
	}
	if v, ok := first(doc, senioritySelector); ok {
		s.Seniority = model.Some(v)
	}
	return s
}

func texts(doc *goquery.Document, sel string) []string {
	var out []string
	doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
		if text := textContent(s); text != "" {
			out = append(out, text)
		}
	})
	return out
}

func first(doc *goquery.Document, sel string) (string, bool) {
	s := doc.Find(sel).First()
	if s.Length() == 0 {
		return "", false
	}
	text := textContent(s)
	return text, text != ""
}

func orSentinel(v, sentinel string) string {
	if v == "" {
		return sentinel
	}
	return v
}
