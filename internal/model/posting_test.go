package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		desc    string
		wantErr error
	}{
		{name: "empty", desc: "", wantErr: ErrDescriptionMissing},
		{name: "whitespace only", desc: "   \n\t", wantErr: ErrDescriptionMissing},
		{name: "too short", desc: strings.Repeat("a", 99), wantErr: ErrDescriptionTooShort},
		{name: "exactly the floor", desc: strings.Repeat("a", 100)},
		{name: "multibyte counted as characters", desc: strings.Repeat("é", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := JobPosting{Description: tt.desc}.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected valid posting, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	p := JobPosting{Title: TitleNotFound, Company: "Acme", Location: LocationNotFound}
	if p.HasTitle() {
		t.Fatalf("sentinel title must not count as found")
	}
	if !p.HasCompany() {
		t.Fatalf("expected company to be found")
	}
	if p.HasLocation() {
		t.Fatalf("sentinel location must not count as found")
	}
	if !IsSentinel(CompanyNotFound) || IsSentinel("Acme") {
		t.Fatalf("IsSentinel misclassified values")
	}
}

func TestJobPostingJSONShape(t *testing.T) {
	p := JobPosting{
		Title:         "Senior Engineer",
		Company:       "Acme",
		Location:      "Berlin",
		Description:   "desc",
		SourceAddress: "https://www.linkedin.com/jobs/view/1",
		Supplementary: Supplementary{WorkMode: Some("Remote")},
		ExtractedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"jobTitle", "company", "location", "description", "url", "jobInfo", "extractedAt"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("expected key %q in %s", key, data)
		}
	}
	info := raw["jobInfo"].(map[string]any)
	if len(info) != 1 || info["workMode"] != "Remote" {
		t.Fatalf("expected only workMode in jobInfo, got %v", info)
	}
	if raw["extractedAt"] != "2025-01-02T03:04:05Z" {
		t.Fatalf("unexpected timestamp %v", raw["extractedAt"])
	}
}

func TestSupplementaryRoundTripKeepsAbsence(t *testing.T) {
	var s Supplementary
	if err := json.Unmarshal([]byte(`{"jobType":"Full-time","seniority":"Mid-Senior level"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := s.EmploymentType.Get(); !ok || v != "Full-time" {
		t.Fatalf("expected employment type, got %+v", s.EmploymentType)
	}
	if s.WorkMode.Present {
		t.Fatalf("work mode must stay absent")
	}
	if got := s.Seniority.OrElse("n/a"); got != "Mid-Senior level" {
		t.Fatalf("unexpected seniority %q", got)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 present fields, got %d", s.Len())
	}
}
