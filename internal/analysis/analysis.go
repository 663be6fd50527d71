// Package analysis submits an extracted posting together with a resume to a
// scoring service and reads back the match report.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rsilvagit/jobfit/internal/model"
)

var (
	ErrNoResume  = errors.New("please upload your resume first")
	ErrNoPosting = errors.New("please extract job details from LinkedIn first")
)

// Analyzer scores how well a resume fits a posting.
type Analyzer interface {
	Analyze(ctx context.Context, resume model.Resume, posting model.JobPosting) (Result, error)
}

// Result is the scoring service's report. Raw keeps the whole payload; the
// typed fields are filled only when the payload carries them.
type Result struct {
	Raw          json.RawMessage         `json:"raw,omitempty"`
	OverallScore model.Optional[float64] `json:"overallScore"`
	JobTitle     model.Optional[string]  `json:"jobTitle"`
	Company      model.Optional[string]  `json:"company"`
	Error        model.Optional[string]  `json:"error"`
}

// Failed reports whether the result carries an error instead of a report.
func (r Result) Failed() bool {
	return r.Error.Present
}

type payload struct {
	Error      *string `json:"error"`
	JobContext *struct {
		Title   *string `json:"title"`
		Company *string `json:"company"`
	} `json:"job_context"`
	Analysis *struct {
		OverallScore *float64 `json:"overall_score"`
	} `json:"analysis"`
}

// ParseResult reads the fields the client understands out of a report.
// Unknown fields stay available through Raw.
func ParseResult(raw []byte) (Result, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Result{}, fmt.Errorf("analysis: decoding report: %w", err)
	}
	r := Result{Raw: json.RawMessage(append([]byte(nil), raw...))}
	if p.Error != nil {
		r.Error = model.Some(*p.Error)
	}
	if p.Analysis != nil && p.Analysis.OverallScore != nil {
		r.OverallScore = model.Some(*p.Analysis.OverallScore)
	}
	if jc := p.JobContext; jc != nil {
		if jc.Title != nil {
			r.JobTitle = model.Some(*jc.Title)
		}
		if jc.Company != nil {
			r.Company = model.Some(*jc.Company)
		}
	}
	return r, nil
}

// MatchLevel names the band a score falls into.
func MatchLevel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent Match"
	case score >= 60:
		return "Good Match"
	case score >= 40:
		return "Fair Match"
	default:
		return "Poor Match"
	}
}
