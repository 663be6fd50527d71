package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Placeholders stored in a JobPosting when a field could not be resolved.
// They are never valid data.
const (
	TitleNotFound    = "Job Title Not Found"
	CompanyNotFound  = "Company Not Found"
	LocationNotFound = "Location Not Found"
)

const (
	// MinDescriptionLength is the shortest description a published posting may carry.
	MinDescriptionLength = 100
	// MaxLocationLength bounds location candidates; longer text is not a location.
	MaxLocationLength = 100
)

var (
	ErrDescriptionMissing  = errors.New("no job description element found")
	ErrDescriptionTooShort = errors.New("job description too short")
)

// JobPosting is a single job posting captured from a live document.
// The JSON shape is what the scoring service consumes.
type JobPosting struct {
	Title         string        `json:"jobTitle"`
	Company       string        `json:"company"`
	Location      string        `json:"location"`
	Description   string        `json:"description"`
	SourceAddress string        `json:"url"`
	Supplementary Supplementary `json:"jobInfo"`
	ExtractedAt   time.Time     `json:"extractedAt"`
}

// IsSentinel reports whether v is one of the "not found" placeholders.
func IsSentinel(v string) bool {
	switch v {
	case TitleNotFound, CompanyNotFound, LocationNotFound:
		return true
	}
	return false
}

func (p JobPosting) HasTitle() bool    { return p.Title != "" && p.Title != TitleNotFound }
func (p JobPosting) HasCompany() bool  { return p.Company != "" && p.Company != CompanyNotFound }
func (p JobPosting) HasLocation() bool { return p.Location != "" && p.Location != LocationNotFound }

// DescriptionLength counts the description in characters, not bytes.
func (p JobPosting) DescriptionLength() int {
	return utf8.RuneCountInString(p.Description)
}

// Validate is the publish gate: a posting without a usable description is discarded.
func (p JobPosting) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return ErrDescriptionMissing
	}
	if n := p.DescriptionLength(); n < MinDescriptionLength {
		return fmt.Errorf("%w: %d characters, need at least %d", ErrDescriptionTooShort, n, MinDescriptionLength)
	}
	return nil
}

// Key returns a deduplication key for this posting.
func (p JobPosting) Key() string {
	if p.SourceAddress != "" {
		return strings.ToLower(p.SourceAddress)
	}
	return strings.ToLower(p.Title + "|" + p.Company)
}

// Supplementary carries the best-effort details found next to the required fields.
type Supplementary struct {
	WorkMode       Optional[string]
	EmploymentType Optional[string]
	CompanyDetails Optional[string]
	PostedDate     Optional[string]
	Seniority      Optional[string]
}

// Wire names of the supplementary fields.
const (
	KeyWorkMode       = "workMode"
	KeyJobType        = "jobType"
	KeyCompanyDetails = "companyDetails"
	KeyPostedDate     = "postedDate"
	KeySeniority      = "seniority"
)

// Entry is one present supplementary field.
type Entry struct {
	Key   string
	Value string
}

func (s *Supplementary) fields() []struct {
	key string
	val *Optional[string]
} {
	return []struct {
		key string
		val *Optional[string]
	}{
		{KeyWorkMode, &s.WorkMode},
		{KeyJobType, &s.EmploymentType},
		{KeyCompanyDetails, &s.CompanyDetails},
		{KeyPostedDate, &s.PostedDate},
		{KeySeniority, &s.Seniority},
	}
}

// Map returns only the present fields, keyed by their wire names.
func (s Supplementary) Map() map[string]string {
	out := make(map[string]string)
	for _, f := range s.fields() {
		if v, ok := f.val.Get(); ok {
			out[f.key] = v
		}
	}
	return out
}

// Entries returns the present fields in display order.
func (s Supplementary) Entries() []Entry {
	var out []Entry
	for _, f := range s.fields() {
		if v, ok := f.val.Get(); ok {
			out = append(out, Entry{Key: f.key, Value: v})
		}
	}
	return out
}

// Len returns the number of present fields.
func (s Supplementary) Len() int {
	return len(s.Map())
}

func (s Supplementary) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

func (s *Supplementary) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Supplementary{}
	for _, f := range s.fields() {
		if v, ok := raw[f.key]; ok {
			*f.val = Some(v)
		}
	}
	return nil
}
