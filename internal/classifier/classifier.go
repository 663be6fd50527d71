// Package classifier decides from a document address alone whether the
// document is a single job posting that can be extracted.
package classifier

import "strings"

// Pattern names the address rule that made a page eligible.
type Pattern string

const (
	PatternNone       Pattern = ""
	PatternJobView    Pattern = "job_view"
	PatternDirectJob  Pattern = "direct_job"
	PatternCompanyJob Pattern = "company_job"
)

const (
	ReasonEmptyAddress = "empty_address"
	ReasonNotLinkedIn  = "not_linkedin"
	ReasonListingPage  = "listing_page"
)

const (
	segJobs       = "linkedin.com/jobs/"
	segJob        = "linkedin.com/job/"
	segCompany    = "linkedin.com/company/"
	segCompanyJob = "/jobs/"
	segView       = "/view/"
	paramJobID    = "currentJobId="
)

// Decision is the outcome of classifying an address.
type Decision struct {
	Eligible bool    `json:"eligible"`
	Pattern  Pattern `json:"pattern,omitempty"`
	Reason   string  `json:"reason"`
}

// IsEligible reports whether address points to one specific job posting.
func IsEligible(address string) bool {
	return Classify(address).Eligible
}

// Classify applies the address rules in order. Search and listing pages share
// the jobs segment but carry neither a job id nor a view segment.
func Classify(address string) Decision {
	if address == "" {
		return Decision{Reason: ReasonEmptyAddress}
	}

	specific := strings.Contains(address, paramJobID) || strings.Contains(address, segView)

	switch {
	case strings.Contains(address, segJobs) && specific:
		return Decision{Eligible: true, Pattern: PatternJobView, Reason: string(PatternJobView)}
	case strings.Contains(address, segJob):
		return Decision{Eligible: true, Pattern: PatternDirectJob, Reason: string(PatternDirectJob)}
	case strings.Contains(address, segCompany) && strings.Contains(address, segCompanyJob) && specific:
		return Decision{Eligible: true, Pattern: PatternCompanyJob, Reason: string(PatternCompanyJob)}
	}

	if !strings.Contains(address, "linkedin.com/") {
		return Decision{Reason: ReasonNotLinkedIn}
	}
	return Decision{Reason: ReasonListingPage}
}

// JobID returns the numeric posting id carried by address, or "" when it has
// none. A currentJobId parameter wins over the view segment, whose id may
// follow a title slug.
func JobID(address string) string {
	if i := strings.Index(address, paramJobID); i >= 0 {
		rest := address[i+len(paramJobID):]
		n := 0
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
		return rest[:n]
	}
	i := strings.Index(address, segView)
	if i < 0 {
		return ""
	}
	seg := address[i+len(segView):]
	if j := strings.IndexAny(seg, "/?#"); j >= 0 {
		seg = seg[:j]
	}
	n := len(seg)
	for n > 0 && isDigit(seg[n-1]) {
		n--
	}
	return seg[n:]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
