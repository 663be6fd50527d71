package session

import (
	"errors"
	"fmt"

	"github.com/rsilvagit/jobfit/internal/extractor"
	"github.com/rsilvagit/jobfit/internal/host"
	"github.com/rsilvagit/jobfit/internal/model"
)

// Kind groups failures by what the user can do about them.
type Kind string

const (
	KindIneligible         Kind = "ineligible"
	KindMissingDescription Kind = "missing_description"
	KindShortDescription   Kind = "short_description"
	KindPermission         Kind = "permission"
	KindNavigation         Kind = "navigation"
	KindExecution          Kind = "execution"
)

const (
	msgIneligible = "Please navigate to a specific LinkedIn job posting page (with job description) to extract job details."
	msgListing    = " The current page appears to be a general jobs listing."
	msgRetryHint  = " Try refreshing the page and extracting again."
	msgFailed     = "Failed to extract job details. "
)

// Failure is the recorded reason a session ended in the error state.
type Failure struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// ClassifyError maps an extraction error to its Kind.
func ClassifyError(err error) Kind {
	switch {
	case errors.Is(err, model.ErrDescriptionMissing):
		return KindMissingDescription
	case errors.Is(err, model.ErrDescriptionTooShort):
		return KindShortDescription
	case errors.Is(err, host.ErrPermissionDenied):
		return KindPermission
	case errors.Is(err, host.ErrTargetUnavailable), errors.Is(err, extractor.ErrPageChanged):
		return KindNavigation
	default:
		return KindExecution
	}
}

func ineligible(address string, retried bool) *Failure {
	msg := msgIneligible
	if retried {
		msg += msgListing
	}
	return &Failure{
		Kind:    KindIneligible,
		Message: msg,
		Err:     fmt.Errorf("address %q is not a specific job posting", address),
	}
}

func newFailure(err error) *Failure {
	kind := ClassifyError(err)
	var msg string
	switch kind {
	case KindMissingDescription:
		msg = "Could not find a job description on this page. Please ensure you are on a LinkedIn job posting page with a complete job description." + msgRetryHint
	case KindShortDescription:
		msg = "The job description on this page is too short to analyze (" + err.Error() + ")." + msgRetryHint
	case KindPermission:
		msg = msgFailed + "Please ensure you have permission to access this page and try again."
	case KindNavigation:
		msg = msgFailed + "Please refresh the page and try again."
	default:
		msg = fmt.Sprintf("%sError: %s. Please try again.", msgFailed, err)
	}
	return &Failure{Kind: kind, Message: msg, Err: err}
}
