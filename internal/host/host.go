// Package host is the boundary to the environment that owns the live
// document: it reports the current address and runs extraction routines
// against the document.
package host

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/rsilvagit/jobfit/internal/model"
)

var (
	// ErrPermissionDenied means the host refused access to the document.
	ErrPermissionDenied = errors.New("cannot access document: permission denied")
	// ErrTargetUnavailable means the document or its tab is gone.
	ErrTargetUnavailable = errors.New("target document unavailable")
)

// Routine runs against the document as it is at execution time. address is
// the document's address at that moment, which may differ from the one
// observed earlier.
type Routine func(doc *goquery.Document, address string) (model.JobPosting, error)

// Host defines the capability every document source must provide.
type Host interface {
	// Address returns the current document's address.
	Address(ctx context.Context) (string, error)

	// Execute runs routine against the current document and returns its result.
	Execute(ctx context.Context, routine Routine) (model.JobPosting, error)
}
