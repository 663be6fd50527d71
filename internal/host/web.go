package host

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/rsilvagit/jobfit/internal/httpclient"
	"github.com/rsilvagit/jobfit/internal/model"
)

// Web is a host over a live page fetched by address. Every Execute fetches
// the page again; nothing is reused between attempts.
type Web struct {
	client  *httpclient.Client
	address string
}

func NewWeb(client *httpclient.Client, address string) *Web {
	return &Web{client: client, address: address}
}

func (w *Web) Address(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return w.address, nil
}

func (w *Web) Execute(ctx context.Context, routine Routine) (model.JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.address, nil)
	if err != nil {
		return model.JobPosting{}, fmt.Errorf("host: building request: %w", err)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return model.JobPosting{}, err
		}
		return model.JobPosting{}, fmt.Errorf("%w: %v", ErrTargetUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return model.JobPosting{}, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return model.JobPosting{}, fmt.Errorf("host: parsing HTML: %w", err)
	}

	// Redirects land on the final address; the routine decides whether that
	// is still the posting it was scheduled for.
	return routine(doc, resp.Request.URL.String())
}

func statusError(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrPermissionDenied, status)
	case status == http.StatusNotFound || status == http.StatusGone:
		return fmt.Errorf("%w: status %d", ErrTargetUnavailable, status)
	case status < 200 || status >= 300:
		return fmt.Errorf("host: unexpected status %d", status)
	}
	return nil
}
