package host

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/rsilvagit/jobfit/internal/model"
)

// Snapshot is a host over an already-rendered document held in memory, as
// pushed by a browser surface or read from a saved page.
type Snapshot struct {
	mu      sync.RWMutex
	address string
	doc     *goquery.Document
	closed  bool
}

// NewSnapshot parses the document read from r and serves it at address.
func NewSnapshot(address string, r io.Reader) (*Snapshot, error) {
	doc, err := parse(r)
	if err != nil {
		return nil, err
	}
	return &Snapshot{address: address, doc: doc}, nil
}

// Navigate replaces the document, as a client-side navigation would.
func (s *Snapshot) Navigate(address string, r io.Reader) error {
	doc, err := parse(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.address = address
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// Close detaches the document; later calls fail with ErrTargetUnavailable.
func (s *Snapshot) Close() {
	s.mu.Lock()
	s.closed = true
	s.doc = nil
	s.mu.Unlock()
}

func (s *Snapshot) Address(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", ErrTargetUnavailable
	}
	return s.address, nil
}

func (s *Snapshot) Execute(ctx context.Context, routine Routine) (model.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return model.JobPosting{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.JobPosting{}, ErrTargetUnavailable
	}
	return routine(s.doc, s.address)
}

func parse(r io.Reader) (*goquery.Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("host: parsing HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(node), nil
}
