// Package output delivers extracted postings to people and downstream systems.
package output

import (
	"context"
	"errors"
	"fmt"

	"github.com/rsilvagit/jobfit/internal/model"
)

// Publisher receives a successfully extracted posting.
type Publisher interface {
	Publish(ctx context.Context, posting model.JobPosting) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, posting model.JobPosting) error

func (f PublisherFunc) Publish(ctx context.Context, posting model.JobPosting) error {
	return f(ctx, posting)
}

// Multi fans a posting out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, posting model.JobPosting) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, posting); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", p, err))
		}
	}
	return errors.Join(errs...)
}
