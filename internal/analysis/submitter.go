package analysis

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/rsilvagit/jobfit/internal/logger"
	"github.com/rsilvagit/jobfit/internal/model"
)

// Submitter keeps the latest extracted posting and sends it with a resume to
// an Analyzer on demand.
type Submitter struct {
	analyzer Analyzer
	logger   *zap.Logger

	mu      sync.Mutex
	posting *model.JobPosting
}

func NewSubmitter(a Analyzer, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{analyzer: a, logger: logger}
}

// Publish captures posting for the next submission.
func (s *Submitter) Publish(_ context.Context, posting model.JobPosting) error {
	s.Capture(posting)
	return nil
}

func (s *Submitter) Capture(posting model.JobPosting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posting = &posting
}

// Posting returns the captured posting, if any.
func (s *Submitter) Posting() (model.JobPosting, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.posting == nil {
		return model.JobPosting{}, false
	}
	return *s.posting, true
}

// Submit analyzes the captured posting against resume. Analyzer failures come
// back as a Result carrying the error text; only missing inputs are errors.
func (s *Submitter) Submit(ctx context.Context, resume model.Resume) (Result, error) {
	if len(resume.Data) == 0 {
		return Result{}, ErrNoResume
	}
	posting, ok := s.Posting()
	if !ok {
		return Result{}, ErrNoPosting
	}

	result, err := s.analyzer.Analyze(ctx, resume, posting)
	if err != nil {
		s.logger.Error("analysis failed", zap.Error(err), zap.String(logger.FieldPosting, posting.Key()))
		return Result{Error: model.Some("Failed to analyze job match: " + err.Error())}, nil
	}
	return result, nil
}
