package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rsilvagit/jobfit/internal/classifier"
	"github.com/rsilvagit/jobfit/internal/host"
	"github.com/rsilvagit/jobfit/internal/logger"
	"github.com/rsilvagit/jobfit/internal/model"
)

const (
	DefaultSettleDelay = time.Second
	DefaultRetryDelay  = 100 * time.Millisecond
)

var (
	ErrAttemptInProgress = errors.New("an extraction attempt is already in progress")
	ErrClosed            = errors.New("session closed")
	// ErrStale is returned by Open and Retry when the attempt was superseded
	// by a navigation, a newer Open or Close before its result arrived.
	ErrStale = errors.New("extraction result discarded")
)

// Extractor hands out host routines bound to the address they were
// scheduled for.
type Extractor interface {
	Routine(target string) host.Routine
}

// Publisher receives every successfully extracted posting.
type Publisher interface {
	Publish(ctx context.Context, posting model.JobPosting) error
}

type Options struct {
	SettleDelay time.Duration
	RetryDelay  time.Duration
	Publisher   Publisher
	Logger      *zap.Logger
	// Sleep waits for d or until ctx is done. Defaults to a timer wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Sleep == nil {
		o.Sleep = wait
	}
	return o
}

// Session runs extraction attempts against one host surface. At most one
// attempt runs at a time; results of superseded attempts never reach the state.
type Session struct {
	host      host.Host
	extractor Extractor
	publisher Publisher
	logger    *zap.Logger
	settle    time.Duration
	retry     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error

	mu         sync.Mutex
	state      State
	address    string
	failure    *Failure
	posting    *model.JobPosting
	generation uint64
	inFlight   bool
	closed     bool
	// cancel and done belong to the latest attempt, which may have been
	// abandoned but still be running.
	cancel context.CancelFunc
	done   chan struct{}
}

// Snapshot is a point-in-time copy of a session for presentation.
type Snapshot struct {
	State    State             `json:"state"`
	Address  string            `json:"address"`
	Posting  *model.JobPosting `json:"posting,omitempty"`
	Failure  *Failure          `json:"failure,omitempty"`
	InFlight bool              `json:"inFlight"`
}

// attempt tags one run with the generation and address it was started for.
type attempt struct {
	id         string
	generation uint64
	address    string
}

func New(h host.Host, ex Extractor, opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		host:      h,
		extractor: ex,
		publisher: opts.Publisher,
		logger:    opts.Logger,
		settle:    opts.SettleDelay,
		retry:     opts.RetryDelay,
		sleep:     opts.Sleep,
		state:     StateIdle,
	}
}

// Open starts a fresh lifecycle: everything is reset, the address is read and
// classified, and eligible pages are extracted after the settle delay. A
// previous attempt is cancelled and Open waits for it to return.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	s.resetLocked()
	prev := s.done
	s.mu.Unlock()
	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	if s.runningLocked() {
		s.mu.Unlock()
		return ErrAttemptInProgress
	}
	s.closed = false
	s.resetLocked()
	actx, gen, end := s.beginLocked(ctx)
	s.mu.Unlock()
	defer end()

	return s.run(actx, gen, 0, s.settle, false)
}

// Retry clears the last result and runs the pipeline again from the address
// read. It is refused while an attempt is in flight or an abandoned one has
// not returned yet.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.inFlight || s.runningLocked() || s.state == StateExtracting {
		s.mu.Unlock()
		return ErrAttemptInProgress
	}
	s.state = StateIdle
	s.failure = nil
	s.posting = nil
	actx, gen, end := s.beginLocked(ctx)
	s.mu.Unlock()
	defer end()

	return s.run(actx, gen, s.retry, 0, true)
}

// Observe records the address the host currently shows. Moving away while an
// attempt is in flight cancels it and returns the session to idle.
func (s *Session) Observe(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if address == s.address {
		return
	}
	s.logger.Debug("host navigated", zap.String("from", s.address), zap.String("to", address))
	s.address = address
	if s.inFlight {
		s.resetLocked()
		s.address = address
	}
}

// Close cancels any pending attempt. Later results are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.closed = true
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		State:    s.state,
		Address:  s.address,
		InFlight: s.inFlight,
	}
	if s.posting != nil {
		p := *s.posting
		snap.Posting = &p
	}
	if s.failure != nil {
		f := *s.failure
		snap.Failure = &f
	}
	return snap
}

func (s *Session) resetLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.state = StateIdle
	s.address = ""
	s.failure = nil
	s.posting = nil
	s.inFlight = false
}

// beginLocked starts an attempt of the current generation. The returned end
// func must be called once the attempt has returned.
func (s *Session) beginLocked(ctx context.Context) (context.Context, uint64, func()) {
	actx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.inFlight = true
	return actx, s.generation, func() {
		cancel()
		close(done)
	}
}

func (s *Session) runningLocked() bool {
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *Session) run(ctx context.Context, gen uint64, delay, settle time.Duration, retried bool) error {
	if err := s.sleep(ctx, delay); err != nil {
		return s.fail(attempt{generation: gen}, err)
	}

	address, err := s.host.Address(ctx)
	if err != nil {
		return s.fail(attempt{generation: gen}, err)
	}

	a := attempt{id: uuid.NewString(), generation: gen, address: address}
	log := s.logger.With(zap.String(logger.FieldAttempt, a.id), zap.String(logger.FieldAddress, address))

	s.mu.Lock()
	if !s.currentLocked(a.generation) {
		s.mu.Unlock()
		return ErrStale
	}
	s.address = address
	s.mu.Unlock()

	if decision := classifier.Classify(address); !decision.Eligible {
		log.Info("page not eligible for extraction", zap.String("reason", string(decision.Reason)))
		return s.finish(a, nil, ineligible(address, retried))
	}

	if err := s.sleep(ctx, settle); err != nil {
		return s.fail(a, err)
	}

	s.mu.Lock()
	if !s.currentLocked(a.generation) || s.address != a.address {
		s.mu.Unlock()
		return ErrStale
	}
	s.state = StateExtracting
	s.mu.Unlock()

	log.Info("extracting job posting")
	start := time.Now()
	posting, err := s.host.Execute(ctx, s.extractor.Routine(address))
	if err != nil {
		log.Warn("extraction failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return s.fail(a, err)
	}
	log.Info("job posting extracted",
		zap.String("title", posting.Title),
		zap.String("company", posting.Company),
		zap.Int("description_length", posting.DescriptionLength()),
		zap.Duration("elapsed", time.Since(start)),
	)
	if err := s.finish(a, &posting, nil); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, posting); err != nil {
			log.Error("publishing posting failed", zap.Error(err))
		}
	}
	return nil
}

func (s *Session) fail(a attempt, err error) error {
	return s.finish(a, nil, newFailure(err))
}

// finish applies the outcome of a if it is still current. A nil failure means
// success with posting.
func (s *Session) finish(a attempt, posting *model.JobPosting, failure *Failure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(a.generation) || (a.address != "" && s.address != a.address) {
		s.logger.Debug("discarding stale result", zap.String(logger.FieldAttempt, a.id))
		return ErrStale
	}

	next := StateSuccess
	if failure != nil {
		next = StateError
	}
	if !CanTransition(s.state, next) {
		s.logger.Warn("unexpected session transition",
			zap.String("from", string(s.state)), zap.String("to", string(next)))
	}
	s.state = next
	s.inFlight = false
	s.posting = posting
	s.failure = failure
	if failure != nil {
		return failure
	}
	return nil
}

func (s *Session) currentLocked(gen uint64) bool {
	return gen == s.generation && !s.closed
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
