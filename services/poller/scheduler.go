// Package poller runs the dashboard's silent statistics refresh loop.
//
// A Scheduler owns one timer and fires a tick callback every interval while it is
// scheduled. A Session binds a scheduler to a dashboard view: it starts polling when
// the dashboard view is entered, pauses while the view is hidden or another view is
// shown, and stops for good when the view is exited.
package poller

import (
	"context"
	"errors"
	"notary_admin_go/logging"
	"notary_admin_go/metrics"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the polling loop state
type State string

const (
	StateIdle      State = "idle"
	StateScheduled State = "scheduled"
	StateFetching  State = "fetching"
	StatePaused    State = "paused"
	StateStopped   State = "stopped"
)

var allStates = []string{
	string(StateIdle), string(StateScheduled), string(StateFetching), string(StatePaused), string(StateStopped),
}

var (
	ErrAlreadyStarted  = errors.New("scheduler already started")
	ErrInvalidInterval = errors.New("poll interval must be positive")
	ErrNilTick         = errors.New("tick callback is required")
)

// Timer is the part of *time.Timer the scheduler relies on
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d
type AfterFunc func(d time.Duration, f func()) Timer

// TickFunc is called on every tick. Errors are logged and never stop the loop.
type TickFunc func(ctx context.Context) error

type fetchState int

const (
	fetchIdle fetchState = iota
	fetchRunning
)

// Scheduler fires a tick callback every interval, one callback at a time
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	onTick   TickFunc
	state    State
	fetch    fetchState
	timer    Timer
	seq      uint64 // identifies the live timer; stale timer callbacks are ignored
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	afterFunc AfterFunc
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithAfterFunc replaces the timer source, mainly for tests
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Scheduler) {
		s.afterFunc = fn
	}
}

// WithLogger sets the scheduler logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logging.OrNop(logger)
	}
}

// WithMetrics sets the metrics the scheduler reports to
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewScheduler creates an idle scheduler
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		state: StateIdle,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		logger:  zap.NewNop(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the loop. The first tick fires one full interval from now.
func (s *Scheduler) Start(interval time.Duration, onTick TickFunc) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	if onTick == nil {
		return ErrNilTick
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return ErrAlreadyStarted
	}

	s.interval = interval
	s.onTick = onTick
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.setStateLocked(StateScheduled)
	s.scheduleLocked()

	s.logger.Debug("Polling started", zap.Duration("interval", interval))
	return nil
}

// Pause cancels the pending timer. No tick fires until Resume.
// A callback already running is left to finish.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateScheduled {
		return
	}
	s.cancelTimerLocked()
	s.setStateLocked(StatePaused)
	s.logger.Debug("Polling paused")
}

// Resume reschedules a full interval. There is no catch-up tick.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaused {
		return
	}
	s.setStateLocked(StateScheduled)
	s.scheduleLocked()
	s.logger.Debug("Polling resumed")
}

// Stop cancels the loop permanently and cancels the context handed to callbacks.
// It does not wait for a running callback; use Wait for that.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStopped {
		return
	}
	s.cancelTimerLocked()
	if s.cancel != nil {
		s.cancel()
	}
	s.setStateLocked(StateStopped)
	s.logger.Debug("Polling stopped")
}

// Wait blocks until no tick callback is running
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// State returns the current loop state. A scheduled loop with a callback
// running reports StateFetching.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentStateLocked()
}

// InFlight reports whether a tick callback is running
func (s *Scheduler) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetch == fetchRunning
}

func (s *Scheduler) currentStateLocked() State {
	if s.state == StateScheduled && s.fetch == fetchRunning {
		return StateFetching
	}
	return s.state
}

func (s *Scheduler) setStateLocked(state State) {
	s.state = state
	s.metrics.SetSchedulerState(string(s.currentStateLocked()), allStates)
}

func (s *Scheduler) scheduleLocked() {
	s.seq++
	seq := s.seq
	s.timer = s.afterFunc(s.interval, func() { s.fire(seq) })
}

func (s *Scheduler) cancelTimerLocked() {
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) fire(seq uint64) {
	s.mu.Lock()
	if s.state != StateScheduled || seq != s.seq {
		s.mu.Unlock()
		return
	}

	// The next tick is scheduled without waiting for this one's callback
	s.scheduleLocked()

	if s.fetch == fetchRunning {
		s.metrics.PollTicksSkipped.Inc()
		s.logger.Debug("Previous refresh still in flight, skipping tick")
		s.mu.Unlock()
		return
	}

	s.fetch = fetchRunning
	s.metrics.SetSchedulerState(string(StateFetching), allStates)
	s.metrics.PollTicks.Inc()
	ctx, onTick := s.ctx, s.onTick
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(ctx, onTick)
}

func (s *Scheduler) run(ctx context.Context, onTick TickFunc) {
	defer s.wg.Done()

	if err := onTick(ctx); err != nil {
		s.logger.Warn("Silent refresh failed, waiting for next tick", zap.Error(err))
	}

	s.mu.Lock()
	s.fetch = fetchIdle
	s.metrics.SetSchedulerState(string(s.currentStateLocked()), allStates)
	s.mu.Unlock()
}
