package poller

import (
	"context"
	"errors"
	"fmt"
	"notary_admin_go/logging"
	"notary_admin_go/metrics"
	"notary_admin_go/models"
	"notary_admin_go/services"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ViewDashboard is the only view that keeps the refresh loop running
const ViewDashboard = "dashboard"

var (
	ErrSessionClosed = errors.New("dashboard session closed")
	ErrStaleResponse = errors.New("stale statistics response discarded")
)

// StatsFetcher loads the current aggregate statistics
type StatsFetcher interface {
	GetStats(ctx context.Context) (models.StatSnapshot, error)
}

// RefreshResult reports the outcome of one refresh. Refresh never panics;
// failures come back with Success set to false.
type RefreshResult struct {
	Success  bool
	Error    error
	Changed  bool
	Snapshot *models.StatSnapshot
}

// PublishFunc receives every snapshot that replaces the published one
type PublishFunc func(snapshot *models.StatSnapshot)

// Session is the dashboard view's refresh state. Create one on view entry and
// call ExitView when the view goes away.
type Session struct {
	mu                sync.Mutex
	fetcher           StatsFetcher
	scheduler         *Scheduler
	interval          time.Duration
	view              string
	visible           bool
	closed            bool
	loading           bool
	generation        uint64
	published         *models.StatSnapshot
	lastPublishedHash string
	onPublish         []PublishFunc

	logger  *zap.Logger
	metrics *metrics.Metrics
}

// SessionOption configures a Session
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	logger    *zap.Logger
	metrics   *metrics.Metrics
	afterFunc AfterFunc
}

// WithSessionLogger sets the session and scheduler logger
func WithSessionLogger(logger *zap.Logger) SessionOption {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithSessionMetrics sets the metrics shared by the session and its scheduler
func WithSessionMetrics(m *metrics.Metrics) SessionOption {
	return func(c *sessionConfig) {
		c.metrics = m
	}
}

// WithSessionAfterFunc replaces the scheduler's timer source
func WithSessionAfterFunc(fn AfterFunc) SessionOption {
	return func(c *sessionConfig) {
		c.afterFunc = fn
	}
}

// NewSession creates a visible session that has not entered any view yet
func NewSession(fetcher StatsFetcher, interval time.Duration, opts ...SessionOption) *Session {
	cfg := &sessionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.NewNop()
	}
	logger := logging.OrNop(cfg.logger)

	schedulerOpts := []Option{WithLogger(logger), WithMetrics(cfg.metrics)}
	if cfg.afterFunc != nil {
		schedulerOpts = append(schedulerOpts, WithAfterFunc(cfg.afterFunc))
	}

	return &Session{
		fetcher:   fetcher,
		scheduler: NewScheduler(schedulerOpts...),
		interval:  interval,
		visible:   true,
		logger:    logger,
		metrics:   cfg.metrics,
	}
}

// OnPublish registers a callback for newly published snapshots
func (s *Session) OnPublish(fn PublishFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPublish = append(s.onPublish, fn)
}

// EnterView records the view now shown. Switching views invalidates any
// in-flight fetch, and polling only runs while the dashboard view is shown.
func (s *Session) EnterView(view string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if view != s.view {
		s.generation++
		s.view = view
	}
	return s.applyGatingLocked()
}

// SetVisible reacts to the browser tab (or terminal) becoming hidden or visible
func (s *Session) SetVisible(visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.visible = visible
	return s.applyGatingLocked()
}

// ExitView tears the session down: the timer is cancelled permanently and
// responses still in flight are discarded when they arrive.
func (s *Session) ExitView() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.generation++
	s.mu.Unlock()

	s.scheduler.Stop()
	s.scheduler.Wait()
	s.logger.Debug("Dashboard session closed")
}

func (s *Session) applyGatingLocked() error {
	onDashboard := s.view == ViewDashboard

	if onDashboard && s.scheduler.State() == StateIdle {
		if err := s.scheduler.Start(s.interval, s.tick); err != nil {
			return fmt.Errorf("failed to start polling: %w", err)
		}
	}

	if onDashboard && s.visible {
		s.scheduler.Resume()
	} else {
		s.scheduler.Pause()
	}
	return nil
}

func (s *Session) tick(ctx context.Context) error {
	result := s.Refresh(ctx, true)
	if errors.Is(result.Error, ErrStaleResponse) || errors.Is(result.Error, ErrSessionClosed) {
		return nil
	}
	return result.Error
}

// Refresh fetches statistics and publishes them when their content changed.
// A silent refresh leaves the loading indicator alone. On failure the published
// snapshot is kept and returned in the result.
func (s *Session) Refresh(ctx context.Context, silent bool) RefreshResult {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return RefreshResult{Error: ErrSessionClosed}
	}
	generation := s.generation
	if !silent {
		s.loading = true
	}
	s.mu.Unlock()

	snapshot, err := s.fetcher.GetStats(ctx)

	s.mu.Lock()
	if !silent {
		s.loading = false
	}

	if s.closed || generation != s.generation {
		published := s.published
		s.mu.Unlock()
		s.metrics.StaleResponses.Inc()
		s.logger.Debug("Discarding stale statistics response")
		return RefreshResult{Error: ErrStaleResponse, Snapshot: published}
	}

	if err != nil {
		published := s.published
		s.mu.Unlock()
		s.metrics.FetchFailures.Inc()
		s.logger.Warn("Failed to fetch dashboard statistics", zap.Error(err), zap.Bool("silent", silent))
		return RefreshResult{Error: fmt.Errorf("failed to fetch statistics: %w", err), Snapshot: published}
	}

	published, changed := services.ReconcileSnapshot(s.published, snapshot)
	var listeners []PublishFunc
	if changed {
		s.published = published
		s.lastPublishedHash = published.Hash()
		listeners = append(listeners, s.onPublish...)
	}
	s.mu.Unlock()

	if changed {
		s.metrics.SnapshotsPublished.Inc()
		s.logger.Debug("Published new statistics snapshot", zap.Int64("notaries", published.Notaries.Total))
		for _, fn := range listeners {
			fn(published)
		}
	}

	return RefreshResult{Success: true, Changed: changed, Snapshot: published}
}

// Published returns the current snapshot, nil before the first successful refresh
func (s *Session) Published() *models.StatSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.published
}

// LastPublishedHash returns the content hash of the published snapshot
func (s *Session) LastPublishedHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPublishedHash
}

// Loading reports whether a non-silent refresh is running
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsVisible reports the last visibility set on the session
func (s *Session) IsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// View returns the view currently shown
func (s *Session) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// IsActivePoll reports whether the refresh loop is currently scheduled or fetching
func (s *Session) IsActivePoll() bool {
	state := s.scheduler.State()
	return state == StateScheduled || state == StateFetching
}

// SchedulerState exposes the loop state
func (s *Session) SchedulerState() State {
	return s.scheduler.State()
}
