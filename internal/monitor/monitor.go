// Package monitor polls the execution history and announces pipeline runs
// that reach a terminal state.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/logger"
	"github.com/hochfrequenz/automation-portal/internal/notify"
)

const (
	DefaultInterval       = 15 * time.Second
	DefaultLimit          = 25
	DefaultStuckThreshold = 2 * time.Hour
)

// Source lists the most recent executions. *apiclient.ExecutionService satisfies it.
type Source interface {
	Recent(ctx context.Context, limit int) ([]domain.Execution, error)
}

// StatusStore remembers the last status seen per execution across restarts
type StatusStore interface {
	LastStatus(executionID string) (domain.StandardStatus, bool, error)
	RecordStatus(exec domain.Execution) error
}

// Options tunes a Watcher. Zero values pick the defaults above.
type Options struct {
	Interval       time.Duration
	Limit          int
	StuckThreshold time.Duration
	// Now is overridable for tests
	Now func() time.Time
}

// Transition is a status change observed between two polls
type Transition struct {
	Execution domain.Execution
	From      domain.StandardStatus // empty when first seen
	To        domain.StandardStatus
}

// Metrics counts what the watcher has observed since it started
type Metrics struct {
	Polls       int
	PollErrors  int
	Transitions int
	Notified    int
	Stuck       int
}

// Watcher polls executions and notifies on terminal transitions
type Watcher struct {
	source   Source
	store    StatusStore
	notifier notify.Notifier
	log      logger.Logger
	opts     Options

	mu      sync.RWMutex
	metrics Metrics
	stuck   map[string]bool
}

// New creates a Watcher
func New(source Source, store StatusStore, notifier notify.Notifier, log logger.Logger, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.StuckThreshold <= 0 {
		opts.StuckThreshold = DefaultStuckThreshold
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Watcher{
		source:   source,
		store:    store,
		notifier: notifier,
		log:      log,
		opts:     opts,
		stuck:    make(map[string]bool),
	}
}

// Run polls until ctx is cancelled. Poll failures are logged and retried on the next tick.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	w.log.Info("watching executions", logger.Duration("interval", w.opts.Interval))
	for {
		if _, err := w.Poll(ctx); err != nil && ctx.Err() == nil {
			w.log.Warn("poll failed", logger.Err(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Poll fetches recent executions once, records their status and notifies
// about runs that moved into a terminal state. Executions seen for the first
// time are recorded silently so a fresh store does not replay history.
func (w *Watcher) Poll(ctx context.Context) ([]Transition, error) {
	executions, err := w.source.Recent(ctx, w.opts.Limit)
	w.mu.Lock()
	w.metrics.Polls++
	if err != nil {
		w.metrics.PollErrors++
	}
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var transitions []Transition
	for _, e := range executions {
		prev, seen, err := w.store.LastStatus(e.ExecutionID)
		if err != nil {
			return transitions, err
		}
		w.checkStuck(e)
		if seen && prev == e.Status {
			continue
		}
		if err := w.store.RecordStatus(e); err != nil {
			return transitions, err
		}
		if !seen {
			continue
		}

		t := Transition{Execution: e, From: prev, To: e.Status}
		transitions = append(transitions, t)
		w.log.Debug("execution changed",
			logger.String("execution_id", e.ExecutionID),
			logger.String("from", string(prev)),
			logger.String("to", string(e.Status)),
		)
		w.count(func(m *Metrics) { m.Transitions++ })

		if !e.Status.IsTerminal() {
			continue
		}
		if err := w.notifier.Send(notify.ForExecution(e)); err != nil {
			w.log.Warn("notification failed", logger.String("execution_id", e.ExecutionID), logger.Err(err))
			continue
		}
		w.count(func(m *Metrics) { m.Notified++ })
	}
	return transitions, nil
}

// IsStuck reports whether a running execution has exceeded the stuck threshold
func (w *Watcher) IsStuck(e domain.Execution) bool {
	if e.Status != domain.StatusRunning {
		return false
	}
	started := e.StartedTime()
	if started.IsZero() {
		return false
	}
	return w.opts.Now().Sub(started) > w.opts.StuckThreshold
}

// checkStuck warns once per execution
func (w *Watcher) checkStuck(e domain.Execution) {
	if !w.IsStuck(e) {
		return
	}
	w.mu.Lock()
	already := w.stuck[e.ExecutionID]
	w.stuck[e.ExecutionID] = true
	if !already {
		w.metrics.Stuck++
	}
	w.mu.Unlock()
	if already {
		return
	}
	w.log.Warn("execution appears stuck",
		logger.String("execution_id", e.ExecutionID),
		logger.String("product", e.ProductName),
		logger.Duration("running_for", w.opts.Now().Sub(e.StartedTime())),
	)
}

func (w *Watcher) count(fn func(*Metrics)) {
	w.mu.Lock()
	fn(&w.metrics)
	w.mu.Unlock()
}

// Metrics returns a snapshot of the counters
func (w *Watcher) Metrics() Metrics {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.metrics
}
