// Package live runs validation on a dedicated goroutine for editors and
// watchers that resubmit a document on every change.
//
// Submissions never block: a snapshot that has not started validating yet
// is replaced by the next one. Results for snapshots that were superseded
// while validating are dropped, so consumers only ever see diagnostics for
// the newest text.
package live

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// Snapshot is one version of a document.
type Snapshot struct {
	// Path identifies the document in updates.
	Path string

	// Text is the full document text.
	Text string

	// ChangedLines limits validation to these lines. Nil validates
	// everything.
	ChangedLines []int
}

// Update carries the diagnostics for one snapshot.
type Update struct {
	Path       string
	Generation uint64

	// ChangedLines echoes the snapshot's line filter. When non-nil,
	// Diagnostics only cover those lines.
	ChangedLines []int

	Diagnostics []lint.Diagnostic
}

// Option configures a Worker.
type Option func(*Worker)

// WithLogger sets the worker's logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// Worker validates snapshots one at a time on its own goroutine.
type Worker struct {
	checker *lint.Checker
	logger  *log.Logger

	mu      sync.Mutex
	pending *Snapshot
	latest  uint64

	wake      chan struct{}
	results   chan Update
	done      chan struct{}
	closeOnce sync.Once
}

// NewWorker creates a worker around checker. Call Run to start it.
func NewWorker(checker *lint.Checker, opts ...Option) *Worker {
	w := &Worker{
		checker: checker,
		logger:  logging.Default(),
		wake:    make(chan struct{}, 1),
		results: make(chan Update),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Submit queues snap, replacing any snapshot not yet picked up, and returns
// its generation.
func (w *Worker) Submit(snap Snapshot) uint64 {
	w.mu.Lock()
	w.latest++
	generation := w.latest
	w.pending = &snap
	w.mu.Unlock()

	w.rearm()
	return generation
}

// Results returns the channel updates are delivered on. It is closed when
// Run returns.
func (w *Worker) Results() <-chan Update {
	return w.results
}

// Close stops the worker. It is safe to call more than once.
func (w *Worker) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
	})
}

// Run processes snapshots until ctx is cancelled or Close is called.
// Results is unbuffered, so an update is only handed over while it is still
// the newest.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.results)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-w.wake:
		}

		snap, generation, ok := w.take()
		if !ok {
			continue
		}

		diags := w.checker.ValidateIncremental(snap.Text, snap.ChangedLines)

		if w.stale(generation) {
			w.logger.Debug("dropping stale result",
				logging.FieldPath, snap.Path,
				logging.FieldGeneration, generation)
			continue
		}

		update := Update{
			Path:         snap.Path,
			Generation:   generation,
			ChangedLines: snap.ChangedLines,
			Diagnostics:  diags,
		}
		if stop, err := w.deliver(ctx, update); stop {
			return err
		}
	}
}

// deliver blocks until update is received or superseded. A submission that
// arrives while waiting makes update stale; it is dropped and the wake signal
// is re-armed so Run picks up the newer snapshot. stop is true when the
// worker should exit with err.
func (w *Worker) deliver(ctx context.Context, update Update) (bool, error) {
	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case <-w.done:
			return true, nil
		case w.results <- update:
			return false, nil
		case <-w.wake:
			if w.stale(update.Generation) {
				w.logger.Debug("dropping undelivered result",
					logging.FieldPath, update.Path,
					logging.FieldGeneration, update.Generation)
				w.rearm()
				return false, nil
			}
		}
	}
}

func (w *Worker) rearm() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Worker) take() (Snapshot, uint64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return Snapshot{}, 0, false
	}
	snap := *w.pending
	w.pending = nil
	return snap, w.latest, true
}

func (w *Worker) stale(generation uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return generation != w.latest
}
