// Package goroutine runs fire-and-forget work under a concurrency cap and
// lets the owner drain it on shutdown.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/phonebook/internal/pkg/stacktrace"
	"go.uber.org/atomic"
)

// DefaultMaxGoroutine is multiplied by NumCPU when no limit is configured.
const DefaultMaxGoroutine int = 100

// ErrLimitReached is reported once by Wait when any task was dropped because
// every slot was busy.
var ErrLimitReached = errors.New("goroutine: limit reached")

// Manager is safe for concurrent use. A nil *Manager silently drops tasks.
type Manager struct {
	wg   sync.WaitGroup
	sema chan struct{}

	dropped atomic.Int64

	mu     sync.Mutex
	errs   []error
	closed bool
}

func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go runs f without blocking the caller. The task is skipped when the manager
// is draining or saturated. f receives ctx detached from its cancellation so
// work scheduled by a request outlives the request.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	if g == nil {
		return
	}

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		slog.WarnContext(ctx, "goroutine manager is draining, task skipped")
		return
	}

	select {
	case g.sema <- struct{}{}:
	default:
		g.dropped.Inc()
		g.mu.Unlock()
		slog.WarnContext(ctx, "goroutine limit reached, task skipped")
		return
	}

	g.wg.Add(1)
	g.mu.Unlock()

	taskCtx := context.WithoutCancel(ctx)
	go func() {
		defer g.wg.Done()
		defer func() { <-g.sema }()
		defer g.recover(taskCtx)

		if err := f(taskCtx); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	}()
}

func (g *Manager) recover(ctx context.Context) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
		slog.ErrorContext(ctx, "panic in goroutine", "because", rvr, "stack", paths)
		return
	}
	slog.ErrorContext(ctx, "panic in goroutine", "because", rvr, "stack", string(stack))
}

// Dropped reports how many tasks were skipped because the manager was saturated.
func (g *Manager) Dropped() int64 {
	if g == nil {
		return 0
	}
	return g.dropped.Load()
}

// Wait stops accepting tasks, blocks until running ones finish and returns
// every error they produced.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	errs := g.errs
	if n := g.dropped.Load(); n > 0 {
		errs = append(errs, fmt.Errorf("%w: %d tasks dropped", ErrLimitReached, n))
	}
	return errors.Join(errs...)
}
