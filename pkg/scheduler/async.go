package scheduler

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type envelope struct {
	ctx  context.Context
	task *Task
}

// Async runs tasks on a single background worker in the order they were
// scheduled, so writes to one document land in commit order.
type Async struct {
	handler Handler
	logger  *zap.Logger
	tasks   chan envelope
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// Make sure we conform to the interface
var _ Scheduler = (*Async)(nil)

// NewAsync starts the worker. buffer bounds how many tasks may wait.
func NewAsync(handler Handler, buffer int, logger *zap.Logger) *Async {
	a := &Async{
		handler: handler,
		logger:  logger,
		tasks:   make(chan envelope, buffer),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *Async) run() {
	defer a.wg.Done()
	for env := range a.tasks {
		if err := a.handler(env.ctx, env.task); err != nil {
			a.logger.Debug("mirror task failed",
				zap.String("task", env.task.ID),
				zap.String("path", env.task.Path.String()),
				zap.Error(err))
		}
	}
}

// Schedule hands the task to the worker. The request context is detached
// from cancellation so the write outlives the request that caused it.
func (a *Async) Schedule(ctx context.Context, task *Task) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.tasks <- envelope{ctx: context.WithoutCancel(ctx), task: task}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting tasks and waits for the queued ones to finish.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.tasks)
	}
	a.mu.Unlock()
	a.wg.Wait()
}
