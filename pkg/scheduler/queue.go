package scheduler

import (
	"context"
	"errors"
	"sync"
)

// Queue holds tasks until Flush is called. Useful wherever the caller wants
// to decide when remote writes happen.
type Queue struct {
	mu      sync.Mutex
	tasks   []*Task
	handler Handler
}

// Make sure we conform to the interface
var _ Scheduler = (*Queue)(nil)

func NewQueue(handler Handler) *Queue {
	return &Queue{handler: handler}
}

func (q *Queue) Schedule(_ context.Context, task *Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Pending returns a copy of the pending tasks in order.
func (q *Queue) Pending() []*Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*Task(nil), q.tasks...)
}

// Flush runs every pending task in FIFO order. A failing task does not stop
// the ones behind it; all failures are joined into the returned error.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	var errs []error
	for _, task := range tasks {
		if err := q.handler(ctx, task); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
