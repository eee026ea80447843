package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/chris/topup-storefront/pkg/storage"
)

// Op is the kind of remote write a task performs.
type Op string

const (
	OpPut   Op = "put"
	OpPatch Op = "patch"
)

// Task is one deferred remote write. It is JSON serialisable so it can
// cross a queue.
type Task struct {
	ID         string          `json:"id"`
	Op         Op              `json:"op"`
	Path       storage.DocPath `json:"path"`
	Value      any             `json:"value,omitempty"`
	Fields     map[string]any  `json:"fields,omitempty"`
	Context    string          `json:"context"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

// Scheduler defines the interface for a component that runs remote writes
// after the local commit has returned.
type Scheduler interface {
	// Schedule enqueues a task. It must not wait for the task to run.
	Schedule(ctx context.Context, task *Task) error
}

// Handler executes a task.
type Handler func(ctx context.Context, task *Task) error

var (
	// ErrClosed is returned when scheduling on a stopped scheduler.
	ErrClosed = errors.New("scheduler closed")
	// ErrQueueFull is returned when the in-process buffer has no room.
	ErrQueueFull = errors.New("scheduler queue full")
)
