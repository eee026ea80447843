package cloudsync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chris/topup-storefront/pkg/clock"
	"github.com/chris/topup-storefront/pkg/scheduler"
	"github.com/chris/topup-storefront/pkg/storage"
	"github.com/google/uuid"
)

// Mirror enqueues remote writes for changes already committed locally.
// Nothing is enqueued while sync is off.
type Mirror struct {
	scheduler scheduler.Scheduler
	health    *Health
	clock     clock.Clock
}

func NewMirror(s scheduler.Scheduler, health *Health, clk clock.Clock) *Mirror {
	return &Mirror{scheduler: s, health: health, clock: clk}
}

// Put schedules a whole-document upsert.
func (m *Mirror) Put(ctx context.Context, path storage.DocPath, value any, op string) {
	m.enqueue(ctx, &scheduler.Task{Op: scheduler.OpPut, Path: path, Value: value, Context: op})
}

// Patch schedules a partial update of an existing document.
func (m *Mirror) Patch(ctx context.Context, path storage.DocPath, fields map[string]any, op string) {
	m.enqueue(ctx, &scheduler.Task{Op: scheduler.OpPatch, Path: path, Fields: fields, Context: op})
}

func (m *Mirror) enqueue(ctx context.Context, task *scheduler.Task) {
	if !m.health.Healthy() {
		return
	}
	task.ID = uuid.New().String()
	task.EnqueuedAt = m.clock.Now()
	if err := m.scheduler.Schedule(ctx, task); err != nil {
		m.health.Observe("enqueue "+task.Context, err)
	}
}

// Applier executes mirror tasks against a document writer.
type Applier struct {
	writer storage.DocumentWriter
}

func NewApplier(writer storage.DocumentWriter) *Applier {
	return &Applier{writer: writer}
}

// Apply performs the task's write. It is the scheduler.Handler for every scheduler.
func (a *Applier) Apply(ctx context.Context, task *scheduler.Task) error {
	switch task.Op {
	case scheduler.OpPut:
		value, err := recordValue(task)
		if err != nil {
			return err
		}
		return a.writer.PutDocument(ctx, task.Path, value)
	case scheduler.OpPatch:
		return a.writer.PatchDocument(ctx, task.Path, task.Fields)
	}
	return fmt.Errorf("failed to apply task %s: unknown op %q", task.ID, task.Op)
}

// recordValue restores the typed record of a task that crossed a queue as JSON.
func recordValue(task *scheduler.Task) (any, error) {
	switch task.Value.(type) {
	case map[string]any, json.RawMessage:
	default:
		return task.Value, nil
	}
	raw, err := json.Marshal(task.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode task %s: %w", task.ID, err)
	}
	record, err := storage.NewRecord(task.Path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, record); err != nil {
		return nil, fmt.Errorf("failed to decode task %s value: %w", task.ID, err)
	}
	return record, nil
}
