package cloudsync

import (
	"context"
	"time"

	"github.com/chris/topup-storefront/pkg/storage"
)

// Remote gates a RemoteStore behind the breaker and bounds every call with a timeout.
type Remote struct {
	store   storage.RemoteStore
	health  *Health
	timeout time.Duration
}

// Make sure we conform to the interface
var _ storage.RemoteStore = (*Remote)(nil)

func NewRemote(store storage.RemoteStore, health *Health, timeout time.Duration) *Remote {
	return &Remote{store: store, health: health, timeout: timeout}
}

func (r *Remote) call(ctx context.Context, op string, fn func(context.Context) error) error {
	if !r.health.Healthy() {
		return ErrSyncDisabled
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	err := fn(ctx)
	r.health.Observe(op, err)
	return err
}

func (r *Remote) PullCollection(ctx context.Context, collection string, q storage.CollectionQuery, out any) error {
	return r.call(ctx, "pull "+collection, func(ctx context.Context) error {
		return r.store.PullCollection(ctx, collection, q, out)
	})
}

func (r *Remote) PullDocument(ctx context.Context, path storage.DocPath, out any) (bool, error) {
	var found bool
	err := r.call(ctx, "pull "+path.String(), func(ctx context.Context) error {
		var err error
		found, err = r.store.PullDocument(ctx, path, out)
		return err
	})
	return found, err
}

func (r *Remote) PutDocument(ctx context.Context, path storage.DocPath, value any) error {
	return r.call(ctx, "put "+path.String(), func(ctx context.Context) error {
		return r.store.PutDocument(ctx, path, value)
	})
}

func (r *Remote) PatchDocument(ctx context.Context, path storage.DocPath, fields map[string]any) error {
	return r.call(ctx, "patch "+path.String(), func(ctx context.Context) error {
		return r.store.PatchDocument(ctx, path, fields)
	})
}
