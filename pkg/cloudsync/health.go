package cloudsync

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/aws/smithy-go"
	"github.com/chris/topup-storefront/pkg/storage"
	"go.uber.org/zap"
)

// ErrSyncDisabled is returned instead of calling the remote store once sync
// is off, either by configuration or because the breaker tripped.
var ErrSyncDisabled = errors.New("cloud sync disabled")

// fatalCodes are remote error codes that mean the store is structurally
// absent or misconfigured.
var fatalCodes = map[string]bool{
	"ResourceNotFoundException":               true,
	"AccessDeniedException":                   true,
	"UnrecognizedClientException":             true,
	"AWS.SimpleQueueService.NonExistentQueue": true,
	"QueueDoesNotExist":                       true,
}

// Health is the process-wide sync breaker. It starts healthy only when cloud
// sync is enabled and, once tripped, stays tripped.
type Health struct {
	healthy atomic.Bool
	logger  *zap.Logger
}

func NewHealth(enabled bool, logger *zap.Logger) *Health {
	h := &Health{logger: logger}
	h.healthy.Store(enabled)
	return h
}

// Healthy reports whether remote calls may be attempted.
func (h *Health) Healthy() bool {
	return h.healthy.Load()
}

// Observe records the outcome of a remote operation.
func (h *Health) Observe(op string, err error) {
	if err == nil || errors.Is(err, ErrSyncDisabled) {
		return
	}
	if IsFatal(err) {
		h.Trip(op, err)
		return
	}
	h.logger.Warn("remote sync failed", zap.String("op", op), zap.Error(err))
}

// Trip disables remote sync for the rest of the process lifetime.
func (h *Health) Trip(op string, err error) {
	if h.healthy.CompareAndSwap(true, false) {
		h.logger.Warn("remote store unavailable, continuing in local mode",
			zap.String("op", op), zap.Error(err))
		return
	}
	h.logger.Debug("remote sync failed after breaker trip", zap.String("op", op), zap.Error(err))
}

// IsFatal reports whether err belongs to the classes that trip the breaker.
// A missing document is a per-item miss; a missing table surfaces as
// ResourceNotFoundException and does trip.
func IsFatal(err error) bool {
	if err == nil || errors.Is(err, storage.ErrDocumentNotFound) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if fatalCodes[apiErr.ErrorCode()] {
			return true
		}
		return strings.Contains(strings.ToLower(apiErr.ErrorMessage()), "not exist")
	}
	return false
}
