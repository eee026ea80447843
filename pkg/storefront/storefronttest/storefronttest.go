// Package storefronttest builds in-memory storefronts for handler tests.
package storefronttest

import (
	"context"
	"time"

	"github.com/chris/topup-storefront/pkg/clock"
	"github.com/chris/topup-storefront/pkg/cloudsync"
	"github.com/chris/topup-storefront/pkg/ledger"
	"github.com/chris/topup-storefront/pkg/localstore"
	"github.com/chris/topup-storefront/pkg/orders"
	"github.com/chris/topup-storefront/pkg/scheduler"
	"github.com/chris/topup-storefront/pkg/session"
	"github.com/chris/topup-storefront/pkg/settings"
	"github.com/chris/topup-storefront/pkg/storefront"
	"github.com/chris/topup-storefront/pkg/websockets"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

// Start is the fixed time every test storefront's clock starts at.
var Start = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// Fixture exposes the pieces behind a test storefront.
type Fixture struct {
	Storefront *storefront.Storefront
	Local      *localstore.FileStore
	Clock      *clock.Manual
	Queue      *scheduler.Queue
	Publisher  *websockets.RecordingPublisher
}

// New wires a storefront over a memory store. Remote writes collect in
// Queue and are never applied.
func New() *Fixture {
	logger := zap.NewNop()
	local := localstore.NewMemory()
	clk := clock.NewManual(Start)
	queue := scheduler.NewQueue(func(context.Context, *scheduler.Task) error { return nil })
	mirror := cloudsync.NewMirror(queue, cloudsync.NewHealth(true, logger), clk)
	publisher := &websockets.RecordingPublisher{}

	holder := session.New(local, logger)
	l := ledger.New(local, holder, mirror, publisher, clk, ledger.Options{HashCost: bcrypt.MinCost}, logger)
	o := orders.New(local, mirror, nil, publisher, logger)
	s := settings.New(local, mirror, clk, logger)
	o.InitVisitors()

	return &Fixture{
		Storefront: storefront.New(o, l, s, clk, logger),
		Local:      local,
		Clock:      clk,
		Queue:      queue,
		Publisher:  publisher,
	}
}
