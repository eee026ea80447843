package cloudsync

import "github.com/chris/topup-storefront/pkg/localstore"

// Snapshot is what a pull fetched for one local key.
type Snapshot struct {
	Key   string
	Len   int
	Value any
}

// SnapshotPolicy decides how a pulled snapshot lands in the local store.
type SnapshotPolicy interface {
	// Land applies the snapshot and reports whether local state changed.
	Land(local localstore.Store, snap Snapshot) bool
}

// LastWriterWins replaces the local entry with any non-empty snapshot.
// Empty snapshots are ignored so a transient empty read cannot wipe local state.
type LastWriterWins struct{}

func (LastWriterWins) Land(local localstore.Store, snap Snapshot) bool {
	if snap.Len == 0 {
		return false
	}
	local.Write(snap.Key, snap.Value)
	return true
}
