package session

import (
	"sync"

	"github.com/chris/topup-storefront/pkg/localstore"
	"github.com/chris/topup-storefront/pkg/models"
	"go.uber.org/zap"
)

// Holder is the current-user pointer of a storefront session. Every read
// re-resolves the user against the live users table.
type Holder struct {
	mu     sync.Mutex
	local  localstore.Store
	logger *zap.Logger
}

func New(local localstore.Store, logger *zap.Logger) *Holder {
	return &Holder{local: local, logger: logger}
}

// Current returns the signed-in user. A user that has since been banned is
// signed out and reported absent. The credential hash is never returned.
func (h *Holder) Current() (models.User, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var pointer models.User
	if !h.local.Read(localstore.KeySessionUser, &pointer) || pointer.Id == "" {
		return models.User{}, false
	}

	users := localstore.Get[[]models.User](h.local, localstore.KeyUsers, nil)
	for _, u := range users {
		if u.Id != pointer.Id {
			continue
		}
		if u.IsBanned {
			h.logger.Info("banned user signed out", zap.String("serialId", u.SerialId))
			h.local.Delete(localstore.KeySessionUser)
			return models.User{}, false
		}
		return u.Public(), true
	}
	return pointer, true
}

// Set signs u in.
func (h *Holder) Set(u models.User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.local.Write(localstore.KeySessionUser, u.Public())
}

// Clear signs the current user out.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.local.Delete(localstore.KeySessionUser)
}
