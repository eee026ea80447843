package ledger

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/chris/topup-storefront/pkg/clock"
	"github.com/chris/topup-storefront/pkg/localstore"
	"github.com/chris/topup-storefront/pkg/mapping"
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/session"
	"github.com/chris/topup-storefront/pkg/storage"
	"github.com/chris/topup-storefront/pkg/websockets"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

// firstSerial is one below the first serial id ever issued.
const firstSerial = 10000

// Mirror receives a user document after every committed change.
type Mirror interface {
	Put(ctx context.Context, path storage.DocPath, value any, op string)
}

type Options struct {
	// AllowNonPositiveDeposits lets admins pass zero or negative deposit amounts.
	AllowNonPositiveDeposits bool
	// HashCost is the bcrypt cost. Zero means bcrypt.DefaultCost.
	HashCost int
}

// Ledger owns the users table: accounts, credentials and wallet balances.
type Ledger struct {
	mu        sync.Mutex
	local     localstore.Store
	session   *session.Holder
	mirror    Mirror
	publisher websockets.Publisher
	clock     clock.Clock
	opts      Options
	logger    *zap.Logger
}

func New(local localstore.Store, holder *session.Holder, mirror Mirror, publisher websockets.Publisher, clk clock.Clock, opts Options, logger *zap.Logger) *Ledger {
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	return &Ledger{
		local:     local,
		session:   holder,
		mirror:    mirror,
		publisher: publisher,
		clock:     clk,
		opts:      opts,
		logger:    logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (l *Ledger) loadUsers() []models.User {
	return localstore.Get[[]models.User](l.local, localstore.KeyUsers, nil)
}

// commit persists users and mirrors the one that changed.
func (l *Ledger) commit(ctx context.Context, users []models.User, changed models.User, op string) {
	l.local.Write(localstore.KeyUsers, users)
	l.mirror.Put(ctx, storage.UserPath(changed.Id), mapping.ToUserRecord(changed), op)
}

func nextSerial(users []models.User) string {
	highest := firstSerial
	for _, u := range users {
		if n, err := strconv.Atoi(u.SerialId); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// Register creates an account and signs it in.
func (l *Ledger) Register(ctx context.Context, email, password, username string) (models.User, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" || password == "" || username == "" {
		return models.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.opts.HashCost)
	if err != nil {
		return models.User{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	users := l.loadUsers()
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			return models.User{}, ErrDuplicateEmail
		}
	}

	user := models.User{
		Id:        uuid.New().String(),
		SerialId:  nextSerial(users),
		Email:     email,
		Password:  string(hash),
		Username:  username,
		CreatedAt: l.clock.Now().UnixMilli(),
	}
	users = append(users, user)
	l.commit(ctx, users, user, "ledger.register")
	l.session.Set(user)

	l.logger.Info("user registered", zap.String("serialId", user.SerialId))
	return user.Public(), nil
}

// Login checks credentials and signs the user in. Banned users are refused
// even with the right password.
func (l *Ledger) Login(ctx context.Context, email, password string) (models.User, error) {
	email = normalizeEmail(email)

	l.mu.Lock()
	users := l.loadUsers()
	l.mu.Unlock()

	for _, u := range users {
		if normalizeEmail(u.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return models.User{}, ErrInvalidCredentials
		}
		if u.IsBanned {
			return models.User{}, ErrBanned
		}
		l.session.Set(u)
		return u.Public(), nil
	}
	return models.User{}, ErrInvalidCredentials
}

func (l *Ledger) Logout() {
	l.session.Clear()
}

// CurrentUser returns the signed-in user, re-validated against the users table.
func (l *Ledger) CurrentUser() (models.User, bool) {
	return l.session.Current()
}

// UpdateProfile renames a user. The serial id never changes.
func (l *Ledger) UpdateProfile(ctx context.Context, userID, username string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	users := l.loadUsers()
	i := indexOf(users, func(u models.User) bool { return u.Id == userID })
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}
	users[i].Username = username
	l.commit(ctx, users, users[i], "ledger.updateProfile")
	l.refreshSession(users[i])
	return users[i].Public(), nil
}

// FindBySerial looks a user up by serial id.
func (l *Ledger) FindBySerial(serialID string) (models.User, bool) {
	for _, u := range l.loadUsers() {
		if u.SerialId == serialID {
			return u.Public(), true
		}
	}
	return models.User{}, false
}

// Users lists every account without credentials.
func (l *Ledger) Users() []models.User {
	users := l.loadUsers()
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out
}

// refreshSession keeps the session snapshot in step when the signed-in user changes.
func (l *Ledger) refreshSession(u models.User) {
	if current, ok := l.session.Current(); ok && current.Id == u.Id {
		l.session.Set(u)
	}
}

func indexOf(users []models.User, match func(models.User) bool) int {
	for i, u := range users {
		if match(u) {
			return i
		}
	}
	return -1
}
