// Package memory provides in-process implementations of the user and invite stores.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/gophkeeper-invites/internal/model"
)

var _ model.Transactor = (*Store)(nil)

// Store owns user and invite state behind a single lock.
type Store struct {
	mu      sync.RWMutex
	users   map[string]model.User
	invites map[string]model.Invite
	now     func() time.Time
}

// NewStore creates a Store seeded with unused invites.
func NewStore(seed ...string) *Store {
	s := &Store{
		users:   make(map[string]model.User),
		invites: make(map[string]model.Invite, len(seed)),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, code := range seed {
		// seed codes are never used yet, so addInvite cannot fail here
		_ = s.addInvite(nil, code)
	}
	return s
}

// Users returns the user store view.
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// Invites returns the invite store view.
func (s *Store) Invites() *InviteRepository {
	return &InviteRepository{store: s}
}

// InTx runs fn while holding the write lock. Writes done through the stores
// passed to fn are undone if fn returns an error.
func (s *Store) InTx(ctx context.Context, fn model.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txLog{}
	err := fn(ctx, &txUsers{store: s, log: tx}, &txInvites{store: s, log: tx})
	if err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// the helpers below expect s.mu to be held by the caller

func (s *Store) getUserByID(id uuid.UUID) (model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *Store) createUser(tx *txLog, user model.User) (model.User, error) {
	if _, ok := s.users[user.Email]; ok {
		return model.User{}, model.ErrEmailTaken
	}
	s.users[user.Email] = user
	if tx != nil {
		email := user.Email
		tx.push(func() { delete(s.users, email) })
	}
	return user, nil
}

func (s *Store) markUsed(tx *txLog, code, email string) error {
	invite, ok := s.invites[code]
	if !ok {
		return model.ErrNotFound
	}
	if invite.Used {
		return model.ErrInviteUsed
	}

	prev := invite
	usedAt := s.now()
	invite.Used = true
	invite.UsedBy = &email
	invite.UsedAt = &usedAt
	s.invites[code] = invite
	if tx != nil {
		tx.push(func() { s.invites[code] = prev })
	}
	return nil
}

func (s *Store) addInvite(tx *txLog, code string) error {
	if existing, ok := s.invites[code]; ok {
		if existing.Used {
			return model.ErrInviteUsed
		}
		return nil
	}
	s.invites[code] = model.Invite{Code: code, CreatedAt: s.now()}
	if tx != nil {
		tx.push(func() { delete(s.invites, code) })
	}
	return nil
}

type txLog struct {
	undo []func()
}

func (l *txLog) push(fn func()) {
	l.undo = append(l.undo, fn)
}

func (l *txLog) rollback() {
	for i := len(l.undo) - 1; i >= 0; i-- {
		l.undo[i]()
	}
	l.undo = nil
}
