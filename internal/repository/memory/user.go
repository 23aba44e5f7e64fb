package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/gophkeeper-invites/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository stores users keyed by email.
type UserRepository struct {
	store *Store
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.getUserByID(id)
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.createUser(nil, user)
}

// txUsers is the UserStore handed to InTx callbacks; the lock is already held.
type txUsers struct {
	store *Store
	log   *txLog
}

func (t *txUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	user, ok := t.store.users[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (t *txUsers) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	return t.store.getUserByID(id)
}

func (t *txUsers) Create(_ context.Context, user model.User) (model.User, error) {
	return t.store.createUser(t.log, user)
}
