package memory

import (
	"context"
	"sort"

	"github.com/dtroode/gophkeeper-invites/internal/model"
)

var _ model.InviteStore = (*InviteRepository)(nil)

// InviteRepository stores invites keyed by code.
type InviteRepository struct {
	store *Store
}

func (r *InviteRepository) GetByCode(_ context.Context, code string) (model.Invite, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	invite, ok := r.store.invites[code]
	if !ok {
		return model.Invite{}, model.ErrNotFound
	}
	return invite, nil
}

func (r *InviteRepository) MarkUsed(_ context.Context, code, email string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.markUsed(nil, code, email)
}

func (r *InviteRepository) Add(_ context.Context, code string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.addInvite(nil, code)
}

func (r *InviteRepository) List(_ context.Context) ([]model.Invite, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return listInvites(r.store.invites), nil
}

// txInvites is the InviteStore handed to InTx callbacks; the lock is already held.
type txInvites struct {
	store *Store
	log   *txLog
}

func (t *txInvites) GetByCode(_ context.Context, code string) (model.Invite, error) {
	invite, ok := t.store.invites[code]
	if !ok {
		return model.Invite{}, model.ErrNotFound
	}
	return invite, nil
}

func (t *txInvites) MarkUsed(_ context.Context, code, email string) error {
	return t.store.markUsed(t.log, code, email)
}

func (t *txInvites) Add(_ context.Context, code string) error {
	return t.store.addInvite(t.log, code)
}

func (t *txInvites) List(_ context.Context) ([]model.Invite, error) {
	return listInvites(t.store.invites), nil
}

func listInvites(m map[string]model.Invite) []model.Invite {
	invites := make([]model.Invite, 0, len(m))
	for _, invite := range m {
		invites = append(invites, invite)
	}
	sort.Slice(invites, func(i, j int) bool {
		return invites[i].Code < invites[j].Code
	})
	return invites
}
