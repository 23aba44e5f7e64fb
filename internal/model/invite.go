package model

import (
	"context"
	"time"
)

// InviteStore defines persistence operations for invite codes.
type InviteStore interface {
	GetByCode(ctx context.Context, code string) (Invite, error)
	// MarkUsed consumes the invite on behalf of email. It returns ErrNotFound for
	// unknown codes and ErrInviteUsed if the invite was consumed concurrently.
	MarkUsed(ctx context.Context, code, email string) error
	// Add inserts an unused invite. Adding an unused code again is a no-op,
	// adding a used one fails with ErrInviteUsed.
	Add(ctx context.Context, code string) error
	List(ctx context.Context) ([]Invite, error)
}

// Invite is a single-use registration code.
type Invite struct {
	Code      string
	Used      bool
	UsedBy    *string
	CreatedAt time.Time
	UsedAt    *time.Time
}
