package model

import "context"

// TxFunc is executed by a Transactor with stores bound to one transaction.
type TxFunc func(ctx context.Context, users UserStore, invites InviteStore) error

// Transactor runs a group of store mutations all-or-nothing.
// If fn returns an error, none of its writes are visible afterwards.
type Transactor interface {
	InTx(ctx context.Context, fn TxFunc) error
}
