package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dtroode/gophkeeper-invites/internal/model"
)

var _ model.InviteStore = (*InviteRepository)(nil)

type InviteRepository struct {
	db querier
}

func NewInviteRepository(db *Connection) *InviteRepository {
	return &InviteRepository{
		db: db,
	}
}

func (r *InviteRepository) GetByCode(ctx context.Context, code string) (model.Invite, error) {
	query := `SELECT code, used, used_by, created_at, used_at
			  FROM invites WHERE code = $1`

	invite, err := scanInvite(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Invite{}, model.ErrNotFound
		}
		return model.Invite{}, fmt.Errorf("failed to get invite by code: %w", err)
	}

	return invite, nil
}

// MarkUsed flips the used flag only if it is still unset, so concurrent
// callers resolve to a single winner.
func (r *InviteRepository) MarkUsed(ctx context.Context, code, email string) error {
	query := `UPDATE invites SET used = TRUE, used_by = $2, used_at = NOW()
			  WHERE code = $1 AND used = FALSE`

	res, err := r.db.ExecContext(ctx, query, code, email)
	if err != nil {
		return fmt.Errorf("failed to mark invite used: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 1 {
		return nil
	}

	if _, err := r.GetByCode(ctx, code); err != nil {
		return err
	}

	return model.ErrInviteUsed
}

func (r *InviteRepository) Add(ctx context.Context, code string) error {
	query := `INSERT INTO invites (code) VALUES ($1)
			  ON CONFLICT (code) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to add invite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 1 {
		return nil
	}

	existing, err := r.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing.Used {
		return model.ErrInviteUsed
	}

	return nil
}

func (r *InviteRepository) List(ctx context.Context) ([]model.Invite, error) {
	query := `SELECT code, used, used_by, created_at, used_at
			  FROM invites ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var invites []model.Invite
	for rows.Next() {
		invite, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, invite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}

	return invites, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvite(row scanner) (model.Invite, error) {
	var (
		invite model.Invite
		usedBy sql.NullString
		usedAt sql.NullTime
	)
	if err := row.Scan(&invite.Code, &invite.Used, &usedBy, &invite.CreatedAt, &usedAt); err != nil {
		return model.Invite{}, err
	}
	if usedBy.Valid {
		invite.UsedBy = &usedBy.String
	}
	if usedAt.Valid {
		invite.UsedAt = &usedAt.Time
	}
	return invite, nil
}
