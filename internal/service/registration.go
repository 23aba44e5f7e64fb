package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/gophkeeper-invites/internal/logger"
	"github.com/dtroode/gophkeeper-invites/internal/model"
	"github.com/dtroode/gophkeeper-invites/internal/password"
)

// ErrEmptyInviteCode is returned by AddInvite for a blank code.
var ErrEmptyInviteCode = errors.New("invite code is empty")

// PasswordPolicy validates a plaintext password.
type PasswordPolicy interface {
	Validate(password string) error
}

// PasswordHasher derives a storable hash from a plaintext password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// RegisterParams contains input of a single registration attempt.
type RegisterParams struct {
	Email      string
	Password   string
	InviteCode string
}

// Registration creates users in exchange for single-use invite codes.
type Registration struct {
	userStore   model.UserStore
	inviteStore model.InviteStore
	transactor  model.Transactor
	policy      PasswordPolicy
	hasher      PasswordHasher
	logger      *logger.Logger
	now         func() time.Time
}

func NewRegistration(
	userStore model.UserStore,
	inviteStore model.InviteStore,
	transactor model.Transactor,
	policy PasswordPolicy,
	hasher PasswordHasher,
	logger *logger.Logger,
) *Registration {
	return &Registration{
		userStore:   userStore,
		inviteStore: inviteStore,
		transactor:  transactor,
		policy:      policy,
		hasher:      hasher,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register runs the checks in a fixed order (invite, email, password) and only
// then creates the user and consumes the invite in one transaction.
// Expected failures are returned as model.Rejected with a nil error.
func (r *Registration) Register(ctx context.Context, params RegisterParams) (model.RegistrationResult, error) {
	r.logger.Debug("Registration service: starting registration",
		"email", params.Email,
		"invite_code", params.InviteCode)

	invite, err := r.inviteStore.GetByCode(ctx, params.InviteCode)
	if errors.Is(err, model.ErrNotFound) {
		return r.reject(params, model.RejectInvalidInvite, model.MsgInvalidInvite), nil
	}
	if err != nil {
		r.logger.Error("Registration service: failed to get invite",
			"invite_code", params.InviteCode,
			"error", err.Error())
		return nil, fmt.Errorf("failed to get invite by code: %w", err)
	}

	if invite.Used {
		return r.reject(params, model.RejectInviteUsed, model.MsgInviteUsed), nil
	}

	_, err = r.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		return r.reject(params, model.RejectDuplicateEmail, model.MsgDuplicateEmail), nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		r.logger.Error("Registration service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := r.policy.Validate(params.Password); err != nil {
		if errors.Is(err, password.ErrWeakPassword) {
			return r.reject(params, model.RejectWeakPassword, err.Error()), nil
		}
		return nil, fmt.Errorf("failed to validate password: %w", err)
	}

	passwordHash, err := r.hasher.Hash(params.Password)
	if err != nil {
		r.logger.Error("Registration service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: passwordHash,
		CreatedAt:    r.now(),
	}

	var saved model.User
	err = r.transactor.InTx(ctx, func(ctx context.Context, users model.UserStore, invites model.InviteStore) error {
		var err error
		saved, err = users.Create(ctx, user)
		if err != nil {
			return err
		}
		return invites.MarkUsed(ctx, params.InviteCode, params.Email)
	})
	switch {
	case err == nil:
	case errors.Is(err, model.ErrEmailTaken):
		// lost a race against a concurrent registration with the same email
		return r.reject(params, model.RejectDuplicateEmail, model.MsgDuplicateEmail), nil
	case errors.Is(err, model.ErrInviteUsed):
		return r.reject(params, model.RejectInviteUsed, model.MsgInviteUsed), nil
	case errors.Is(err, model.ErrNotFound):
		r.logger.Error("Registration service: invite disappeared during registration",
			"invite_code", params.InviteCode,
			"email", params.Email)
		return nil, fmt.Errorf("invite %q vanished after lookup: %w", params.InviteCode, err)
	default:
		r.logger.Error("Registration service: failed to store registration",
			"email", params.Email,
			"invite_code", params.InviteCode,
			"error", err.Error())
		return nil, fmt.Errorf("failed to store registration: %w", err)
	}

	r.logger.Info("Registration service: user registered",
		"email", saved.Email,
		"user_id", saved.ID.String(),
		"invite_code", params.InviteCode)

	return model.Registered{User: saved}, nil
}

// AddInvite makes a new unused invite code available.
func (r *Registration) AddInvite(ctx context.Context, code string) error {
	if code == "" {
		return ErrEmptyInviteCode
	}

	if err := r.inviteStore.Add(ctx, code); err != nil {
		if errors.Is(err, model.ErrInviteUsed) {
			r.logger.Info("Registration service: refused to re-add used invite",
				"invite_code", code)
			return err
		}
		return fmt.Errorf("failed to add invite: %w", err)
	}

	r.logger.Debug("Registration service: invite added",
		"invite_code", code)

	return nil
}

// Invites lists all invites ordered by code.
func (r *Registration) Invites(ctx context.Context) ([]model.Invite, error) {
	invites, err := r.inviteStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

func (r *Registration) reject(params RegisterParams, reason model.RejectReason, msg string) model.Rejected {
	r.logger.Info("Registration service: registration rejected",
		"email", params.Email,
		"invite_code", params.InviteCode,
		"reason", string(reason))

	return model.Rejected{Reason: reason, Message: msg}
}
