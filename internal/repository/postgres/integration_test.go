//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/gophkeeper-invites/internal/model"
	repo "github.com/dtroode/gophkeeper-invites/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "invites_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/invites_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		u := model.User{
			ID:           uuid.New(),
			Email:        "user@example.com",
			PasswordHash: "salt:digest",
			CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		}
		saved, err := ur.Create(ctx, u)
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)

		byEmail, err := ur.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)

		_, err = ur.Create(ctx, model.User{ID: uuid.New(), Email: u.Email, PasswordHash: "x:y", CreatedAt: time.Now()})
		require.ErrorIs(t, err, model.ErrEmailTaken)
	})

	t.Run("invite_repository", func(t *testing.T) {
		ir := repo.NewInviteRepository(conn)
		require.NoError(t, ir.Add(ctx, "integration-invite"))
		require.NoError(t, ir.Add(ctx, "integration-invite"))

		require.NoError(t, ir.MarkUsed(ctx, "integration-invite", "user@example.com"))
		require.ErrorIs(t, ir.MarkUsed(ctx, "integration-invite", "other@example.com"), model.ErrInviteUsed)
		require.ErrorIs(t, ir.MarkUsed(ctx, "missing", "other@example.com"), model.ErrNotFound)
		require.ErrorIs(t, ir.Add(ctx, "integration-invite"), model.ErrInviteUsed)

		invite, err := ir.GetByCode(ctx, "integration-invite")
		require.NoError(t, err)
		require.True(t, invite.Used)
		require.Equal(t, "user@example.com", *invite.UsedBy)
	})

	t.Run("transaction_rollback", func(t *testing.T) {
		ir := repo.NewInviteRepository(conn)
		require.NoError(t, ir.Add(ctx, "rollback-invite"))

		email := "rollback@example.com"
		err := conn.InTx(ctx, func(ctx context.Context, users model.UserStore, invites model.InviteStore) error {
			if _, err := users.Create(ctx, model.User{ID: uuid.New(), Email: email, PasswordHash: "x:y", CreatedAt: time.Now()}); err != nil {
				return err
			}
			if err := invites.MarkUsed(ctx, "rollback-invite", email); err != nil {
				return err
			}
			return errors.New("abort")
		})
		require.Error(t, err)

		_, err = repo.NewUserRepository(conn).GetByEmail(ctx, email)
		require.ErrorIs(t, err, model.ErrNotFound)

		invite, err := ir.GetByCode(ctx, "rollback-invite")
		require.NoError(t, err)
		require.False(t, invite.Used)
	})

	t.Run("concurrent_mark_used", func(t *testing.T) {
		ir := repo.NewInviteRepository(conn)
		require.NoError(t, ir.Add(ctx, "race-invite"))

		const workers = 8
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			won int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := ir.MarkUsed(ctx, "race-invite", fmt.Sprintf("racer%d@example.com", i))
				if err == nil {
					mu.Lock()
					won++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, model.ErrInviteUsed)
			}(i)
		}
		wg.Wait()
		require.Equal(t, 1, won)
	})
}
