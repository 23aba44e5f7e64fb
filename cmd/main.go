package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dtroode/gophkeeper-invites/internal/config"
	"github.com/dtroode/gophkeeper-invites/internal/logger"
	"github.com/dtroode/gophkeeper-invites/internal/model"
	"github.com/dtroode/gophkeeper-invites/internal/password"
	"github.com/dtroode/gophkeeper-invites/internal/repository/memory"
	"github.com/dtroode/gophkeeper-invites/internal/repository/postgres"
	"github.com/dtroode/gophkeeper-invites/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const (
	exitOK       = 0
	exitError    = 1
	exitRejected = 2
)

const usage = `usage:
  invites register <email> <password> <invite-code>
  invites add-invite <code>...
  invites list-invites
  invites version
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	registration, closeStorage, err := setup(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "backend", cfg.Storage.Backend)
	}

	code := run(ctx, registration, os.Args[1:], os.Stdout)

	if err := closeStorage(); err != nil {
		logger.Error("failed to close storage", "error", err)
	}

	stop()
	os.Exit(code)
}

func setup(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*service.Registration, func() error, error) {
	var (
		users      model.UserStore
		invites    model.InviteStore
		transactor model.Transactor
		closeFn    = func() error { return nil }
	)

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := postgres.NewConection(connectCtx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		users = postgres.NewUserRepository(db)
		invites = postgres.NewInviteRepository(db)
		transactor = db
		closeFn = db.Close
	default:
		store := memory.NewStore()
		users = store.Users()
		invites = store.Invites()
		transactor = store
	}

	hasher := password.NewHasher(password.KDFParams{
		Time:    cfg.KDF.Time,
		MemKiB:  cfg.KDF.MemKiB,
		Par:     cfg.KDF.Par,
		KeyLen:  cfg.KDF.KeyLen,
		SaltLen: cfg.KDF.SaltLen,
	})
	policy := password.NewPolicy(cfg.Password.MinLength)

	registration := service.NewRegistration(users, invites, transactor, policy, hasher, logger)

	for _, code := range cfg.Invites.SeedCodes {
		err := registration.AddInvite(ctx, code)
		if err != nil && !errors.Is(err, model.ErrInviteUsed) {
			_ = closeFn()
			return nil, nil, fmt.Errorf("failed to seed invite %q: %w", code, err)
		}
	}

	return registration, closeFn, nil
}

func run(ctx context.Context, registration *service.Registration, args []string, out io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return exitError
	}

	switch args[0] {
	case "register":
		if len(args) != 4 {
			fmt.Fprint(out, usage)
			return exitError
		}
		res, err := registration.Register(ctx, service.RegisterParams{
			Email:      args[1],
			Password:   args[2],
			InviteCode: args[3],
		})
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return exitError
		}
		switch v := res.(type) {
		case model.Registered:
			fmt.Fprintf(out, "registered id=%s email=%s created_at=%s\n",
				v.User.ID, v.User.Email, v.User.CreatedAt.Format(time.RFC3339))
			return exitOK
		case model.Rejected:
			fmt.Fprintf(out, "rejected: %s\n", v.Message)
			return exitRejected
		}
		return exitError

	case "add-invite":
		if len(args) < 2 {
			fmt.Fprint(out, usage)
			return exitError
		}
		for _, code := range args[1:] {
			if err := registration.AddInvite(ctx, code); err != nil {
				fmt.Fprintf(out, "error: %s: %v\n", code, err)
				return exitError
			}
			fmt.Fprintf(out, "added %s\n", code)
		}
		return exitOK

	case "list-invites":
		invites, err := registration.Invites(ctx)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return exitError
		}
		for _, invite := range invites {
			if invite.Used && invite.UsedBy != nil {
				fmt.Fprintf(out, "%s\tused\t%s\n", invite.Code, *invite.UsedBy)
				continue
			}
			fmt.Fprintf(out, "%s\tunused\n", invite.Code)
		}
		return exitOK

	case "version":
		logAppVersion(out)
		return exitOK

	default:
		fmt.Fprint(out, usage)
		return exitError
	}
}

func logAppVersion(out io.Writer) {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Fprintf(out, tmpl, buildVersion, buildDate, buildCommit)
}
