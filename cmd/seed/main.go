// Command seed registers demo accounts in a storefront store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"

	"github.com/xenking/oolio-storefront/internal/app"
	"github.com/xenking/oolio-storefront/internal/domain/auth"
)

var demoUsers = []auth.Registration{
	{
		FullName: "Demo Shopper",
		DOB:      "1990-01-01",
		Email:    "demo@example.com",
		Username: "demo",
		Password: "demo1234",
	},
}

func main() {
	var cfg app.StorageConfig
	var usersFile string

	flag.StringVar(&cfg.Driver, "driver", app.DriverSQLite, "storage driver: sqlite or postgres")
	flag.StringVar(&cfg.Path, "path", "storefront.db", "SQLite database file")
	flag.StringVar(&cfg.DatabaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&usersFile, "users-file", "", "JSON array of registrations (built-in demo account when empty)")
	flag.Parse()

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.Driver == app.DriverMemory {
		slog.Error("seeding the memory driver has no effect")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, usersFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, cfg app.StorageConfig, usersFile string) error {
	users := demoUsers
	if usersFile != "" {
		data, err := os.ReadFile(usersFile)
		if err != nil {
			return errors.Wrap(err, "read users file")
		}
		users = nil
		if err := json.Unmarshal(data, &users); err != nil {
			return errors.Wrap(err, "parse users JSON")
		}
	}

	slog.Info("opening store", slog.String("driver", cfg.Driver))
	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer func() { _ = store.Close() }()

	svc := auth.NewService(store)
	for _, r := range users {
		switch _, err := svc.Register(ctx, r); {
		case errors.Is(err, auth.ErrUsernameTaken):
			slog.Info("user exists", slog.String("username", r.Username))
		case err != nil:
			return errors.Wrapf(err, "register %s", r.Username)
		default:
			slog.Info("registered user", slog.String("username", r.Username))
		}
	}
	return nil
}
