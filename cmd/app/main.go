package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cybermarket/server/internal/auth"
	"github.com/cybermarket/server/internal/blob"
	"github.com/cybermarket/server/internal/bootstrap"
	"github.com/cybermarket/server/internal/catalog"
	"github.com/cybermarket/server/internal/concurrency"
	"github.com/cybermarket/server/internal/config"
	"github.com/cybermarket/server/internal/database"
	"github.com/cybermarket/server/internal/database/postgres"
	"github.com/cybermarket/server/internal/loadout"
	"github.com/cybermarket/server/internal/outbox"
	"github.com/cybermarket/server/internal/profile"
	"github.com/cybermarket/server/internal/server"
	"github.com/cybermarket/server/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		logFile.Close()
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		return err
	}
	pool, err := database.NewPool(cfg.GetDBConnString(), 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Repositories
	accounts := postgres.NewAccountStore(pool)
	records := postgres.NewUserRecordStore(pool)
	catalogRepo := postgres.NewCatalogStore(pool)
	outboxRepo := postgres.NewOutboxStore(pool)

	// Services
	locks := concurrency.NewLockManager()

	catalogSvc := catalog.NewService(catalogRepo)
	if err := catalogSvc.EnsureSeeded(ctx); err != nil {
		return err
	}

	storeSvc := store.NewService(records, catalogSvc, locks)
	loadoutSvc := loadout.NewService(records, locks)
	profileSvc := profile.NewService(records, locks)

	tokens := auth.NewTokenManager(cfg.JWTSecret, "cybermarket", cfg.TokenTTL)
	authSvc := auth.NewService(accounts, records, tokens, cfg.IsAdminUsername, cfg.TokenTTL)

	blobs, err := blob.NewStore(cfg.UploadDir, "/uploads")
	if err != nil {
		return err
	}

	// Events: services append to the outbox inside their transactions; a
	// background drainer publishes committed entries to the in-process bus.
	bus := bootstrap.SetupEventBus(profileSvc)
	outboxSvc := outbox.NewService(outboxRepo, bus, cfg.OutboxInterval)
	outboxSvc.Start(ctx)

	srv := server.New(cfg.Port, pool, server.Services{
		Auth:    authSvc,
		Catalog: catalogSvc,
		Store:   storeSvc,
		Loadout: loadoutSvc,
		Profile: profileSvc,
		Blobs:   blobs,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server: srv,
		Outbox: outboxSvc,
		Pool:   pool,
	})

	return nil
}
