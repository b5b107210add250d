package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-backend/config"
	httpapi "github.com/portfolio-site/portfolio-backend/internal/api/http"
	"github.com/portfolio-site/portfolio-backend/internal/auth"
	"github.com/portfolio-site/portfolio-backend/internal/bootstrap"
	"github.com/portfolio-site/portfolio-backend/internal/logging"
)

const serviceName = "portfolio-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("production", "error").Fatal().Err(err).Msg("load config")
	}

	log := logging.New(cfg.App.Environment, cfg.App.LogLevel).With().Str("service", serviceName).Logger()
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := bootstrap.OpenSQL(ctx, &cfg.Database, bootstrap.DBOptions{})
	if err != nil {
		return err
	}
	defer db.Close()

	pool, err := bootstrap.OpenPool(ctx, &cfg.Database, bootstrap.DBOptions{})
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	var cache httpapi.Pinger
	if rdb != nil {
		defer rdb.Close()
		cache = httpapi.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	} else {
		log.Info().Msg("REDIS_ADDR not set, session cache disabled")
	}

	store, err := bootstrap.OpenObjectStore(ctx, &cfg.Storage)
	if err != nil {
		return err
	}

	provider, err := auth.NewFirebaseProvider(ctx, &cfg.Firebase)
	if err != nil {
		return err
	}

	svc := bootstrap.NewServices(db, store, &cfg.Storage, log)

	if spec := cfg.Jobs.OrphanAuditSchedule; spec != "" {
		stopAudit, err := svc.Auditor.Schedule(spec)
		if err != nil {
			return err
		}
		defer stopAudit()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxUploadMB:    cfg.Server.MaxUploadMB,
		Log:            log,
		DB:             pool,
		Cache:          cache,
		Auth:           bootstrap.NewAuthenticator(provider, rdb),
		Projects:       svc.Projects,
		Inbox:          svc.Inbox,
		Catalog:        svc.Catalog,
		Contact:        svc.Contact,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.App.Environment).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
