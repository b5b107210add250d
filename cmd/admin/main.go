package main

import (
	"context"

	"github.com/portfolio-site/portfolio-backend/config"
	"github.com/portfolio-site/portfolio-backend/internal/auth"
	authrepo "github.com/portfolio-site/portfolio-backend/internal/auth/repository"
	authservice "github.com/portfolio-site/portfolio-backend/internal/auth/service"
	"github.com/portfolio-site/portfolio-backend/internal/bootstrap"
	"github.com/portfolio-site/portfolio-backend/internal/cli"
	"github.com/portfolio-site/portfolio-backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("development", "error").Fatal().Err(err).Msg("load config")
	}

	cli.Execute(context.Background(), cli.Backend{
		Sessions: func(ctx context.Context) (cli.Sessions, error) {
			provider, err := auth.NewFirebaseProvider(ctx, &cfg.Firebase)
			if err != nil {
				return nil, err
			}
			store := authrepo.NewSessionFile(cfg.App.SessionFile)
			return authservice.NewGate(provider, authservice.WithStore(store)), nil
		},
		Data: func(ctx context.Context) (*cli.Data, error) {
			db, err := bootstrap.OpenSQL(ctx, &cfg.Database, bootstrap.DBOptions{})
			if err != nil {
				return nil, err
			}
			store, err := bootstrap.OpenObjectStore(ctx, &cfg.Storage)
			if err != nil {
				db.Close()
				return nil, err
			}
			svc := bootstrap.NewServices(db, store, &cfg.Storage, logging.New(cfg.App.Environment, cfg.App.LogLevel))
			return &cli.Data{
				Projects: svc.Projects,
				Messages: svc.Inbox,
				Close:    func() { db.Close() },
			}, nil
		},
	})
}
