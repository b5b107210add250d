package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portfolio-site/portfolio-backend/config"
	"github.com/portfolio-site/portfolio-backend/internal/storage/postgres"
)

type DBOptions struct {
	ConnectTO time.Duration
	PingTO    time.Duration
	MaxConns  int32
	MinConns  int32
}

func (o *DBOptions) defaults() {
	if o.ConnectTO == 0 {
		o.ConnectTO = 5 * time.Second
	}
	if o.PingTO == 0 {
		o.PingTO = 2 * time.Second
	}
	if o.MaxConns == 0 {
		o.MaxConns = 4
	}
}

// OpenPool opens the pgx pool the health check probes.
func OpenPool(ctx context.Context, cfg *config.DatabaseConfig, opt DBOptions) (*pgxpool.Pool, error) {
	opt.defaults()

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pcfg, err := pgxpool.ParseConfig(postgres.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pcfg.MaxConns = opt.MaxConns
	pcfg.MinConns = opt.MinConns
	pcfg.MaxConnIdleTime = 5 * time.Minute
	pcfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(cctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return pool, nil
}

// OpenSQL opens the database/sql handle the repositories use and applies
// migrations.
func OpenSQL(ctx context.Context, cfg *config.DatabaseConfig, opt DBOptions) (*sql.DB, error) {
	opt.defaults()

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	db, err := postgres.NewConnection(cctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(cctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
