package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Config holds Postgres connection settings.
type Config struct {
	DSN      string
	MaxConns int32
}

const schema = `
CREATE TABLE IF NOT EXISTS tickets (
    number        text PRIMARY KEY,
    source_id     text        NOT NULL DEFAULT '',
    created_at    timestamptz,
    close_at      timestamptz,
    updated_at    timestamptz,
    article_type  text        NOT NULL DEFAULT '',
    state         text        NOT NULL DEFAULT '',
    ticket_group  text        NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets (created_at);
CREATE INDEX IF NOT EXISTS idx_tickets_close_at   ON tickets (close_at);
CREATE INDEX IF NOT EXISTS idx_tickets_group      ON tickets (ticket_group);
`

// Postgres is the pgx-backed ticket store.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes the connection pool and ensures the schema exists.
func Connect(ctx context.Context, cfg Config) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is not configured")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	log.Info().Msg("Connected to postgres")
	return &Postgres{pool: pool}, nil
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}
