package checkers

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSchemaMissing: база доступна, но миграции не применены.
var ErrSchemaMissing = errors.New("schema not migrated: table interviews is missing")

// PostgresChecker pings the pool and makes sure the interview schema exists,
// so /ready stays red until `migrate up` has run.
type PostgresChecker struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool, timeout: 2 * time.Second}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.pool.Ping(ctx); err != nil {
		return err
	}
	var present bool
	if err := c.pool.QueryRow(ctx, `SELECT to_regclass('public.interviews') IS NOT NULL`).Scan(&present); err != nil {
		return err
	}
	if !present {
		return ErrSchemaMissing
	}
	return nil
}
