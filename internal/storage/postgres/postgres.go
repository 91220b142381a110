// Package postgres keeps save slots in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/archadium/internal/config"
)

// Pool is the connection pool behind the save repository.
type Pool struct {
	pool *pgxpool.Pool
}

// Status describes a reachable save database.
type Status struct {
	// Latency is the time taken by the check.
	Latency time.Duration
	// Slots is the number of rows in the saves table.
	Slots int
	// Conns is the pool's open connection count.
	Conns int32
}

// NewPool connects to the save database described by cfg.
//
// Precondition: cfg passes config validation for the postgres driver.
// Postcondition: Returns a pool whose server answered a ping within
// cfg.HealthTimeout, or a non-nil error with no pool left open.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.HealthTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &Pool{pool: pool}, nil
}

// Health checks that the saves table can be read within timeout. A database
// that answers but lacks the table has not been migrated.
//
// Precondition: The pool must not be closed.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var st Status
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM saves`).Scan(&st.Slots); err != nil {
		return Status{}, fmt.Errorf("reading saves table (run cmd/migrate?): %w", err)
	}
	st.Latency = time.Since(start)
	st.Conns = p.pool.Stat().TotalConns()
	return st, nil
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB exposes the pgx pool to the save repository.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
