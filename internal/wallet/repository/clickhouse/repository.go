// Package clickhouse stores wallet snapshots in ClickHouse. A snapshot is written across several
// tables and becomes visible only once its row in wallet_snapshots is inserted.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"
)

// DefaultWorkers bounds concurrent table reads and writes of one snapshot.
const DefaultWorkers = 4

type Repository struct {
	conn    Conn
	metrics Metrics
	wallet  string
	workers int
	now     func() time.Time
	logger  *zap.Logger
}

// NewRepository connects to dsn. wallet names the wallet so several wallets can share the tables.
func NewRepository(dsn, wallet string, metrics Metrics, logger *zap.Logger) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if wallet == "" {
		return nil, errors.New("wallet name is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{
		conn:    driverConn{conn: conn},
		metrics: metrics,
		wallet:  wallet,
		workers: DefaultWorkers,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger.With(zap.String("wallet", wallet)),
	}, nil
}

func (r *Repository) Close() error {
	return r.conn.Close()
}

// driverConn narrows a clickhouse-go connection to Conn.
type driverConn struct {
	conn driver.Conn
}

func (c driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c driverConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	batch, err := c.conn.PrepareBatch(ctx, query)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (c driverConn) Exec(ctx context.Context, query string, args ...any) error {
	return c.conn.Exec(ctx, query, args...)
}

func (c driverConn) Close() error {
	return c.conn.Close()
}
