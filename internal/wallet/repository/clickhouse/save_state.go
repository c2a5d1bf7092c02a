package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/safe"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/workerpool"
	"go.uber.org/zap"
)

const insertSnapshotQuery = `
INSERT INTO wallet_snapshots (
	wallet,
	snapshot_id,
	height,
	committed_at
) VALUES (?, ?, ?, ?)`

// SaveState writes state as a new snapshot. Tables are filled concurrently and the snapshot row is
// inserted last; a save that fails before it leaves the previous snapshot current. Older snapshots
// are pruned afterwards on a best-effort basis.
func (r *Repository) SaveState(ctx context.Context, state *model.State) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("save_state", err, start)
	}()

	if state == nil {
		err = errors.New("nil wallet state")
		return err
	}

	now := r.now()
	snapshotID, err := safe.Uint64(now.UnixNano())
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	rows, err := tables(r.wallet, snapshotID, state)
	if err != nil {
		return err
	}
	if err = workerpool.Process(ctx, r.workers, rows, r.insert, nil); err != nil {
		return fmt.Errorf("write snapshot %d: %w", snapshotID, err)
	}
	if err = r.conn.Exec(ctx, insertSnapshotQuery, r.wallet, snapshotID, state.Height, now); err != nil {
		return fmt.Errorf("commit snapshot %d: %w", snapshotID, err)
	}

	r.prune(ctx, snapshotID)
	return nil
}

func (r *Repository) insert(ctx context.Context, t table) (err error) {
	if len(t.rows) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, t.query)
	if err != nil {
		return fmt.Errorf("prepare %s batch: %w", t.name, err)
	}
	defer func() {
		if err != nil {
			_ = batch.Abort()
		}
	}()

	for _, row := range t.rows {
		if err = batch.Append(row...); err != nil {
			return fmt.Errorf("append %s row: %w", t.name, err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert %s: %w", t.name, err)
	}
	return nil
}

// prune removes snapshots older than keep. Commit markers go first so a partially pruned snapshot
// can never be picked up as the latest one.
func (r *Repository) prune(ctx context.Context, keep uint64) {
	for _, name := range append([]string{"wallet_snapshots"}, snapshotTables...) {
		query := fmt.Sprintf("DELETE FROM %s WHERE wallet = ? AND snapshot_id < ?", name)
		if err := r.conn.Exec(ctx, query, r.wallet, keep); err != nil {
			r.logger.Warn("failed to prune old snapshots", zap.String("table", name), zap.Error(err))
			return
		}
	}
}
