package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/workerpool"
)

const (
	latestSnapshotQuery = `
SELECT snapshot_id, height
FROM wallet_snapshots
WHERE wallet = ?
ORDER BY snapshot_id DESC
LIMIT 1`

	selectAccountsQuery = `
SELECT account_index, label, tag
FROM wallet_accounts
WHERE wallet = ? AND snapshot_id = ?
ORDER BY account_index`

	selectSubaddressesQuery = `
SELECT account_index, subaddress_index, address, label
FROM wallet_subaddresses
WHERE wallet = ? AND snapshot_id = ?
ORDER BY account_index, subaddress_index`

	selectTransactionsQuery = `
SELECT payload
FROM wallet_transactions
WHERE wallet = ? AND snapshot_id = ?
ORDER BY txid`

	selectBlockHashesQuery = `
SELECT height, hash
FROM wallet_block_hashes
WHERE wallet = ? AND snapshot_id = ?
ORDER BY height`

	selectAttributesQuery = `
SELECT key, value
FROM wallet_attributes
WHERE wallet = ? AND snapshot_id = ?
ORDER BY key`
)

// LoadState reads the latest committed snapshot. It returns nil, nil when the wallet has none.
func (r *Repository) LoadState(ctx context.Context) (*model.State, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("load_state", err, start)
	}()

	var (
		snapshotID uint64
		found      bool
	)
	state := &model.State{}
	err = r.scan(ctx, latestSnapshotQuery, []any{r.wallet}, func(rows Rows) error {
		found = true
		return rows.Scan(&snapshotID, &state.Height)
	})
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if !found {
		return nil, nil
	}

	var subaddresses []model.Subaddress
	args := []any{r.wallet, snapshotID}
	// Each reader fills its own field of state.
	readers := []func(context.Context) error{
		func(ctx context.Context) error {
			return r.scan(ctx, selectAccountsQuery, args, func(rows Rows) error {
				var (
					index      uint32
					label, tag string
				)
				if err := rows.Scan(&index, &label, &tag); err != nil {
					return err
				}
				state.Accounts = append(state.Accounts, model.Account{Index: model.AccountIndex(index), Label: label, Tag: tag})
				return nil
			})
		},
		func(ctx context.Context) error {
			return r.scan(ctx, selectSubaddressesQuery, args, func(rows Rows) error {
				var (
					account, index uint32
					address, label string
				)
				if err := rows.Scan(&account, &index, &address, &label); err != nil {
					return err
				}
				subaddresses = append(subaddresses, model.Subaddress{
					AccountIndex: model.AccountIndex(account),
					Index:        model.SubaddressIndex(index),
					Address:      address,
					Label:        label,
				})
				return nil
			})
		},
		func(ctx context.Context) error {
			return r.scan(ctx, selectTransactionsQuery, args, func(rows Rows) error {
				var payload string
				if err := rows.Scan(&payload); err != nil {
					return err
				}
				var tx model.Transaction
				if err := json.Unmarshal([]byte(payload), &tx); err != nil {
					return fmt.Errorf("%w: decode transaction: %v", model.ErrMalformed, err)
				}
				state.Transactions = append(state.Transactions, tx)
				return nil
			})
		},
		func(ctx context.Context) error {
			state.BlockHashes = make(map[uint64]string)
			return r.scan(ctx, selectBlockHashesQuery, args, func(rows Rows) error {
				var (
					height uint64
					hash   string
				)
				if err := rows.Scan(&height, &hash); err != nil {
					return err
				}
				state.BlockHashes[height] = hash
				return nil
			})
		},
		func(ctx context.Context) error {
			state.Attributes = make(map[string]string)
			return r.scan(ctx, selectAttributesQuery, args, func(rows Rows) error {
				var key, value string
				if err := rows.Scan(&key, &value); err != nil {
					return err
				}
				state.Attributes[key] = value
				return nil
			})
		},
	}

	err = workerpool.Process(ctx, r.workers, readers, func(ctx context.Context, read func(context.Context) error) error {
		return read(ctx)
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %d: %w", snapshotID, err)
	}

	if state.Accounts, err = attachSubaddresses(state.Accounts, subaddresses); err != nil {
		return nil, err
	}
	return state, nil
}

// scan runs query and calls each for every row.
func (r *Repository) scan(ctx context.Context, query string, args []any, each func(Rows) error) (err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		if err = each(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
