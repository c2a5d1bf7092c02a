// Package badger stores wallet snapshots in an embedded badger database.
package badger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

const schemaVersion = 2

// headKey points at the committed generation. Snapshot data lives under a per-generation prefix, so
// a save is written in as many batches as it needs and only becomes current when headKey flips.
var headKey = []byte("wallet/head")

type head struct {
	Version    int
	Generation uint64
}

// meta is everything of a snapshot except accounts and transactions.
type meta struct {
	Height      uint64
	BlockHashes map[uint64]string
	Attributes  map[string]string
}

func generationPrefix(gen uint64) []byte {
	return []byte(fmt.Sprintf("wallet/gen/%016x/", gen))
}

func metaKey(gen uint64) []byte {
	return append(generationPrefix(gen), "meta"...)
}

func accountsKey(gen uint64) []byte {
	return append(generationPrefix(gen), "accounts"...)
}

func txPrefix(gen uint64) []byte {
	return append(generationPrefix(gen), "tx/"...)
}

func txKey(gen uint64, id model.TxID) []byte {
	return append(txPrefix(gen), string(id)...)
}

var generationsPrefix = []byte("wallet/gen/")

// Repository keeps the latest wallet snapshot. A save writes a new generation and then switches the
// head to it in one transaction, so a reader sees either the old or the new state whatever the
// snapshot size.
type Repository struct {
	db      *badger.DB
	metrics Metrics
	logger  *zap.Logger
}

// NewRepository opens the database in dir. An empty dir keeps the database in memory.
func NewRepository(dir string, metrics Metrics, logger *zap.Logger) (*Repository, error) {
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(newLogger(logger)).
		WithLoggingLevel(badger.WARNING)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}
	return &Repository{db: db, metrics: metrics, logger: logger}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// LoadState returns nil, nil when no snapshot has been saved.
func (r *Repository) LoadState(ctx context.Context) (state *model.State, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("load_state", err, start)
	}()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	err = r.db.View(func(txn *badger.Txn) error {
		var h head
		found, err := get(txn, headKey, &h)
		if err != nil || !found {
			return err
		}
		if h.Version != schemaVersion {
			return fmt.Errorf("unsupported snapshot version %d", h.Version)
		}

		var m meta
		found, err = get(txn, metaKey(h.Generation), &m)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: generation %d has no metadata", model.ErrMalformed, h.Generation)
		}
		s := &model.State{
			Height:      m.Height,
			BlockHashes: m.BlockHashes,
			Attributes:  m.Attributes,
		}
		if _, err := get(txn, accountsKey(h.Generation), &s.Accounts); err != nil {
			return err
		}

		it := txn.NewIterator(badger.IteratorOptions{Prefix: txPrefix(h.Generation), PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var tx model.Transaction
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tx)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			s.Transactions = append(s.Transactions, tx)
		}
		state = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load wallet state: %w", err)
	}
	return state, nil
}

// SaveState replaces the stored snapshot with state.
func (r *Repository) SaveState(ctx context.Context, state *model.State) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_state", err, start)
	}()

	if state == nil {
		return errors.New("nil wallet state")
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	current, err := r.generation()
	if err != nil {
		return fmt.Errorf("save wallet state at height %d: %w", state.Height, err)
	}
	next := current + 1

	// Leftovers of an interrupted save must not leak into the new generation.
	if err = r.dropGenerations(current); err != nil {
		return fmt.Errorf("save wallet state at height %d: %w", state.Height, err)
	}
	if err = r.writeGeneration(ctx, next, state); err != nil {
		return fmt.Errorf("save wallet state at height %d: %w", state.Height, err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return set(txn, headKey, head{Version: schemaVersion, Generation: next})
	})
	if err != nil {
		return fmt.Errorf("save wallet state at height %d: %w", state.Height, err)
	}
	if err := r.dropGenerations(next); err != nil {
		r.logger.Warn("failed to drop old wallet snapshots", zap.Error(err))
	}
	r.logger.Debug("wallet state saved",
		zap.Uint64("height", state.Height),
		zap.Uint64("generation", next),
		zap.Int("transactions", len(state.Transactions)),
	)
	return nil
}

func get(txn *badger.Txn, key []byte, v any) (bool, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	}); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func set(txn *badger.Txn, key []byte, v any) error {
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := txn.Set(key, val); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// generation returns the committed generation, 0 when nothing was saved yet.
func (r *Repository) generation() (uint64, error) {
	var h head
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := get(txn, headKey, &h)
		return err
	})
	return h.Generation, err
}

// writeGeneration stores state under gen. WriteBatch splits the writes into as many transactions as
// badger needs; none of them is visible through headKey until the caller commits gen.
func (r *Repository) writeGeneration(ctx context.Context, gen uint64, state *model.State) error {
	wb := r.db.NewWriteBatch()
	defer wb.Cancel()

	if err := put(wb, metaKey(gen), meta{
		Height:      state.Height,
		BlockHashes: state.BlockHashes,
		Attributes:  state.Attributes,
	}); err != nil {
		return err
	}
	if err := put(wb, accountsKey(gen), state.Accounts); err != nil {
		return err
	}
	for i := range state.Transactions {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		tx := &state.Transactions[i]
		if err := put(wb, txKey(gen, tx.ID), tx); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush generation %d: %w", gen, err)
	}
	return ctx.Err()
}

// dropGenerations deletes every snapshot key outside generation keep.
func (r *Repository) dropGenerations(keep uint64) error {
	kept := generationPrefix(keep)
	var keys [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: generationsPrefix})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if !bytes.HasPrefix(it.Item().Key(), kept) {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil || len(keys) == 0 {
		return err
	}

	wb := r.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("drop stale snapshots: %w", err)
	}
	return nil
}

func put(wb *badger.WriteBatch, key []byte, v any) error {
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := wb.Set(key, val); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
