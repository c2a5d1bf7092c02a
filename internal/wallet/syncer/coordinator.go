// Package syncer merges daemon blocks and pool transactions into the wallet, one atomic block at
// a time.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/txstore"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Status is the state of the coordinator.
type Status int32

const (
	StatusIdle Status = iota
	StatusSyncing
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSyncing:
		return "syncing"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

var (
	errStreamEnded   = errors.New("block stream ended before chain tip")
	errReorgTooDeep  = errors.New("reorganization deeper than safety depth")
	errStartAboveTip = errors.New("start height above chain tip")
)

// Coordinator runs wallet synchronization. At most one sync is in flight at a time.
type Coordinator struct {
	daemon    Daemon
	decoder   Decoder
	states    StateStore
	ledger    Ledger
	addresses AddressBook
	persister Persister
	metrics   Metrics
	logger    *zap.Logger
	tracer    trace.Tracer

	sleep      clock.SleepFunc
	newBackOff func() backoff.BackOff

	status atomic.Int32
	loaded bool
	// foreignPool holds pool transactions already found not to concern the wallet.
	foreignPool map[model.TxID]struct{}
}

// NewCoordinator builds a Coordinator with dependencies.
func NewCoordinator(
	daemon Daemon,
	decoder Decoder,
	states StateStore,
	ledger Ledger,
	addresses AddressBook,
	persister Persister,
	metrics Metrics,
	logger *zap.Logger,
) (*Coordinator, error) {
	if metrics == nil {
		return nil, errors.New("syncer metrics is required")
	}
	return &Coordinator{
		daemon:    daemon,
		decoder:   decoder,
		states:    states,
		ledger:    ledger,
		addresses: addresses,
		persister: persister,
		metrics:   metrics,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
		sleep:     clock.SleepWithContext,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initialRetryInterval
			b.MaxInterval = maxRetryInterval
			b.MaxElapsedTime = 0
			return backoff.WithMaxRetries(b, maxFetchRetries)
		},
	}, nil
}

// Status reports whether a sync is running or the last one failed.
func (c *Coordinator) Status() Status {
	return Status(c.status.Load())
}

func (c *Coordinator) acquire() bool {
	for {
		cur := c.status.Load()
		if Status(cur) == StatusSyncing {
			return false
		}
		if c.status.CompareAndSwap(cur, int32(StatusSyncing)) {
			return true
		}
	}
}

func (c *Coordinator) release(err error) {
	if err != nil {
		c.status.Store(int32(StatusFailed))
		return
	}
	c.status.Store(int32(StatusIdle))
}

// Load restores persisted state unless it was already loaded. It shares the single-flight guard
// with Sync.
func (c *Coordinator) Load(ctx context.Context) error {
	if !c.acquire() {
		return model.ErrSyncInProgress
	}
	err := c.load(ctx)
	c.release(err)
	return err
}

func (c *Coordinator) load(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	state, err := c.states.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("load wallet state: %w", err)
	}
	if state != nil {
		if err := c.persister.Restore(state); err != nil {
			return fmt.Errorf("restore wallet state at height %d: %w", state.Height, err)
		}
		c.logger.Info("wallet state loaded", zap.Uint64("height", state.Height))
	}
	c.loaded = true
	return nil
}

// Sync merges blocks from max(startHeight, wallet height) up to the daemon tip, then reconciles
// pool transactions. The wallet state is saved before returning, also on failure.
func (c *Coordinator) Sync(ctx context.Context, startHeight *uint64) (result model.SyncResult, err error) {
	if !c.acquire() {
		return model.SyncResult{}, model.ErrSyncInProgress
	}
	started := time.Now()
	ctx, span := c.tracer.Start(ctx, "wallet.sync")
	defer func() {
		if saveErr := c.save(ctx); saveErr != nil {
			c.logger.Error("save wallet state failed", zap.Error(saveErr))
			if err == nil {
				err = saveErr
			}
		}
		c.metrics.ObserveSync(err, result.NumBlocksFetched, started)
		span.SetAttributes(attribute.Int64("blocks", int64(result.NumBlocksFetched)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		c.release(err)
	}()

	if err = c.load(ctx); err != nil {
		return model.SyncResult{}, err
	}
	err = c.sync(ctx, startHeight, &result)
	return result, err
}

func (c *Coordinator) save(ctx context.Context) error {
	if !c.loaded {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveStateTimeout)
	defer cancel()
	state := c.persister.Snapshot()
	if err := c.states.SaveState(ctx, state); err != nil {
		return fmt.Errorf("save wallet state at height %d: %w", state.Height, err)
	}
	return nil
}

func (c *Coordinator) sync(ctx context.Context, startHeight *uint64, result *model.SyncResult) error {
	bo := backoff.WithContext(c.newBackOff(), ctx)
	tip, err := backoff.RetryNotifyWithData(func() (uint64, error) {
		tip, err := c.daemon.ChainHeight(ctx)
		return tip, c.classify(ctx, err)
	}, bo, c.notify("chain_height"))
	if err != nil {
		return c.syncError(c.ledger.Height(), err)
	}

	if startHeight != nil && *startHeight > c.ledger.Height() {
		if *startHeight > tip {
			return c.syncError(*startHeight, fmt.Errorf("%w: start height %d, chain height %d", errStartAboveTip, *startHeight, tip))
		}
		if err := c.ledger.SkipTo(*startHeight); err != nil {
			return fmt.Errorf("skip to start height %d: %w", *startHeight, err)
		}
	}

	from := c.ledger.Height()
	c.logger.Debug("sync started", zap.Uint64("from", from), zap.Uint64("tip", tip))

	failedAt := from
	rewound := uint64(0)
	bo = backoff.WithContext(c.newBackOff(), ctx)
	err = backoff.RetryNotify(func() error {
		for {
			restart, height, err := c.stream(ctx, tip, result, bo, &rewound)
			failedAt = height
			if err != nil {
				return c.classify(ctx, err)
			}
			if !restart {
				return nil
			}
		}
	}, bo, c.notify("fetch_blocks"))
	if err != nil {
		return c.syncError(failedAt, err)
	}

	if c.ledger.Height() > from {
		c.logger.Info("blocks synced",
			zap.Uint64("from", from),
			zap.Uint64("height", c.ledger.Height()),
			zap.Uint64("blocks", result.NumBlocksFetched),
			zap.Bool("received_money", result.ReceivedMoney))
	}

	received, err := c.syncPool(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return c.syncError(c.ledger.Height(), ctx.Err())
		}
		c.logger.Warn("pool sync failed", zap.Error(err))
	}
	result.ReceivedMoney = result.ReceivedMoney || received
	return nil
}

// stream commits blocks from the wallet height until tip. It asks for a restart after rewinding
// a block whose successor did not link to it.
func (c *Coordinator) stream(ctx context.Context, tip uint64, result *model.SyncResult, bo backoff.BackOff, rewound *uint64) (bool, uint64, error) {
	height := c.ledger.Height()
	if height >= tip {
		return false, height, nil
	}
	for raw, err := range c.daemon.FetchBlocksFrom(ctx, height) {
		if err != nil {
			return false, height, fmt.Errorf("fetch block %d: %w", height, err)
		}
		if raw == nil {
			return false, height, fmt.Errorf("%w: nil block at height %d", model.ErrMalformed, height)
		}
		if raw.Height != height {
			return false, height, fmt.Errorf("%w: got block %d, expected %d", model.ErrMalformed, raw.Height, height)
		}

		if height > 0 {
			if prev, ok := c.ledger.BlockHash(height - 1); ok && prev != raw.PrevHash {
				if err := c.rewind(height-1, rewound); err != nil {
					return false, height, err
				}
				return true, height - 1, nil
			}
		}

		if err := c.commit(ctx, raw, result); err != nil {
			return false, height, err
		}
		bo.Reset()
		height++
		if height >= tip {
			return false, height, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return false, height, err
	}
	return false, height, fmt.Errorf("%w: at %d, tip %d", errStreamEnded, height, tip)
}

func (c *Coordinator) rewind(height uint64, rewound *uint64) error {
	*rewound++
	if depth := c.daemon.ReorgSafetyDepth(); *rewound > depth {
		return fmt.Errorf("%w: rewound %d blocks, depth %d", errReorgTooDeep, *rewound-1, depth)
	}
	if err := c.ledger.Rewind(height); err != nil {
		return fmt.Errorf("rewind to %d: %w", height, err)
	}
	c.metrics.ObserveReorg(height)
	c.logger.Warn("chain reorganization, block rewound", zap.Uint64("height", height))
	return nil
}

func (c *Coordinator) commit(ctx context.Context, raw *model.RawBlock, result *model.SyncResult) (err error) {
	started := time.Now()
	_, span := c.tracer.Start(ctx, "wallet.block", trace.WithAttributes(
		attribute.Int64("height", int64(raw.Height)),
		attribute.Int("transactions", len(raw.Transactions)),
	))
	defer func() {
		c.metrics.ObserveBlock(err, raw.Height, started)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	keys := newStagedKeys(c.addresses, c.ledger)
	txs := make([]model.Transaction, 0)
	for _, rawTx := range raw.Transactions {
		tx, err := c.decoder.DecodeTransaction(rawTx, keys)
		if err != nil {
			return fmt.Errorf("decode tx %s in block %d: %w", rawTx.ID, raw.Height, err)
		}
		if tx == nil {
			continue
		}
		keys.stage(tx)
		txs = append(txs, *tx)
	}

	received, err := c.ledger.ApplyBlock(txstore.Block{Height: raw.Height, Hash: raw.Hash, Transactions: txs})
	if err != nil {
		return fmt.Errorf("commit block %d: %w", raw.Height, err)
	}
	result.NumBlocksFetched++
	result.ReceivedMoney = result.ReceivedMoney || received
	if len(txs) > 0 {
		c.logger.Debug("block committed",
			zap.Uint64("height", raw.Height),
			zap.Int("wallet_transactions", len(txs)))
	}
	return nil
}

// classify marks errors that retrying cannot fix as permanent.
func (c *Coordinator) classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil ||
		errors.Is(err, model.ErrMalformed) ||
		errors.Is(err, model.ErrInvalidTransaction) ||
		errors.Is(err, model.ErrImmutable) ||
		errors.Is(err, errReorgTooDeep) {
		return backoff.Permanent(err)
	}
	return err
}

func (c *Coordinator) notify(operation string) backoff.Notify {
	return func(err error, next time.Duration) {
		c.metrics.ObserveRetry(operation, err)
		c.logger.Warn("daemon call failed, retrying",
			zap.String("operation", operation),
			zap.Duration("backoff", next),
			zap.Error(err))
	}
}

func (c *Coordinator) syncError(height uint64, err error) error {
	return &model.SyncError{Height: height, LastGoodHeight: c.ledger.Height(), Err: err}
}

// Run syncs repeatedly until ctx is canceled, waiting interval between rounds or until signal fires.
func (c *Coordinator) Run(ctx context.Context, interval time.Duration, signal <-chan struct{}) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		result, err := c.Sync(ctx, nil)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, model.ErrSyncInProgress):
			c.logger.Debug("sync already running, skipping round")
		case err != nil:
			c.logger.Warn("sync round failed", zap.Error(err), zap.Duration("sleep", interval))
		case result.NumBlocksFetched > 0 || result.ReceivedMoney:
			c.logger.Info("sync round finished",
				zap.Uint64("blocks", result.NumBlocksFetched),
				zap.Bool("received_money", result.ReceivedMoney))
		}
		if err := c.wait(ctx, interval, signal); err != nil {
			return err
		}
	}
}

func (c *Coordinator) wait(ctx context.Context, d time.Duration, signal <-chan struct{}) error {
	if signal == nil {
		return c.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-signal:
		return nil
	case <-timer.C:
		return nil
	}
}
