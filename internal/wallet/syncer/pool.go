package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"go.uber.org/zap"
)

// syncPool upserts new wallet transactions from the daemon pool and drops stored pool transactions
// the daemon no longer has. Only ids neither stored nor already seen as foreign are fetched. A
// transaction that does not decode as the wallet's is retried only while one of its pool parents is
// still undecided.
func (c *Coordinator) syncPool(ctx context.Context) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "wallet.pool")
	defer span.End()

	bo := backoff.WithContext(c.newBackOff(), ctx)
	ids, err := backoff.RetryNotifyWithData(func() ([]model.TxID, error) {
		ids, err := c.daemon.PoolTransactionIDs(ctx)
		return ids, c.classify(ctx, err)
	}, bo, c.notify("pool_transactions"))
	if err != nil {
		return false, fmt.Errorf("fetch pool transactions: %w", err)
	}

	known := make(map[model.TxID]struct{})
	for _, id := range c.ledger.UnconfirmedIDs() {
		known[id] = struct{}{}
	}
	inPool := make(map[model.TxID]struct{}, len(ids))
	for _, id := range ids {
		inPool[id] = struct{}{}
	}
	for id := range known {
		if _, ok := inPool[id]; ok {
			continue
		}
		if err := c.ledger.Remove(id); err != nil && !errors.Is(err, model.ErrNotFound) {
			c.logger.Warn("drop pool transaction failed", zap.String("tx", string(id)), zap.Error(err))
			continue
		}
		c.logger.Info("pool transaction dropped", zap.String("tx", string(id)))
	}

	foreign := make(map[model.TxID]struct{}, len(c.foreignPool))
	for id := range c.foreignPool {
		if _, ok := inPool[id]; ok {
			foreign[id] = struct{}{}
		}
	}
	defer func() {
		c.foreignPool = foreign
	}()

	pending, err := c.fetchPool(ctx, ids, func(id model.TxID) bool {
		_, stored := known[id]
		_, seen := foreign[id]
		return stored || seen
	}, foreign)
	if err != nil {
		return false, err
	}

	undecided := make(map[model.TxID]struct{}, len(pending))
	for _, raw := range pending {
		undecided[raw.ID] = struct{}{}
	}
	received := false
	for progress := true; progress && len(pending) > 0; {
		progress = false
		var retry []model.RawTransaction
		for _, raw := range pending {
			added, incoming, err := c.addPoolTransaction(raw)
			if err != nil {
				if !errors.Is(err, model.ErrMalformed) {
					return received, err
				}
				c.logger.Warn("skip malformed pool transaction", zap.String("tx", string(raw.ID)), zap.Error(err))
			}
			if !added && err == nil && awaitsParent(raw, undecided) {
				retry = append(retry, raw)
				continue
			}
			delete(undecided, raw.ID)
			if !added {
				foreign[raw.ID] = struct{}{}
				continue
			}
			progress = true
			received = received || incoming
		}
		pending = retry
	}
	for _, raw := range pending {
		foreign[raw.ID] = struct{}{}
	}
	return received, nil
}

// fetchPool downloads the listed pool transactions that skip does not reject. Malformed ones are
// recorded in foreign.
func (c *Coordinator) fetchPool(ctx context.Context, ids []model.TxID, skip func(model.TxID) bool, foreign map[model.TxID]struct{}) ([]model.RawTransaction, error) {
	type fetched struct {
		raw model.RawTransaction
		ok  bool
	}

	var raws []model.RawTransaction
	for _, id := range ids {
		if skip(id) {
			continue
		}
		bo := backoff.WithContext(c.newBackOff(), ctx)
		got, err := backoff.RetryNotifyWithData(func() (fetched, error) {
			raw, ok, err := c.daemon.PoolTransaction(ctx, id)
			return fetched{raw: raw, ok: ok}, c.classify(ctx, err)
		}, bo, c.notify("pool_transaction"))
		switch {
		case errors.Is(err, model.ErrMalformed):
			c.logger.Warn("skip malformed pool transaction", zap.String("tx", string(id)), zap.Error(err))
			foreign[id] = struct{}{}
		case err != nil:
			return nil, fmt.Errorf("fetch pool tx %s: %w", id, err)
		case got.ok:
			raws = append(raws, got.raw)
		}
	}
	return raws, nil
}

func awaitsParent(raw model.RawTransaction, undecided map[model.TxID]struct{}) bool {
	for _, parent := range raw.Parents {
		if _, ok := undecided[parent]; ok && parent != raw.ID {
			return true
		}
	}
	return false
}

func (c *Coordinator) addPoolTransaction(raw model.RawTransaction) (bool, bool, error) {
	tx, err := c.decoder.DecodeTransaction(raw, newStagedKeys(c.addresses, c.ledger))
	if err != nil {
		return false, false, fmt.Errorf("decode pool tx %s: %w", raw.ID, err)
	}
	if tx == nil {
		return false, false, nil
	}
	if err := c.ledger.Upsert(*tx); err != nil {
		if errors.Is(err, model.ErrInvalidTransaction) {
			c.logger.Info("pool transaction rejected", zap.String("tx", string(raw.ID)), zap.Error(err))
			return false, false, nil
		}
		return false, false, fmt.Errorf("upsert pool tx %s: %w", raw.ID, err)
	}
	return true, tx.IsIncoming(), nil
}
