package bitcoin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/safe"
	"go.uber.org/zap"
)

// Daemon streams blocks and pool transactions from a node.
type Daemon struct {
	node       Node
	reorgDepth uint64
	logger     *zap.Logger
}

// NewDaemon constructs a Daemon. reorgDepth bounds how many blocks a sync may rewind.
func NewDaemon(node Node, reorgDepth uint64, logger *zap.Logger) *Daemon {
	return &Daemon{node: node, reorgDepth: reorgDepth, logger: logger}
}

// ChainHeight returns the number of blocks in the best chain, i.e. tip height + 1.
func (d *Daemon) ChainHeight(_ context.Context) (uint64, error) {
	count, err := d.node.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	tip, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return tip + 1, nil
}

func (d *Daemon) ReorgSafetyDepth() uint64 {
	return d.reorgDepth
}

// FetchBlocksFrom yields blocks from height up to the tip seen when the stream starts. The stream
// stops after the first error.
func (d *Daemon) FetchBlocksFrom(ctx context.Context, height uint64) iter.Seq2[*model.RawBlock, error] {
	return func(yield func(*model.RawBlock, error) bool) {
		tip, err := d.ChainHeight(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		for h := height; h < tip; h++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			block, err := d.fetchBlock(h)
			if !yield(block, err) || err != nil {
				return
			}
		}
	}
}

func (d *Daemon) fetchBlock(height uint64) (*model.RawBlock, error) {
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	hash, err := d.node.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	msg, err := d.node.GetBlock(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	if got := msg.BlockHash(); !got.IsEqual(hash) {
		return nil, fmt.Errorf("%w: block at height %d hashes to %s, expected %s", model.ErrMalformed, height, got, hash)
	}

	block := &model.RawBlock{
		Height:       height,
		Hash:         hash.String(),
		PrevHash:     msg.Header.PrevBlock.String(),
		Timestamp:    msg.Header.Timestamp.UTC(),
		Transactions: make([]model.RawTransaction, 0, len(msg.Transactions)),
	}
	for _, tx := range msg.Transactions {
		raw, err := rawTransaction(tx)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", height, err)
		}
		raw.Height = height
		raw.Confirmed = true
		raw.Timestamp = block.Timestamp
		block.Transactions = append(block.Transactions, raw)
	}
	return block, nil
}

// PoolTransactionIDs lists the node mempool.
func (d *Daemon) PoolTransactionIDs(_ context.Context) ([]model.TxID, error) {
	hashes, err := d.node.GetRawMempool()
	if err != nil {
		return nil, fmt.Errorf("get raw mempool: %w", err)
	}
	ids := make([]model.TxID, 0, len(hashes))
	for _, hash := range hashes {
		ids = append(ids, model.TxID(hash.String()))
	}
	return ids, nil
}

// PoolTransaction fetches one pool transaction. It reports false when the transaction left the pool
// after it was listed.
func (d *Daemon) PoolTransaction(ctx context.Context, id model.TxID) (model.RawTransaction, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.RawTransaction{}, false, err
	}
	hash, err := chainhash.NewHashFromStr(string(id))
	if err != nil {
		return model.RawTransaction{}, false, fmt.Errorf("%w: pool tx id %q: %v", model.ErrMalformed, id, err)
	}
	tx, err := d.node.GetRawTransaction(hash)
	if err != nil {
		var rpcErr *btcjson.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCNoTxInfo {
			d.logger.Debug("pool transaction vanished", zap.Stringer("tx", hash))
			return model.RawTransaction{}, false, nil
		}
		return model.RawTransaction{}, false, fmt.Errorf("get raw transaction %s: %w", hash, err)
	}
	raw, err := rawTransaction(tx.MsgTx())
	if err != nil {
		return model.RawTransaction{}, false, err
	}
	return raw, true, nil
}

func rawTransaction(tx *wire.MsgTx) (model.RawTransaction, error) {
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return model.RawTransaction{}, fmt.Errorf("serialize tx %s: %w", tx.TxHash(), err)
	}
	raw := model.RawTransaction{
		ID:      model.TxID(tx.TxHash().String()),
		Payload: buf.Bytes(),
	}
	if blockchain.IsCoinBaseTx(tx) {
		return raw, nil
	}
	for _, in := range tx.TxIn {
		parent := model.TxID(in.PreviousOutPoint.Hash.String())
		if !slices.Contains(raw.Parents, parent) {
			raw.Parents = append(raw.Parents, parent)
		}
	}
	return raw, nil
}
