package syncer

import (
	"context"
	"iter"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/txstore"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Daemon is the node the wallet follows.
	Daemon interface {
		// ChainHeight returns the number of blocks in the daemon's best chain.
		ChainHeight(ctx context.Context) (uint64, error)
		// FetchBlocksFrom streams blocks in ascending height starting at height.
		FetchBlocksFrom(ctx context.Context, height uint64) iter.Seq2[*model.RawBlock, error]
		// PoolTransactionIDs lists the ids currently in the daemon pool.
		PoolTransactionIDs(ctx context.Context) ([]model.TxID, error)
		// PoolTransaction fetches one pool transaction; false means it is no longer in the pool.
		PoolTransaction(ctx context.Context, id model.TxID) (model.RawTransaction, bool, error)
		ReorgSafetyDepth() uint64
	}
	// Decoder extracts the wallet view of a raw transaction; it returns nil for foreign transactions.
	Decoder interface {
		DecodeTransaction(raw model.RawTransaction, keys model.WalletKeys) (*model.Transaction, error)
	}
	// StateStore persists wallet snapshots. LoadState returns nil, nil when nothing was saved yet.
	StateStore interface {
		LoadState(ctx context.Context) (*model.State, error)
		SaveState(ctx context.Context, state *model.State) error
	}
	Ledger interface {
		Height() uint64
		BlockHash(height uint64) (string, bool)
		ApplyBlock(block txstore.Block) (bool, error)
		Rewind(height uint64) error
		SkipTo(height uint64) error
		Upsert(tx model.Transaction) error
		Remove(id model.TxID) error
		UnconfirmedIDs() []model.TxID
		OwnedOutput(keyImage string) (model.Output, bool)
	}
	AddressBook interface {
		LookupAddress(address string) (model.SubaddressKey, bool)
	}
	// Persister captures and restores the whole wallet state.
	Persister interface {
		Snapshot() *model.State
		Restore(state *model.State) error
	}
	Metrics interface {
		ObserveSync(err error, blocks uint64, started time.Time)
		ObserveBlock(err error, height uint64, started time.Time)
		ObserveReorg(height uint64)
		ObserveRetry(operation string, err error)
	}
)
