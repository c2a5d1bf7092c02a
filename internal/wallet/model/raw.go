package model

import "time"

// RawBlock is a block as delivered by the daemon, before wallet decoding.
type RawBlock struct {
	Height       uint64
	Hash         string
	PrevHash     string
	Timestamp    time.Time
	Transactions []RawTransaction
}

// RawTransaction is a serialized transaction with its chain position.
type RawTransaction struct {
	ID        TxID
	Payload   []byte
	Height    uint64
	Confirmed bool
	Timestamp time.Time
	// Parents lists the transactions whose outputs this one spends.
	Parents []TxID
}

// WalletKeys is the view of wallet ownership a decoder needs.
type WalletKeys interface {
	LookupAddress(address string) (SubaddressKey, bool)
	OwnedOutput(keyImage string) (Output, bool)
}

// State is the persisted wallet snapshot, always taken at a block boundary.
type State struct {
	// Height is the next block height to sync.
	Height       uint64
	Accounts     []Account
	Transactions []Transaction
	BlockHashes  map[uint64]string
	Attributes   map[string]string
}
