// Package txstore keeps the merged view of wallet transactions, their outputs and the
// per-account and per-subaddress balances derived from them.
package txstore

import "github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SubaddressValidator reports whether a subaddress is known to the wallet.
	SubaddressValidator interface {
		ContainsSubaddress(key model.SubaddressKey) bool
	}
)

// Block is one daemon block worth of decoded wallet transactions, committed atomically.
type Block struct {
	Height       uint64
	Hash         string
	Transactions []model.Transaction
}

// Balance aggregates the outputs of an account or a subaddress.
type Balance struct {
	Balance           model.Amount
	UnlockedBalance   model.Amount
	NumUnspentOutputs int
	IsUsed            bool
}
