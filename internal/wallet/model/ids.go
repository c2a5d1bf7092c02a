// Package model defines the wallet domain: identifiers, accounts, transactions, transfers, outputs
// and the raw daemon types the synchronizer consumes.
package model

import "fmt"

type (
	// AccountIndex is the sequential index of an account, starting at 0.
	AccountIndex uint32
	// SubaddressIndex is the sequential index of a subaddress within an account; 0 is the primary address.
	SubaddressIndex uint32
	// TxID is a transaction hash in hex.
	TxID string
	// Amount is a value in atomic units.
	Amount uint64
)

// SubaddressKey uniquely identifies a subaddress across the wallet.
type SubaddressKey struct {
	Account    AccountIndex
	Subaddress SubaddressIndex
}

func (k SubaddressKey) String() string {
	return fmt.Sprintf("%d/%d", k.Account, k.Subaddress)
}

// KeyImage formats the spend identifier of an output. Outpoints are unique and revealed on spend,
// which is the property the wallet relies on.
func KeyImage(txid TxID, index uint32) string {
	return fmt.Sprintf("%s:%d", txid, index)
}
