// Package query evaluates transaction, transfer and output filters against a transaction source.
//
// Every filter field is optional. A nil pointer or nil slice matches everything, a pointer requires
// equality, a slice requires membership and all present fields must hold. Height and amount ranges
// are inclusive.
package query

import "github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source is a read-only view of wallet transactions in store order.
	Source interface {
		Transactions() []model.Transaction
	}
)

// TxQuery filters transactions. A nested TransferQuery or OutputQuery matches when any contained
// transfer or output matches, and also narrows the returned collections to the matching entries.
type TxQuery struct {
	IDs         []model.TxID
	MinHeight   *uint64
	MaxHeight   *uint64
	IsConfirmed *bool
	IsRelayed   *bool
	IsMinerTx   *bool
	IsIncoming  *bool
	IsOutgoing  *bool
	HasNote     *bool

	TransferQuery *TransferQuery
	OutputQuery   *OutputQuery
}

// TransferQuery filters incoming and outgoing transfers. TxQuery constrains the owning transaction,
// found by id, and may only use transaction scalar fields.
type TransferQuery struct {
	IsIncoming   *bool
	AccountIndex *model.AccountIndex
	// SubaddressIndex matches the subaddress of an incoming transfer or any source subaddress of an
	// outgoing one.
	SubaddressIndex   *model.SubaddressIndex
	SubaddressIndices []model.SubaddressIndex
	// Addresses matches the receiving address of an incoming transfer or any destination address of
	// an outgoing one.
	Addresses       []string
	MinAmount       *model.Amount
	MaxAmount       *model.Amount
	HasDestinations *bool

	TxQuery *TxQuery
}

// OutputQuery filters wallet outputs. TxQuery constrains the creating transaction and may only use
// transaction scalar fields.
type OutputQuery struct {
	AccountIndex      *model.AccountIndex
	SubaddressIndex   *model.SubaddressIndex
	SubaddressIndices []model.SubaddressIndex
	KeyImages         []string
	MinAmount         *model.Amount
	MaxAmount         *model.Amount
	IsSpent           *bool
	IsLocked          *bool

	TxQuery *TxQuery
}

// Ptr returns a pointer to v, for filling optional filter fields.
func Ptr[T any](v T) *T {
	return &v
}
