package model

import "time"

// Transaction is a wallet-relevant transaction with the transfers it carries.
type Transaction struct {
	ID TxID
	// Height is meaningful only when IsConfirmed is set.
	Height      uint64
	BlockHash   string
	Timestamp   time.Time
	Fee         Amount
	IsConfirmed bool
	IsRelayed   bool
	IsMinerTx   bool
	Note        string

	IncomingTransfers []*IncomingTransfer
	OutgoingTransfer  *OutgoingTransfer

	// Outputs owned by the wallet and created by this transaction. The store keeps them in its own
	// arena and fills this field on read.
	Outputs []Output
	// SpentKeyImages lists wallet outputs consumed by this transaction.
	SpentKeyImages []string
}

// IsIncoming reports whether the wallet received value in the transaction.
func (t *Transaction) IsIncoming() bool { return len(t.IncomingTransfers) > 0 }

// IsOutgoing reports whether the wallet sent value in the transaction.
func (t *Transaction) IsOutgoing() bool { return t.OutgoingTransfer != nil }

// Transfers lists the outgoing transfer first, then incoming ones in their stored order.
func (t *Transaction) Transfers() []Transfer {
	transfers := make([]Transfer, 0, len(t.IncomingTransfers)+1)
	if t.OutgoingTransfer != nil {
		transfers = append(transfers, t.OutgoingTransfer)
	}
	for _, in := range t.IncomingTransfers {
		transfers = append(transfers, in)
	}
	return transfers
}

// Clone returns a deep copy safe to hand to readers.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	if t.IncomingTransfers != nil {
		c.IncomingTransfers = make([]*IncomingTransfer, len(t.IncomingTransfers))
		for i, in := range t.IncomingTransfers {
			cp := *in
			c.IncomingTransfers[i] = &cp
		}
	}
	if t.OutgoingTransfer != nil {
		out := *t.OutgoingTransfer
		out.SubaddressIndices = append([]SubaddressIndex(nil), out.SubaddressIndices...)
		out.Destinations = append([]Destination(nil), out.Destinations...)
		c.OutgoingTransfer = &out
	}
	if t.Outputs != nil {
		c.Outputs = append([]Output(nil), t.Outputs...)
	}
	if t.SpentKeyImages != nil {
		c.SpentKeyImages = append([]string(nil), t.SpentKeyImages...)
	}
	return &c
}

// Output is a value record controlled by a subaddress.
type Output struct {
	TxID            TxID
	Index           uint32
	AccountIndex    AccountIndex
	SubaddressIndex SubaddressIndex
	Amount          Amount
	KeyImage        string
	IsSpent         bool
	SpentBy         TxID
	IsLocked        bool
	// UnlockHeight is the wallet height at which the output becomes spendable.
	UnlockHeight uint64
}

// Subaddress returns the owning subaddress of the output.
func (o Output) Subaddress() SubaddressKey {
	return SubaddressKey{Account: o.AccountIndex, Subaddress: o.SubaddressIndex}
}

// SyncResult summarizes one sync call.
type SyncResult struct {
	NumBlocksFetched uint64
	ReceivedMoney    bool
}
