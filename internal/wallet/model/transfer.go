package model

// Transfer is a movement of value into or out of the wallet. It is either *IncomingTransfer or
// *OutgoingTransfer; callers switch on the concrete type.
type Transfer interface {
	Common() TransferCommon
	isTransfer()
}

// TransferCommon holds the fields shared by both transfer kinds.
type TransferCommon struct {
	// TxID references the owning transaction by lookup.
	TxID         TxID
	AccountIndex AccountIndex
	Amount       Amount
}

// IncomingTransfer credits a single subaddress.
type IncomingTransfer struct {
	TransferCommon
	SubaddressIndex SubaddressIndex
	Address         string
}

// OutgoingTransfer debits one account, possibly drawing from several subaddresses.
type OutgoingTransfer struct {
	TransferCommon
	SubaddressIndices []SubaddressIndex
	Destinations      []Destination
}

// Destination is a recipient of an outgoing transfer.
type Destination struct {
	Address string
	Amount  Amount
}

func (t *IncomingTransfer) Common() TransferCommon { return t.TransferCommon }
func (t *OutgoingTransfer) Common() TransferCommon { return t.TransferCommon }

func (*IncomingTransfer) isTransfer() {}
func (*OutgoingTransfer) isTransfer() {}
