package query

import (
	"slices"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Matches reports whether tx satisfies the query, including nested transfer and output queries.
func (q *TxQuery) Matches(tx *model.Transaction) bool {
	if q == nil {
		return true
	}
	if tx == nil || !q.matchesScalars(tx) {
		return false
	}
	if q.TransferQuery != nil && !slices.ContainsFunc(tx.Transfers(), func(t model.Transfer) bool {
		return q.TransferQuery.Matches(t, tx)
	}) {
		return false
	}
	if q.OutputQuery != nil && !slices.ContainsFunc(tx.Outputs, func(o model.Output) bool {
		return q.OutputQuery.Matches(o, tx)
	}) {
		return false
	}
	return true
}

func (q *TxQuery) matchesScalars(tx *model.Transaction) bool {
	if q.IDs != nil && !slices.Contains(q.IDs, tx.ID) {
		return false
	}
	if q.MinHeight != nil || q.MaxHeight != nil {
		// Unconfirmed transactions have no height to compare.
		if !tx.IsConfirmed || !inRange(tx.Height, q.MinHeight, q.MaxHeight) {
			return false
		}
	}
	return flag(q.IsConfirmed, tx.IsConfirmed) &&
		flag(q.IsRelayed, tx.IsRelayed) &&
		flag(q.IsMinerTx, tx.IsMinerTx) &&
		flag(q.IsIncoming, tx.IsIncoming()) &&
		flag(q.IsOutgoing, tx.IsOutgoing()) &&
		flag(q.HasNote, tx.Note != "")
}

// Matches reports whether t satisfies the query. owner is the transaction t belongs to and is only
// consulted by the TxQuery back-reference; a nil owner fails a present TxQuery.
func (q *TransferQuery) Matches(t model.Transfer, owner *model.Transaction) bool {
	if q == nil {
		return true
	}
	if t == nil {
		return false
	}
	common := t.Common()
	if q.AccountIndex != nil && *q.AccountIndex != common.AccountIndex {
		return false
	}
	if !inRange(common.Amount, q.MinAmount, q.MaxAmount) {
		return false
	}

	switch tr := t.(type) {
	case *model.IncomingTransfer:
		if !flag(q.IsIncoming, true) || !flag(q.HasDestinations, false) {
			return false
		}
		if q.SubaddressIndex != nil && *q.SubaddressIndex != tr.SubaddressIndex {
			return false
		}
		if q.SubaddressIndices != nil && !slices.Contains(q.SubaddressIndices, tr.SubaddressIndex) {
			return false
		}
		if q.Addresses != nil && !slices.Contains(q.Addresses, tr.Address) {
			return false
		}
	case *model.OutgoingTransfer:
		if !flag(q.IsIncoming, false) || !flag(q.HasDestinations, len(tr.Destinations) > 0) {
			return false
		}
		if q.SubaddressIndex != nil && !slices.Contains(tr.SubaddressIndices, *q.SubaddressIndex) {
			return false
		}
		if q.SubaddressIndices != nil && !slices.ContainsFunc(tr.SubaddressIndices, func(idx model.SubaddressIndex) bool {
			return slices.Contains(q.SubaddressIndices, idx)
		}) {
			return false
		}
		if q.Addresses != nil && !slices.ContainsFunc(tr.Destinations, func(d model.Destination) bool {
			return slices.Contains(q.Addresses, d.Address)
		}) {
			return false
		}
	default:
		return false
	}

	if q.TxQuery != nil {
		return owner != nil && q.TxQuery.matchesScalars(owner)
	}
	return true
}

// Matches reports whether o satisfies the query. owner is the transaction that created o and is
// only consulted by the TxQuery back-reference.
func (q *OutputQuery) Matches(o model.Output, owner *model.Transaction) bool {
	if q == nil {
		return true
	}
	if q.AccountIndex != nil && *q.AccountIndex != o.AccountIndex {
		return false
	}
	if q.SubaddressIndex != nil && *q.SubaddressIndex != o.SubaddressIndex {
		return false
	}
	if q.SubaddressIndices != nil && !slices.Contains(q.SubaddressIndices, o.SubaddressIndex) {
		return false
	}
	if q.KeyImages != nil && !slices.Contains(q.KeyImages, o.KeyImage) {
		return false
	}
	if !inRange(o.Amount, q.MinAmount, q.MaxAmount) {
		return false
	}
	if !flag(q.IsSpent, o.IsSpent) || !flag(q.IsLocked, o.IsLocked) {
		return false
	}
	if q.TxQuery != nil {
		return owner != nil && q.TxQuery.matchesScalars(owner)
	}
	return true
}

func flag(want *bool, got bool) bool {
	return want == nil || *want == got
}

func inRange[T model.Amount | uint64](v T, lo, hi *T) bool {
	return (lo == nil || v >= *lo) && (hi == nil || v <= *hi)
}
