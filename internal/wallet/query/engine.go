package query

import (
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Transactions returns the source transactions matching q in source order. When q filters
// transfers or outputs, each returned transaction keeps only the matching ones, in their original
// order. The source is not read when q is invalid.
//
// TransferQuery and OutputQuery narrow independently. A transaction selected through OutputQuery
// alone keeps its transfers as stored, so it may come back with a nil OutgoingTransfer and no
// IncomingTransfers when it had none; callers that need a transfer must set TransferQuery too.
func Transactions(src Source, q *TxQuery) ([]model.Transaction, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var result []model.Transaction
	for _, tx := range src.Transactions() {
		if !q.Matches(&tx) {
			continue
		}
		result = append(result, project(tx, q))
	}
	return result, nil
}

// Transfers returns every transfer matching q, in transaction order and, within a transaction,
// outgoing first then incoming in their stored order.
func Transfers(src Source, q *TransferQuery) ([]model.Transfer, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	txs := src.Transactions()
	owners := index(txs)
	var result []model.Transfer
	for _, tx := range txs {
		for _, t := range tx.Transfers() {
			if q.Matches(t, owners[t.Common().TxID]) {
				result = append(result, t)
			}
		}
	}
	return result, nil
}

// Outputs returns every wallet output matching q, in transaction order.
func Outputs(src Source, q *OutputQuery) ([]model.Output, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	txs := src.Transactions()
	owners := index(txs)
	var result []model.Output
	for _, tx := range txs {
		for _, o := range tx.Outputs {
			if q.Matches(o, owners[o.TxID]) {
				result = append(result, o)
			}
		}
	}
	return result, nil
}

func index(txs []model.Transaction) map[model.TxID]*model.Transaction {
	byID := make(map[model.TxID]*model.Transaction, len(txs))
	for i := range txs {
		byID[txs[i].ID] = &txs[i]
	}
	return byID
}

func project(tx model.Transaction, q *TxQuery) model.Transaction {
	if q == nil {
		return tx
	}
	// Back-references see the transaction as stored, not as narrowed so far.
	owner := tx
	if tq := q.TransferQuery; tq != nil {
		var incoming []*model.IncomingTransfer
		for _, in := range tx.IncomingTransfers {
			if tq.Matches(in, &owner) {
				incoming = append(incoming, in)
			}
		}
		tx.IncomingTransfers = incoming
		if tx.OutgoingTransfer != nil && !tq.Matches(tx.OutgoingTransfer, &owner) {
			tx.OutgoingTransfer = nil
		}
	}
	if oq := q.OutputQuery; oq != nil {
		var outputs []model.Output
		for _, o := range tx.Outputs {
			if oq.Matches(o, &owner) {
				outputs = append(outputs, o)
			}
		}
		tx.Outputs = outputs
	}
	return tx
}
