package txstore

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/safe"
)

// stage holds what earlier transactions of the same block will add once the block is applied.
type stage struct {
	outputs map[string]model.Output
	spent   map[string]model.TxID
	ids     map[model.TxID]struct{}
}

type validation struct {
	s         *Store
	stage     *stage
	evictions []model.TxID
}

func (s *Store) newValidation(st *stage) *validation {
	return &validation{s: s, stage: st}
}

func invalid(id model.TxID, format string, args ...any) error {
	return fmt.Errorf("%w: tx %s: %s", model.ErrInvalidTransaction, id, fmt.Sprintf(format, args...))
}

func (v *validation) check(tx *model.Transaction) error {
	l := v.s.l
	if tx.ID == "" {
		return fmt.Errorf("%w: missing transaction id", model.ErrInvalidTransaction)
	}
	if !tx.IsIncoming() && !tx.IsOutgoing() {
		return invalid(tx.ID, "no wallet transfers")
	}
	if v.stage != nil {
		if _, dup := v.stage.ids[tx.ID]; dup {
			return invalid(tx.ID, "listed twice")
		}
	}
	if existing, ok := l.txs[tx.ID]; ok {
		if v.s.immutable(existing) {
			return &model.ImmutableError{ID: tx.ID, Height: existing.tx.Height}
		}
		if v.stage != nil && existing.tx.IsConfirmed {
			return invalid(tx.ID, "already confirmed at height %d", existing.tx.Height)
		}
	}

	if err := v.checkTransfers(tx); err != nil {
		return err
	}
	if err := v.checkOutputs(tx); err != nil {
		return err
	}
	evict, err := v.checkSpends(tx)
	if err != nil {
		return err
	}
	v.evictions = append(v.evictions, evict...)

	if v.stage != nil {
		v.stage.ids[tx.ID] = struct{}{}
		for _, o := range tx.Outputs {
			v.stage.outputs[o.KeyImage] = o
		}
		for _, ki := range tx.SpentKeyImages {
			v.stage.spent[ki] = tx.ID
		}
	}
	return nil
}

func (v *validation) checkTransfers(tx *model.Transaction) error {
	amounts := make([]model.Amount, 0, len(tx.IncomingTransfers)+1)
	for _, in := range tx.IncomingTransfers {
		if in == nil {
			return invalid(tx.ID, "nil incoming transfer")
		}
		key := model.SubaddressKey{Account: in.AccountIndex, Subaddress: in.SubaddressIndex}
		if !v.s.subaddresses.ContainsSubaddress(key) {
			return invalid(tx.ID, "incoming transfer to unknown subaddress %s", key)
		}
		amounts = append(amounts, in.Amount)
	}
	if _, err := safe.Sum(amounts...); err != nil {
		return invalid(tx.ID, "incoming amounts: %v", err)
	}

	out := tx.OutgoingTransfer
	if out == nil {
		return nil
	}
	if !v.s.subaddresses.ContainsSubaddress(model.SubaddressKey{Account: out.AccountIndex}) {
		return invalid(tx.ID, "outgoing transfer from unknown account %d", out.AccountIndex)
	}
	for _, idx := range out.SubaddressIndices {
		key := model.SubaddressKey{Account: out.AccountIndex, Subaddress: idx}
		if !v.s.subaddresses.ContainsSubaddress(key) {
			return invalid(tx.ID, "outgoing transfer from unknown subaddress %s", key)
		}
	}
	dest := make([]model.Amount, 0, len(out.Destinations))
	for _, d := range out.Destinations {
		dest = append(dest, d.Amount)
	}
	if _, err := safe.Sum(dest...); err != nil {
		return invalid(tx.ID, "destination amounts: %v", err)
	}
	return nil
}

func (v *validation) checkOutputs(tx *model.Transaction) error {
	l := v.s.l
	seen := make(map[string]struct{}, len(tx.Outputs))
	amounts := make([]model.Amount, 0, len(tx.Outputs))
	for _, o := range tx.Outputs {
		if o.KeyImage == "" {
			return invalid(tx.ID, "output %d has no key image", o.Index)
		}
		if _, dup := seen[o.KeyImage]; dup {
			return invalid(tx.ID, "output %s listed twice", o.KeyImage)
		}
		seen[o.KeyImage] = struct{}{}
		if !v.s.subaddresses.ContainsSubaddress(o.Subaddress()) {
			return invalid(tx.ID, "output %s owned by unknown subaddress %s", o.KeyImage, o.Subaddress())
		}
		if existing, ok := l.outputs[o.KeyImage]; ok && existing.TxID != tx.ID {
			return invalid(tx.ID, "output %s already created by %s", o.KeyImage, existing.TxID)
		}
		if v.stage != nil {
			if staged, ok := v.stage.outputs[o.KeyImage]; ok {
				return invalid(tx.ID, "output %s already created by %s", o.KeyImage, staged.TxID)
			}
		}
		amounts = append(amounts, o.Amount)
	}
	if _, err := safe.Sum(amounts...); err != nil {
		return invalid(tx.ID, "output amounts: %v", err)
	}
	return nil
}

// checkSpends returns pool transactions that lose a double spend to tx.
func (v *validation) checkSpends(tx *model.Transaction) ([]model.TxID, error) {
	l := v.s.l
	var evict []model.TxID
	seen := make(map[string]struct{}, len(tx.SpentKeyImages))
	own := make(map[string]struct{}, len(tx.Outputs))
	for _, o := range tx.Outputs {
		own[o.KeyImage] = struct{}{}
	}

	for _, ki := range tx.SpentKeyImages {
		if _, dup := seen[ki]; dup {
			return nil, invalid(tx.ID, "spends %s twice", ki)
		}
		seen[ki] = struct{}{}
		if _, self := own[ki]; self {
			return nil, invalid(tx.ID, "spends its own output %s", ki)
		}

		if v.stage != nil {
			if spender, ok := v.stage.spent[ki]; ok {
				return nil, invalid(tx.ID, "double spend of %s already spent by %s", ki, spender)
			}
			if _, ok := v.stage.outputs[ki]; ok {
				continue
			}
		}

		o, ok := l.outputs[ki]
		if !ok {
			return nil, invalid(tx.ID, "spends unknown output %s", ki)
		}
		if o.TxID == tx.ID {
			return nil, invalid(tx.ID, "spends its own output %s", ki)
		}
		if !o.IsSpent || o.SpentBy == tx.ID {
			continue
		}
		spender := l.txs[o.SpentBy]
		switch {
		case spender.tx.IsConfirmed:
			return nil, invalid(tx.ID, "double spend of %s confirmed in %s", ki, o.SpentBy)
		case tx.IsConfirmed:
			evict = append(evict, o.SpentBy)
		default:
			return nil, invalid(tx.ID, "conflicts with pool transaction %s on %s", o.SpentBy, ki)
		}
	}
	return evict, nil
}
