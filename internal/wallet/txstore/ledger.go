package txstore

import (
	"cmp"
	"slices"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

type record struct {
	// tx never carries Outputs; they live in the ledger arena.
	tx      *model.Transaction
	outputs []string
	seq     uint64
}

type balance struct {
	total    model.Amount
	unlocked model.Amount
	unspent  int
	received int
}

// ledger is the mutable state behind Store. All methods expect the caller to hold the store lock
// and to have validated the transactions they apply.
type ledger struct {
	height   uint64
	seq      uint64
	txs      map[model.TxID]*record
	outputs  map[string]*model.Output
	unlocks  map[uint64][]string
	accounts map[model.AccountIndex]*balance
	subaddrs map[model.SubaddressKey]*balance
	hashes   map[uint64]string
}

func newLedger() *ledger {
	return &ledger{
		txs:      make(map[model.TxID]*record),
		outputs:  make(map[string]*model.Output),
		unlocks:  make(map[uint64][]string),
		accounts: make(map[model.AccountIndex]*balance),
		subaddrs: make(map[model.SubaddressKey]*balance),
		hashes:   make(map[uint64]string),
	}
}

func (l *ledger) balancesOf(o *model.Output) (*balance, *balance) {
	acc, ok := l.accounts[o.AccountIndex]
	if !ok {
		acc = &balance{}
		l.accounts[o.AccountIndex] = acc
	}
	sub, ok := l.subaddrs[o.Subaddress()]
	if !ok {
		sub = &balance{}
		l.subaddrs[o.Subaddress()] = sub
	}
	return acc, sub
}

func (l *ledger) credit(o *model.Output) {
	acc, sub := l.balancesOf(o)
	for _, b := range []*balance{acc, sub} {
		b.total += o.Amount
		if !o.IsLocked {
			b.unlocked += o.Amount
		}
		b.unspent++
	}
}

func (l *ledger) debit(o *model.Output) {
	acc, sub := l.balancesOf(o)
	for _, b := range []*balance{acc, sub} {
		b.total -= o.Amount
		if !o.IsLocked {
			b.unlocked -= o.Amount
		}
		b.unspent--
	}
}

func (l *ledger) lockedAt(tx *model.Transaction, o *model.Output, height uint64) bool {
	return !tx.IsConfirmed || o.UnlockHeight > height
}

func (l *ledger) attach(tx *model.Transaction) {
	l.seq++
	stored := tx.Clone()
	stored.Outputs = nil
	rec := &record{tx: stored, seq: l.seq}

	for _, src := range tx.Outputs {
		o := src
		o.TxID = tx.ID
		o.IsSpent, o.SpentBy = false, ""
		o.IsLocked = l.lockedAt(tx, &o, l.height)
		l.outputs[o.KeyImage] = &o
		rec.outputs = append(rec.outputs, o.KeyImage)
		l.credit(&o)
		_, sub := l.balancesOf(&o)
		sub.received++
		if o.IsLocked && tx.IsConfirmed {
			l.unlocks[o.UnlockHeight] = append(l.unlocks[o.UnlockHeight], o.KeyImage)
		}
	}
	l.txs[tx.ID] = rec

	for _, ki := range tx.SpentKeyImages {
		if o, ok := l.outputs[ki]; ok && !o.IsSpent {
			l.spend(o, tx.ID)
		}
	}
}

func (l *ledger) detach(id model.TxID) {
	rec, ok := l.txs[id]
	if !ok {
		return
	}
	for _, ki := range rec.tx.SpentKeyImages {
		if o, ok := l.outputs[ki]; ok && o.SpentBy == id {
			l.unspend(o)
		}
	}
	for _, ki := range rec.outputs {
		o := l.outputs[ki]
		if !o.IsSpent {
			l.debit(o)
		}
		_, sub := l.balancesOf(o)
		sub.received--
		delete(l.outputs, ki)
	}
	delete(l.txs, id)
}

func (l *ledger) spend(o *model.Output, by model.TxID) {
	l.debit(o)
	o.IsSpent = true
	o.SpentBy = by
}

func (l *ledger) unspend(o *model.Output) {
	o.IsSpent = false
	o.SpentBy = ""
	l.credit(o)
}

// replace swaps a stored transaction for a new version, keeping spends of its outputs by other
// transactions when the new version still creates them and dropping those spenders otherwise.
func (l *ledger) replace(tx *model.Transaction) {
	old := l.txs[tx.ID]
	children := make(map[string]model.TxID)
	for _, ki := range old.outputs {
		if o := l.outputs[ki]; o.IsSpent && o.SpentBy != tx.ID {
			children[ki] = o.SpentBy
		}
	}
	l.detach(tx.ID)
	l.attach(tx)
	for ki, child := range children {
		if _, ok := l.txs[child]; !ok {
			continue
		}
		if o, ok := l.outputs[ki]; ok {
			if !o.IsSpent {
				l.spend(o, child)
			}
			continue
		}
		l.removeCascade(child)
	}
}

// descendants lists transactions spending outputs of id, transitively, children before parents.
func (l *ledger) descendants(id model.TxID) []model.TxID {
	var order []model.TxID
	seen := map[model.TxID]bool{id: true}
	var visit func(model.TxID)
	visit = func(cur model.TxID) {
		rec, ok := l.txs[cur]
		if !ok {
			return
		}
		for _, ki := range rec.outputs {
			o := l.outputs[ki]
			if !o.IsSpent || seen[o.SpentBy] {
				continue
			}
			seen[o.SpentBy] = true
			visit(o.SpentBy)
			order = append(order, o.SpentBy)
		}
	}
	visit(id)
	return order
}

func (l *ledger) removeCascade(id model.TxID) []model.TxID {
	removed := l.descendants(id)
	for _, child := range removed {
		l.detach(child)
	}
	l.detach(id)
	return append(removed, id)
}

// advance moves the synced height forward and unlocks outputs that matured on the way.
func (l *ledger) advance(height uint64) {
	var due []uint64
	for h := range l.unlocks {
		if h > l.height && h <= height {
			due = append(due, h)
		}
	}
	slices.Sort(due)
	for _, h := range due {
		for _, ki := range l.unlocks[h] {
			l.unlock(ki, h)
		}
		delete(l.unlocks, h)
	}
	if height > l.height {
		l.height = height
	}
}

func (l *ledger) unlock(ki string, height uint64) {
	o, ok := l.outputs[ki]
	if !ok || !o.IsLocked || o.UnlockHeight > height {
		return
	}
	if rec, ok := l.txs[o.TxID]; !ok || !rec.tx.IsConfirmed {
		return
	}
	o.IsLocked = false
	if o.IsSpent {
		return
	}
	acc, sub := l.balancesOf(o)
	acc.unlocked += o.Amount
	sub.unlocked += o.Amount
}

// rewind drops every transaction confirmed at or above height and re-locks outputs that are no
// longer mature at the lower height.
func (l *ledger) rewind(height uint64) []model.TxID {
	var doomed []*record
	for _, rec := range l.txs {
		if rec.tx.IsConfirmed && rec.tx.Height >= height {
			doomed = append(doomed, rec)
		}
	}
	slices.SortFunc(doomed, func(a, b *record) int {
		return -compareRecords(a, b)
	})

	var removed []model.TxID
	for _, rec := range doomed {
		if _, ok := l.txs[rec.tx.ID]; !ok {
			continue
		}
		removed = append(removed, l.removeCascade(rec.tx.ID)...)
	}

	l.height = height
	for h := range l.hashes {
		if h >= height {
			delete(l.hashes, h)
		}
	}
	for ki, o := range l.outputs {
		if o.IsLocked || o.UnlockHeight <= height {
			continue
		}
		if o.IsSpent {
			o.IsLocked = true
		} else {
			acc, sub := l.balancesOf(o)
			acc.unlocked -= o.Amount
			sub.unlocked -= o.Amount
			o.IsLocked = true
		}
		l.unlocks[o.UnlockHeight] = append(l.unlocks[o.UnlockHeight], ki)
	}
	return removed
}

func (l *ledger) ordered() []*record {
	records := make([]*record, 0, len(l.txs))
	for _, rec := range l.txs {
		records = append(records, rec)
	}
	slices.SortFunc(records, compareRecords)
	return records
}

// compareRecords orders confirmed transactions by height then insertion, unconfirmed ones last.
func compareRecords(a, b *record) int {
	if a.tx.IsConfirmed != b.tx.IsConfirmed {
		if a.tx.IsConfirmed {
			return -1
		}
		return 1
	}
	if a.tx.IsConfirmed {
		if c := cmp.Compare(a.tx.Height, b.tx.Height); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.seq, b.seq)
}

func (l *ledger) materialize(rec *record) model.Transaction {
	tx := rec.tx.Clone()
	tx.Outputs = make([]model.Output, 0, len(rec.outputs))
	for _, ki := range rec.outputs {
		tx.Outputs = append(tx.Outputs, *l.outputs[ki])
	}
	return *tx
}

func (b *balance) export() Balance {
	if b == nil {
		return Balance{}
	}
	return Balance{
		Balance:           b.total,
		UnlockedBalance:   b.unlocked,
		NumUnspentOutputs: b.unspent,
		IsUsed:            b.received > 0,
	}
}
