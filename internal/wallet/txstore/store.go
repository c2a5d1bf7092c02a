package txstore

import (
	"fmt"
	"maps"
	"math"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/safe"
	"go.uber.org/zap"
)

// Store merges wallet transactions and keeps balances in step with them. Readers always get
// copies; a transaction is never observed half-applied.
type Store struct {
	mu           sync.RWMutex
	subaddresses SubaddressValidator
	reorgDepth   uint64
	logger       *zap.Logger
	l            *ledger
}

// New constructs an empty Store. Transactions confirmed more than reorgDepth blocks below the
// synced height are immutable.
func New(subaddresses SubaddressValidator, reorgDepth uint64, logger *zap.Logger) *Store {
	return &Store{
		subaddresses: subaddresses,
		reorgDepth:   reorgDepth,
		logger:       logger,
		l:            newLedger(),
	}
}

// Height returns the next block height to sync.
func (s *Store) Height() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.l.height
}

// BlockHash returns the recorded hash of a synced block within the reorg window.
func (s *Store) BlockHash(height uint64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.l.hashes[height]
	return hash, ok
}

// ReorgDepth returns the number of recent blocks that may still be rewound.
func (s *Store) ReorgDepth() uint64 {
	return s.reorgDepth
}

// Upsert inserts a transaction or replaces the stored version with the same id.
func (s *Store) Upsert(tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepared := prepare(tx)
	v := s.newValidation(nil)
	if prepared.IsConfirmed && prepared.Height >= s.l.height {
		return fmt.Errorf("%w: tx %s confirmed at height %d not yet synced (height %d)",
			model.ErrInvalidTransaction, prepared.ID, prepared.Height, s.l.height)
	}
	if err := v.check(prepared); err != nil {
		return err
	}
	s.evict(v.evictions)
	s.put(prepared)
	return nil
}

// Remove deletes a transaction together with every stored transaction spending its outputs.
func (s *Store) Remove(id model.TxID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.l.txs[id]
	if !ok {
		return model.NewNotFound("transaction", id)
	}
	if s.immutable(rec) {
		return &model.ImmutableError{ID: id, Height: rec.tx.Height}
	}
	for _, child := range s.l.descendants(id) {
		if crec := s.l.txs[child]; s.immutable(crec) {
			return &model.ImmutableError{ID: child, Height: crec.tx.Height}
		}
	}
	removed := s.l.removeCascade(id)
	s.logger.Debug("transactions removed", zap.Int("count", len(removed)), zap.String("tx", string(id)))
	return nil
}

// ApplyBlock commits the wallet transactions of the block at the current height and advances the
// height by one. Nothing is applied when any transaction is rejected. It reports whether the block
// brought previously unknown incoming value.
func (s *Store) ApplyBlock(block Block) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if block.Height != s.l.height {
		return false, fmt.Errorf("apply block %d: store expects height %d", block.Height, s.l.height)
	}

	v := s.newValidation(&stage{outputs: make(map[string]model.Output), spent: make(map[string]model.TxID), ids: make(map[model.TxID]struct{})})
	prepared := make([]*model.Transaction, 0, len(block.Transactions))
	for _, tx := range block.Transactions {
		p := prepare(tx)
		if !p.IsConfirmed || p.Height != block.Height {
			return false, fmt.Errorf("%w: tx %s in block %d is not confirmed at that height",
				model.ErrInvalidTransaction, p.ID, block.Height)
		}
		if p.BlockHash == "" {
			p.BlockHash = block.Hash
		}
		if err := v.check(p); err != nil {
			return false, fmt.Errorf("apply block %d: %w", block.Height, err)
		}
		prepared = append(prepared, p)
	}

	received := false
	s.evict(v.evictions)
	for _, p := range prepared {
		if _, known := s.l.txs[p.ID]; !known && p.IsIncoming() {
			received = true
		}
		s.put(p)
	}
	s.l.advance(block.Height + 1)
	s.l.hashes[block.Height] = block.Hash
	s.pruneHashes()
	return received, nil
}

// SkipTo advances the height without any blocks, as used when a wallet starts above its birthday.
func (s *Store) SkipTo(height uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if height < s.l.height {
		return fmt.Errorf("skip to height %d: store already at %d", height, s.l.height)
	}
	s.l.advance(height)
	s.pruneHashes()
	return nil
}

// Rewind drops everything confirmed at or above height.
func (s *Store) Rewind(height uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if height >= s.l.height {
		return nil
	}
	if s.l.height-height > s.reorgDepth {
		return fmt.Errorf("rewind to %d from %d: %w beyond reorg depth %d",
			height, s.l.height, model.ErrImmutable, s.reorgDepth)
	}
	removed := s.l.rewind(height)
	s.logger.Info("store rewound",
		zap.Uint64("height", height),
		zap.Int("removed_transactions", len(removed)))
	return nil
}

// Transaction returns a stored transaction with its outputs.
func (s *Store) Transaction(id model.TxID) (model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.l.txs[id]
	if !ok {
		return model.Transaction{}, model.NewNotFound("transaction", id)
	}
	return s.l.materialize(rec), nil
}

// Transactions returns every stored transaction: confirmed ones by height and arrival, then
// unconfirmed ones by arrival.
func (s *Store) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.l.ordered()
	txs := make([]model.Transaction, 0, len(records))
	for _, rec := range records {
		txs = append(txs, s.l.materialize(rec))
	}
	return txs
}

// Outputs returns every wallet output in transaction order.
func (s *Store) Outputs() []model.Output {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var outputs []model.Output
	for _, rec := range s.l.ordered() {
		for _, ki := range rec.outputs {
			outputs = append(outputs, *s.l.outputs[ki])
		}
	}
	return outputs
}

// UnconfirmedIDs lists the ids of pool transactions in arrival order.
func (s *Store) UnconfirmedIDs() []model.TxID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []model.TxID
	for _, rec := range s.l.ordered() {
		if !rec.tx.IsConfirmed {
			ids = append(ids, rec.tx.ID)
		}
	}
	return ids
}

// OwnedOutput returns the wallet output with the key image.
func (s *Store) OwnedOutput(keyImage string) (model.Output, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.l.outputs[keyImage]
	if !ok {
		return model.Output{}, false
	}
	return *o, true
}

// AccountBalance aggregates the outputs of an account.
func (s *Store) AccountBalance(account model.AccountIndex) Balance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.l.accounts[account].export()
}

// SubaddressBalance aggregates the outputs of a subaddress.
func (s *Store) SubaddressBalance(key model.SubaddressKey) Balance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.l.subaddrs[key].export()
}

// TotalBalance aggregates every account. Amounts saturate at the largest representable value.
func (s *Store) TotalBalance() Balance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total Balance
	for acc, b := range s.l.accounts {
		e := b.export()
		total.Balance = s.addAmount(acc, total.Balance, e.Balance)
		total.UnlockedBalance = s.addAmount(acc, total.UnlockedBalance, e.UnlockedBalance)
		total.NumUnspentOutputs += e.NumUnspentOutputs
		total.IsUsed = total.IsUsed || e.IsUsed
	}
	return total
}

func (s *Store) addAmount(acc model.AccountIndex, a, b model.Amount) model.Amount {
	sum, err := safe.Add(a, b)
	if err != nil {
		s.logger.Warn("total balance overflows", zap.Uint32("account", uint32(acc)), zap.Error(err))
		return math.MaxUint64
	}
	return sum
}

// SetNote attaches a free-form note to a stored transaction.
func (s *Store) SetNote(id model.TxID, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.l.txs[id]
	if !ok {
		return model.NewNotFound("transaction", id)
	}
	rec.tx.Note = note
	return nil
}

// Snapshot returns the transaction part of the persisted wallet state.
func (s *Store) Snapshot() model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.l.ordered()
	txs := make([]model.Transaction, 0, len(records))
	for _, rec := range records {
		txs = append(txs, s.l.materialize(rec))
	}
	return model.State{
		Height:       s.l.height,
		Transactions: txs,
		BlockHashes:  maps.Clone(s.l.hashes),
	}
}

// Restore rebuilds the store from persisted state. The current content is kept when the state
// does not validate.
func (s *Store) Restore(state model.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.l
	s.l = newLedger()
	s.l.height = state.Height
	for h, hash := range state.BlockHashes {
		s.l.hashes[h] = hash
	}

	v := s.newValidation(nil)
	for _, tx := range state.Transactions {
		p := prepare(tx)
		if p.IsConfirmed && p.Height >= state.Height {
			s.l = current
			return fmt.Errorf("restore tx %s: confirmed at height %d above state height %d", p.ID, p.Height, state.Height)
		}
		if err := v.check(p); err != nil {
			s.l = current
			return fmt.Errorf("restore: %w", err)
		}
		s.put(p)
	}
	s.logger.Info("store restored",
		zap.Uint64("height", state.Height),
		zap.Int("transactions", len(state.Transactions)))
	return nil
}

func (s *Store) put(tx *model.Transaction) {
	if _, ok := s.l.txs[tx.ID]; ok {
		s.l.replace(tx)
		return
	}
	s.l.attach(tx)
}

func (s *Store) evict(ids []model.TxID) {
	for _, id := range ids {
		if _, ok := s.l.txs[id]; !ok {
			continue
		}
		removed := s.l.removeCascade(id)
		s.logger.Info("conflicting pool transactions evicted",
			zap.String("tx", string(id)),
			zap.Int("count", len(removed)))
	}
}

func (s *Store) immutable(rec *record) bool {
	return rec.tx.IsConfirmed && s.l.height > rec.tx.Height && s.l.height-rec.tx.Height > s.reorgDepth
}

func (s *Store) pruneHashes() {
	if s.l.height <= s.reorgDepth+1 {
		return
	}
	floor := s.l.height - s.reorgDepth - 1
	for h := range s.l.hashes {
		if h < floor {
			delete(s.l.hashes, h)
		}
	}
}

// prepare copies a transaction and stamps its id on every transfer and output.
func prepare(tx model.Transaction) *model.Transaction {
	p := tx.Clone()
	for _, in := range p.IncomingTransfers {
		in.TxID = p.ID
	}
	if p.OutgoingTransfer != nil {
		p.OutgoingTransfer.TxID = p.ID
	}
	for i := range p.Outputs {
		p.Outputs[i].TxID = p.ID
	}
	return p
}
