package service

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/account"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/txstore"
)

// Persister captures the registry, the transaction store and the attributes as one State.
type Persister struct {
	registry   *account.Registry
	store      *txstore.Store
	attributes *Attributes
}

func NewPersister(registry *account.Registry, store *txstore.Store, attributes *Attributes) *Persister {
	return &Persister{registry: registry, store: store, attributes: attributes}
}

// Snapshot is taken between block commits, so the store part is always at a block boundary.
func (p *Persister) Snapshot() *model.State {
	state := p.store.Snapshot()
	state.Accounts = p.registry.Snapshot()
	state.Attributes = p.attributes.snapshot()
	return &state
}

// Restore replaces the wallet content with state. The registry is put back when the transactions
// do not validate against the restored accounts.
func (p *Persister) Restore(state *model.State) error {
	previous := p.registry.Snapshot()
	if err := p.registry.Restore(state.Accounts); err != nil {
		return fmt.Errorf("restore accounts: %w", err)
	}
	if err := p.registry.EnsurePrimary(); err != nil {
		return p.rollback(previous, fmt.Errorf("restore primary account: %w", err))
	}
	if err := p.store.Restore(*state); err != nil {
		return p.rollback(previous, fmt.Errorf("restore transactions: %w", err))
	}
	p.attributes.restore(state.Attributes)
	return nil
}

func (p *Persister) rollback(previous []model.Account, err error) error {
	if rerr := p.registry.Restore(previous); rerr != nil {
		return fmt.Errorf("%w (rollback: %v)", err, rerr)
	}
	return err
}
