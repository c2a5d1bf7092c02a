package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/account"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/query"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/txstore"
	"go.uber.org/zap"
)

// Wallet is the caller-facing surface over the account registry, the transaction store and the
// synchronizer.
type Wallet struct {
	registry   *account.Registry
	store      *txstore.Store
	attributes *Attributes
	syncer     Syncer
	logger     *zap.Logger
}

// NewWallet builds a Wallet and makes sure the primary account exists.
func NewWallet(registry *account.Registry, store *txstore.Store, attributes *Attributes, syncer Syncer, logger *zap.Logger) (*Wallet, error) {
	if syncer == nil {
		return nil, errors.New("wallet syncer is required")
	}
	if err := registry.EnsurePrimary(); err != nil {
		return nil, fmt.Errorf("create primary account: %w", err)
	}
	return &Wallet{
		registry:   registry,
		store:      store,
		attributes: attributes,
		syncer:     syncer,
		logger:     logger,
	}, nil
}

// Open loads the persisted wallet state.
func (w *Wallet) Open(ctx context.Context) error {
	if err := w.syncer.Load(ctx); err != nil {
		return fmt.Errorf("open wallet: %w", err)
	}
	w.logger.Info("wallet opened", zap.Uint64("height", w.store.Height()))
	return nil
}

func (w *Wallet) PrimaryAddress() (string, error) {
	return w.registry.PrimaryAddress()
}

func (w *Wallet) Address(account model.AccountIndex, subaddress model.SubaddressIndex) (string, error) {
	return w.registry.Address(account, subaddress)
}

// AddressIndex resolves an address to its subaddress.
func (w *Wallet) AddressIndex(address string) (model.Subaddress, error) {
	key, ok := w.registry.LookupAddress(address)
	if !ok {
		return model.Subaddress{}, model.NewNotFound("address", address)
	}
	return w.Subaddress(key.Account, key.Subaddress)
}

func (w *Wallet) CreateAccount(label string) (model.Account, error) {
	acc, err := w.registry.CreateAccount(label)
	if err != nil {
		return model.Account{}, err
	}
	return w.decorateAccount(acc), nil
}

// Accounts lists accounts with balances. Tag, when not empty, keeps only accounts with that tag.
func (w *Wallet) Accounts(includeSubaddresses bool, tag string) []model.Account {
	accounts := w.registry.Accounts(includeSubaddresses)
	result := make([]model.Account, 0, len(accounts))
	for _, acc := range accounts {
		if tag != "" && acc.Tag != tag {
			continue
		}
		result = append(result, w.decorateAccount(acc))
	}
	return result
}

func (w *Wallet) Account(index model.AccountIndex, includeSubaddresses bool) (model.Account, error) {
	acc, err := w.registry.Account(index, includeSubaddresses)
	if err != nil {
		return model.Account{}, err
	}
	return w.decorateAccount(acc), nil
}

func (w *Wallet) CreateSubaddress(account model.AccountIndex, label string) (model.Subaddress, error) {
	sub, err := w.registry.CreateSubaddress(account, label)
	if err != nil {
		return model.Subaddress{}, err
	}
	return w.decorateSubaddress(sub), nil
}

func (w *Wallet) Subaddresses(account model.AccountIndex, indices ...model.SubaddressIndex) ([]model.Subaddress, error) {
	subs, err := w.registry.Subaddresses(account, indices...)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		subs[i] = w.decorateSubaddress(subs[i])
	}
	return subs, nil
}

func (w *Wallet) Subaddress(account model.AccountIndex, index model.SubaddressIndex) (model.Subaddress, error) {
	sub, err := w.registry.Subaddress(account, index)
	if err != nil {
		return model.Subaddress{}, err
	}
	return w.decorateSubaddress(sub), nil
}

func (w *Wallet) SetAccountLabel(account model.AccountIndex, label string) error {
	return w.registry.SetAccountLabel(account, label)
}

func (w *Wallet) SetSubaddressLabel(account model.AccountIndex, index model.SubaddressIndex, label string) error {
	return w.registry.SetSubaddressLabel(model.SubaddressKey{Account: account, Subaddress: index}, label)
}

func (w *Wallet) TagAccounts(tag string, accounts []model.AccountIndex) error {
	if tag == "" {
		return errors.New("tag accounts: empty tag")
	}
	return w.registry.TagAccounts(tag, accounts)
}

func (w *Wallet) UntagAccounts(accounts []model.AccountIndex) error {
	return w.registry.UntagAccounts(accounts)
}

func (w *Wallet) AccountTags() map[string][]model.AccountIndex {
	return w.registry.AccountTags()
}

// Height returns the next block height to sync.
func (w *Wallet) Height() uint64 {
	return w.store.Height()
}

func (w *Wallet) Balance() model.Amount {
	return w.store.TotalBalance().Balance
}

func (w *Wallet) UnlockedBalance() model.Amount {
	return w.store.TotalBalance().UnlockedBalance
}

// AccountBalance returns the balance and unlocked balance of one account.
func (w *Wallet) AccountBalance(account model.AccountIndex) (model.Amount, model.Amount, error) {
	if _, err := w.registry.Account(account, false); err != nil {
		return 0, 0, err
	}
	b := w.store.AccountBalance(account)
	return b.Balance, b.UnlockedBalance, nil
}

// Txs returns the transactions matching q; a nil q returns all of them.
func (w *Wallet) Txs(q *query.TxQuery) ([]model.Transaction, error) {
	return query.Transactions(w.store, q)
}

func (w *Wallet) Transaction(id model.TxID) (model.Transaction, error) {
	return w.store.Transaction(id)
}

func (w *Wallet) Transfers(q *query.TransferQuery) ([]model.Transfer, error) {
	return query.Transfers(w.store, q)
}

func (w *Wallet) Outputs(q *query.OutputQuery) ([]model.Output, error) {
	return query.Outputs(w.store, q)
}

// SetTxNotes sets one note per transaction. Every id is checked before any note is written.
func (w *Wallet) SetTxNotes(ids []model.TxID, notes []string) error {
	if len(ids) != len(notes) {
		return fmt.Errorf("set tx notes: %d ids, %d notes", len(ids), len(notes))
	}
	for _, id := range ids {
		if _, err := w.store.Transaction(id); err != nil {
			return err
		}
	}
	for i, id := range ids {
		if err := w.store.SetNote(id, notes[i]); err != nil {
			return fmt.Errorf("set note of tx %s: %w", id, err)
		}
	}
	return nil
}

func (w *Wallet) TxNotes(ids []model.TxID) ([]string, error) {
	notes := make([]string, 0, len(ids))
	for _, id := range ids {
		tx, err := w.store.Transaction(id)
		if err != nil {
			return nil, err
		}
		notes = append(notes, tx.Note)
	}
	return notes, nil
}

func (w *Wallet) SetAttribute(key, value string) error {
	if key == "" {
		return errors.New("set attribute: empty key")
	}
	w.attributes.Set(key, value)
	return nil
}

func (w *Wallet) Attribute(key string) (string, bool) {
	return w.attributes.Get(key)
}

// Sync brings the wallet up to the daemon tip. A start height above the wallet height skips the
// blocks below it.
func (w *Wallet) Sync(ctx context.Context, startHeight *uint64) (model.SyncResult, error) {
	return w.syncer.Sync(ctx, startHeight)
}

// Run keeps the wallet synced until ctx is canceled.
func (w *Wallet) Run(ctx context.Context, interval time.Duration, signal <-chan struct{}) error {
	return w.syncer.Run(ctx, interval, signal)
}

func (w *Wallet) decorateAccount(acc model.Account) model.Account {
	b := w.store.AccountBalance(acc.Index)
	acc.Balance = b.Balance
	acc.UnlockedBalance = b.UnlockedBalance
	for i := range acc.Subaddresses {
		acc.Subaddresses[i] = w.decorateSubaddress(acc.Subaddresses[i])
	}
	return acc
}

func (w *Wallet) decorateSubaddress(sub model.Subaddress) model.Subaddress {
	b := w.store.SubaddressBalance(sub.Key())
	sub.Balance = b.Balance
	sub.UnlockedBalance = b.UnlockedBalance
	sub.NumUnspentOutputs = b.NumUnspentOutputs
	sub.IsUsed = b.IsUsed
	return sub
}
