package account

import (
	"fmt"
	"slices"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"go.uber.org/zap"
)

type accountRecord struct {
	label        string
	tag          string
	subaddresses []model.Subaddress
}

// Registry holds accounts in creation order. Balances are not tracked here; the returned
// Account and Subaddress values carry zero balances until decorated by the transaction store.
type Registry struct {
	mu        sync.RWMutex
	deriver   KeyDeriver
	logger    *zap.Logger
	accounts  []*accountRecord
	byAddress map[string]model.SubaddressKey
}

// NewRegistry constructs an empty Registry.
func NewRegistry(deriver KeyDeriver, logger *zap.Logger) *Registry {
	return &Registry{
		deriver:   deriver,
		logger:    logger,
		byAddress: make(map[string]model.SubaddressKey),
	}
}

// EnsurePrimary creates account 0 if the wallet has no accounts yet.
func (r *Registry) EnsurePrimary() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.accounts) > 0 {
		return nil
	}
	_, err := r.createAccountLocked("")
	return err
}

// CreateAccount appends an account with a freshly derived primary subaddress.
func (r *Registry) CreateAccount(label string) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createAccountLocked(label)
}

func (r *Registry) createAccountLocked(label string) (model.Account, error) {
	index := model.AccountIndex(len(r.accounts))
	primary, err := r.derive(index, 0, label)
	if err != nil {
		return model.Account{}, err
	}

	rec := &accountRecord{label: label, subaddresses: []model.Subaddress{primary}}
	r.accounts = append(r.accounts, rec)
	r.byAddress[primary.Address] = primary.Key()
	r.logger.Info("account created", zap.Uint32("account", uint32(index)), zap.String("label", label))

	return r.accountLocked(index, false), nil
}

// Accounts returns all accounts in creation order.
func (r *Registry) Accounts(includeSubaddresses bool) []model.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]model.Account, 0, len(r.accounts))
	for i := range r.accounts {
		accounts = append(accounts, r.accountLocked(model.AccountIndex(i), includeSubaddresses))
	}
	return accounts
}

// Account returns the account at index.
func (r *Registry) Account(index model.AccountIndex, includeSubaddresses bool) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(index) >= len(r.accounts) {
		return model.Account{}, model.NewNotFound("account", index)
	}
	return r.accountLocked(index, includeSubaddresses), nil
}

func (r *Registry) accountLocked(index model.AccountIndex, includeSubaddresses bool) model.Account {
	rec := r.accounts[index]
	acc := model.Account{Index: index, Label: rec.label, Tag: rec.tag}
	if includeSubaddresses {
		acc.Subaddresses = slices.Clone(rec.subaddresses)
	}
	return acc
}

// CreateSubaddress appends the next subaddress under an account.
func (r *Registry) CreateSubaddress(account model.AccountIndex, label string) (model.Subaddress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if int(account) >= len(r.accounts) {
		return model.Subaddress{}, model.NewNotFound("account", account)
	}
	rec := r.accounts[account]
	sub, err := r.derive(account, model.SubaddressIndex(len(rec.subaddresses)), label)
	if err != nil {
		return model.Subaddress{}, err
	}
	rec.subaddresses = append(rec.subaddresses, sub)
	r.byAddress[sub.Address] = sub.Key()
	r.logger.Debug("subaddress created", zap.Stringer("subaddress", sub.Key()))
	return sub, nil
}

// Subaddresses returns subaddresses of an account in ascending index order. When indices are given
// only those are returned; indices that do not exist are dropped without error.
func (r *Registry) Subaddresses(account model.AccountIndex, indices ...model.SubaddressIndex) ([]model.Subaddress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(account) >= len(r.accounts) {
		return nil, model.NewNotFound("account", account)
	}
	all := r.accounts[account].subaddresses
	if len(indices) == 0 {
		return slices.Clone(all), nil
	}

	wanted := make(map[model.SubaddressIndex]struct{}, len(indices))
	for _, idx := range indices {
		wanted[idx] = struct{}{}
	}
	result := make([]model.Subaddress, 0, len(wanted))
	for _, sub := range all {
		if _, ok := wanted[sub.Index]; ok {
			result = append(result, sub)
		}
	}
	return result, nil
}

// Subaddress returns a single subaddress.
func (r *Registry) Subaddress(account model.AccountIndex, index model.SubaddressIndex) (model.Subaddress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.subaddressLocked(model.SubaddressKey{Account: account, Subaddress: index})
	if !ok {
		return model.Subaddress{}, model.NewNotFound("subaddress", model.SubaddressKey{Account: account, Subaddress: index})
	}
	return *sub, nil
}

func (r *Registry) subaddressLocked(key model.SubaddressKey) (*model.Subaddress, bool) {
	if int(key.Account) >= len(r.accounts) {
		return nil, false
	}
	subs := r.accounts[key.Account].subaddresses
	if int(key.Subaddress) >= len(subs) {
		return nil, false
	}
	return &subs[key.Subaddress], true
}

// Address returns the address of a subaddress.
func (r *Registry) Address(account model.AccountIndex, index model.SubaddressIndex) (string, error) {
	sub, err := r.Subaddress(account, index)
	if err != nil {
		return "", err
	}
	return sub.Address, nil
}

// PrimaryAddress returns the address of subaddress 0 of account 0.
func (r *Registry) PrimaryAddress() (string, error) {
	return r.Address(0, 0)
}

// LookupAddress resolves an address to the subaddress that owns it.
func (r *Registry) LookupAddress(address string) (model.SubaddressKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.byAddress[address]
	return key, ok
}

// ContainsSubaddress reports whether the subaddress exists.
func (r *Registry) ContainsSubaddress(key model.SubaddressKey) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.subaddressLocked(key)
	return ok
}

// SetAccountLabel relabels an account.
func (r *Registry) SetAccountLabel(account model.AccountIndex, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(account) >= len(r.accounts) {
		return model.NewNotFound("account", account)
	}
	r.accounts[account].label = label
	r.accounts[account].subaddresses[0].Label = label
	return nil
}

// SetSubaddressLabel relabels a subaddress. Relabelling subaddress 0 also relabels the account.
func (r *Registry) SetSubaddressLabel(key model.SubaddressKey, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subaddressLocked(key)
	if !ok {
		return model.NewNotFound("subaddress", key)
	}
	sub.Label = label
	if key.Subaddress == 0 {
		r.accounts[key.Account].label = label
	}
	return nil
}

// TagAccounts assigns tag to every listed account; all indices are checked before any is tagged.
func (r *Registry) TagAccounts(tag string, accounts []model.AccountIndex) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, idx := range accounts {
		if int(idx) >= len(r.accounts) {
			return model.NewNotFound("account", idx)
		}
	}
	for _, idx := range accounts {
		r.accounts[idx].tag = tag
	}
	return nil
}

// UntagAccounts clears the tag of every listed account.
func (r *Registry) UntagAccounts(accounts []model.AccountIndex) error {
	return r.TagAccounts("", accounts)
}

// AccountTags maps each tag in use to its accounts in ascending order.
func (r *Registry) AccountTags() map[string][]model.AccountIndex {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make(map[string][]model.AccountIndex)
	for i, rec := range r.accounts {
		if rec.tag == "" {
			continue
		}
		tags[rec.tag] = append(tags[rec.tag], model.AccountIndex(i))
	}
	return tags
}

// Snapshot returns every account with its subaddresses, for persistence.
func (r *Registry) Snapshot() []model.Account {
	return r.Accounts(true)
}

// Restore replaces the registry content with persisted accounts. Indices must be sequential.
func (r *Registry) Restore(accounts []model.Account) error {
	records := make([]*accountRecord, 0, len(accounts))
	byAddress := make(map[string]model.SubaddressKey)
	for i, acc := range accounts {
		if acc.Index != model.AccountIndex(i) {
			return fmt.Errorf("restore account %d: unexpected index %d", i, acc.Index)
		}
		if len(acc.Subaddresses) == 0 {
			return fmt.Errorf("restore account %d: missing primary subaddress", i)
		}
		rec := &accountRecord{label: acc.Label, tag: acc.Tag}
		for j, sub := range acc.Subaddresses {
			if sub.AccountIndex != acc.Index || sub.Index != model.SubaddressIndex(j) {
				return fmt.Errorf("restore account %d: unexpected subaddress %s", i, sub.Key())
			}
			rec.subaddresses = append(rec.subaddresses, stripBalances(sub))
			byAddress[sub.Address] = sub.Key()
		}
		records = append(records, rec)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = records
	r.byAddress = byAddress
	return nil
}

func (r *Registry) derive(account model.AccountIndex, index model.SubaddressIndex, label string) (model.Subaddress, error) {
	address, err := r.deriver.DeriveAddress(account, index)
	if err != nil {
		r.logger.Error("derive address failed",
			zap.Uint32("account", uint32(account)),
			zap.Uint32("subaddress", uint32(index)),
			zap.Error(err))
		return model.Subaddress{}, &model.DerivationError{Account: account, Subaddress: index, Err: err}
	}
	return model.Subaddress{
		AccountIndex: account,
		Index:        index,
		Address:      address,
		Label:        label,
	}, nil
}

func stripBalances(sub model.Subaddress) model.Subaddress {
	return model.Subaddress{
		AccountIndex: sub.AccountIndex,
		Index:        sub.Index,
		Address:      sub.Address,
		Label:        sub.Label,
	}
}
