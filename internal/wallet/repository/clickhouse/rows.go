package clickhouse

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// table is one snapshot table with its insert statement and the rows of a snapshot.
type table struct {
	name  string
	query string
	rows  [][]any
}

// snapshotTables lists the tables holding snapshot data, commit marker excluded.
var snapshotTables = []string{
	"wallet_accounts",
	"wallet_subaddresses",
	"wallet_transactions",
	"wallet_block_hashes",
	"wallet_attributes",
}

const (
	insertAccountsQuery = `
INSERT INTO wallet_accounts (
	wallet,
	snapshot_id,
	account_index,
	label,
	tag
) VALUES`

	insertSubaddressesQuery = `
INSERT INTO wallet_subaddresses (
	wallet,
	snapshot_id,
	account_index,
	subaddress_index,
	address,
	label
) VALUES`

	insertTransactionsQuery = `
INSERT INTO wallet_transactions (
	wallet,
	snapshot_id,
	txid,
	height,
	is_confirmed,
	payload
) VALUES`

	insertBlockHashesQuery = `
INSERT INTO wallet_block_hashes (
	wallet,
	snapshot_id,
	height,
	hash
) VALUES`

	insertAttributesQuery = `
INSERT INTO wallet_attributes (
	wallet,
	snapshot_id,
	key,
	value
) VALUES`
)

// tables splits a snapshot into table rows.
func tables(wallet string, snapshotID uint64, state *model.State) ([]table, error) {
	accounts := table{name: "wallet_accounts", query: insertAccountsQuery}
	subaddresses := table{name: "wallet_subaddresses", query: insertSubaddressesQuery}
	for _, a := range state.Accounts {
		accounts.rows = append(accounts.rows, []any{wallet, snapshotID, uint32(a.Index), a.Label, a.Tag})
		for _, s := range a.Subaddresses {
			subaddresses.rows = append(subaddresses.rows, []any{
				wallet, snapshotID, uint32(s.AccountIndex), uint32(s.Index), s.Address, s.Label,
			})
		}
	}

	txs := table{name: "wallet_transactions", query: insertTransactionsQuery}
	for i := range state.Transactions {
		tx := &state.Transactions[i]
		payload, err := json.Marshal(tx)
		if err != nil {
			return nil, fmt.Errorf("encode tx %s: %w", tx.ID, err)
		}
		txs.rows = append(txs.rows, []any{wallet, snapshotID, string(tx.ID), tx.Height, tx.IsConfirmed, string(payload)})
	}

	hashes := table{name: "wallet_block_hashes", query: insertBlockHashesQuery}
	for _, h := range sortedKeys(state.BlockHashes) {
		hashes.rows = append(hashes.rows, []any{wallet, snapshotID, h, state.BlockHashes[h]})
	}

	attrs := table{name: "wallet_attributes", query: insertAttributesQuery}
	for _, k := range sortedKeys(state.Attributes) {
		attrs.rows = append(attrs.rows, []any{wallet, snapshotID, k, state.Attributes[k]})
	}

	return []table{accounts, subaddresses, txs, hashes, attrs}, nil
}

// attachSubaddresses nests subaddresses under their accounts in index order.
func attachSubaddresses(accounts []model.Account, subaddresses []model.Subaddress) ([]model.Account, error) {
	byIndex := make(map[model.AccountIndex]int, len(accounts))
	for i, a := range accounts {
		byIndex[a.Index] = i
	}
	for _, s := range subaddresses {
		i, ok := byIndex[s.AccountIndex]
		if !ok {
			return nil, fmt.Errorf("%w: subaddress %d/%d without account", model.ErrMalformed, s.AccountIndex, s.Index)
		}
		accounts[i].Subaddresses = append(accounts[i].Subaddresses, s)
	}
	for i := range accounts {
		slices.SortFunc(accounts[i].Subaddresses, func(a, b model.Subaddress) int {
			return cmp.Compare(a.Index, b.Index)
		})
	}
	return accounts, nil
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
