package syncer

import "github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"

// stagedKeys exposes wallet ownership to the decoder, including outputs created by transactions
// decoded earlier in the same block that are not committed yet.
type stagedKeys struct {
	addresses AddressBook
	ledger    Ledger
	staged    map[string]model.Output
}

func newStagedKeys(addresses AddressBook, ledger Ledger) *stagedKeys {
	return &stagedKeys{
		addresses: addresses,
		ledger:    ledger,
		staged:    make(map[string]model.Output),
	}
}

func (k *stagedKeys) LookupAddress(address string) (model.SubaddressKey, bool) {
	return k.addresses.LookupAddress(address)
}

func (k *stagedKeys) OwnedOutput(keyImage string) (model.Output, bool) {
	if o, ok := k.staged[keyImage]; ok {
		return o, true
	}
	return k.ledger.OwnedOutput(keyImage)
}

func (k *stagedKeys) stage(tx *model.Transaction) {
	for _, o := range tx.Outputs {
		o.TxID = tx.ID
		k.staged[o.KeyImage] = o
	}
}
