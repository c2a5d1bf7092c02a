package bitcoin

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
	"github.com/goodnatureofminers/blockinsight7000-wallet/pkg/safe"
)

// DefaultUnlockBlocks is the number of blocks a regular output stays locked after confirmation.
const DefaultUnlockBlocks = 10

// Decoder turns serialized transactions into the wallet view of them.
type Decoder struct {
	params       *chaincfg.Params
	unlockBlocks uint64
}

func NewDecoder(params *chaincfg.Params, unlockBlocks uint64) *Decoder {
	return &Decoder{params: params, unlockBlocks: unlockBlocks}
}

type ownedInput struct {
	keyImage string
	output   model.Output
}

// DecodeTransaction returns nil when the transaction neither pays nor spends wallet outputs.
//
// Outputs paid to the account that funds the transaction are change: they are stored as outputs but
// are not incoming transfers and are not destinations. The fee is only known when every input
// belongs to the wallet.
func (d *Decoder) DecodeTransaction(raw model.RawTransaction, keys model.WalletKeys) (*model.Transaction, error) {
	var msg wire.MsgTx
	if err := msg.Deserialize(bytes.NewReader(raw.Payload)); err != nil {
		return nil, fmt.Errorf("%w: tx %s: %v", model.ErrMalformed, raw.ID, err)
	}
	if id := msg.TxHash().String(); id != string(raw.ID) {
		return nil, fmt.Errorf("%w: payload of tx %s hashes to %s", model.ErrMalformed, raw.ID, id)
	}

	coinbase := blockchain.IsCoinBaseTx(&msg)
	var inputs []ownedInput
	if !coinbase {
		for _, in := range msg.TxIn {
			prev := in.PreviousOutPoint
			ki := model.KeyImage(model.TxID(prev.Hash.String()), prev.Index)
			if o, ok := keys.OwnedOutput(ki); ok {
				inputs = append(inputs, ownedInput{keyImage: ki, output: o})
			}
		}
	}

	tx := &model.Transaction{
		ID:          raw.ID,
		Timestamp:   raw.Timestamp,
		IsConfirmed: raw.Confirmed,
		IsRelayed:   true,
		IsMinerTx:   coinbase,
	}
	if raw.Confirmed {
		tx.Height = raw.Height
	}

	var out *model.OutgoingTransfer
	if len(inputs) > 0 {
		out = &model.OutgoingTransfer{
			TransferCommon: model.TransferCommon{AccountIndex: inputs[0].output.AccountIndex},
		}
		for _, in := range inputs {
			tx.SpentKeyImages = append(tx.SpentKeyImages, in.keyImage)
			if in.output.AccountIndex == out.AccountIndex && !slices.Contains(out.SubaddressIndices, in.output.SubaddressIndex) {
				out.SubaddressIndices = append(out.SubaddressIndices, in.output.SubaddressIndex)
			}
		}
		slices.Sort(out.SubaddressIndices)
	}

	incoming := make(map[model.SubaddressKey]*model.IncomingTransfer)
	var outputsTotal model.Amount
	for i, txOut := range msg.TxOut {
		value, err := safe.Uint64(txOut.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: tx %s output %d: %v", model.ErrMalformed, raw.ID, i, err)
		}
		amount := model.Amount(value)
		if outputsTotal, err = safe.Add(outputsTotal, amount); err != nil {
			return nil, fmt.Errorf("%w: tx %s outputs: %v", model.ErrMalformed, raw.ID, err)
		}

		address, key, owned := d.owner(txOut.PkScript, keys)
		if owned {
			tx.Outputs = append(tx.Outputs, d.output(raw, coinbase, uint32(i), key, amount))
		}
		if out != nil && owned && key.Account == out.AccountIndex {
			continue
		}
		if out != nil {
			out.Destinations = append(out.Destinations, model.Destination{Address: address, Amount: amount})
			if out.Amount, err = safe.Add(out.Amount, amount); err != nil {
				return nil, fmt.Errorf("%w: tx %s destinations: %v", model.ErrMalformed, raw.ID, err)
			}
		}
		if !owned {
			continue
		}
		if t, ok := incoming[key]; ok {
			if t.Amount, err = safe.Add(t.Amount, amount); err != nil {
				return nil, fmt.Errorf("%w: tx %s incoming: %v", model.ErrMalformed, raw.ID, err)
			}
			continue
		}
		t := &model.IncomingTransfer{
			TransferCommon:  model.TransferCommon{AccountIndex: key.Account, Amount: amount},
			SubaddressIndex: key.Subaddress,
			Address:         address,
		}
		incoming[key] = t
		tx.IncomingTransfers = append(tx.IncomingTransfers, t)
	}

	if out == nil && len(tx.IncomingTransfers) == 0 {
		return nil, nil
	}
	if out != nil {
		tx.OutgoingTransfer = out
		if len(inputs) == len(msg.TxIn) {
			fee, err := d.fee(inputs, outputsTotal)
			if err != nil {
				return nil, fmt.Errorf("%w: tx %s: %v", model.ErrMalformed, raw.ID, err)
			}
			tx.Fee = fee
		}
	}
	return tx, nil
}

func (d *Decoder) owner(pkScript []byte, keys model.WalletKeys) (string, model.SubaddressKey, bool) {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, d.params)
	if err != nil || len(addrs) == 0 {
		return "", model.SubaddressKey{}, false
	}
	for _, addr := range addrs {
		encoded := addr.EncodeAddress()
		if key, ok := keys.LookupAddress(encoded); ok {
			return encoded, key, true
		}
	}
	return addrs[0].EncodeAddress(), model.SubaddressKey{}, false
}

func (d *Decoder) output(raw model.RawTransaction, coinbase bool, index uint32, key model.SubaddressKey, amount model.Amount) model.Output {
	o := model.Output{
		TxID:            raw.ID,
		Index:           index,
		AccountIndex:    key.Account,
		SubaddressIndex: key.Subaddress,
		Amount:          amount,
		KeyImage:        model.KeyImage(raw.ID, index),
	}
	if raw.Confirmed {
		lock := d.unlockBlocks
		if coinbase {
			lock = uint64(d.params.CoinbaseMaturity)
		}
		o.UnlockHeight = raw.Height + lock
	}
	return o
}

func (d *Decoder) fee(inputs []ownedInput, outputsTotal model.Amount) (model.Amount, error) {
	amounts := make([]model.Amount, 0, len(inputs))
	for _, in := range inputs {
		amounts = append(amounts, in.output.Amount)
	}
	inputsTotal, err := safe.Sum(amounts...)
	if err != nil {
		return 0, err
	}
	return safe.Sub(inputsTotal, outputsTotal)
}
