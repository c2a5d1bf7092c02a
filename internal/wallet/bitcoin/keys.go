package bitcoin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// KeyDeriver derives P2WPKH addresses at m/<account>/<subaddress> below an extended public key.
// Only non-hardened indices can be derived from a public key.
type KeyDeriver struct {
	root   *hdkeychain.ExtendedKey
	params *chaincfg.Params

	mu       sync.Mutex
	accounts map[model.AccountIndex]*hdkeychain.ExtendedKey
}

// NewKeyDeriver parses an extended key for the network. A private key is neutered first so the
// wallet never holds spend authority.
func NewKeyDeriver(extendedKey string, params *chaincfg.Params) (*KeyDeriver, error) {
	key, err := hdkeychain.NewKeyFromString(extendedKey)
	if err != nil {
		return nil, fmt.Errorf("parse extended key: %w", err)
	}
	if !key.IsForNet(params) {
		return nil, fmt.Errorf("extended key is not for network %s", params.Name)
	}
	if key.IsPrivate() {
		if key, err = key.Neuter(); err != nil {
			return nil, fmt.Errorf("neuter extended key: %w", err)
		}
	}
	return &KeyDeriver{
		root:     key,
		params:   params,
		accounts: make(map[model.AccountIndex]*hdkeychain.ExtendedKey),
	}, nil
}

func (k *KeyDeriver) DeriveAddress(account model.AccountIndex, subaddress model.SubaddressIndex) (string, error) {
	if uint32(account) >= hdkeychain.HardenedKeyStart || uint32(subaddress) >= hdkeychain.HardenedKeyStart {
		return "", errors.New("hardened index cannot be derived from a public key")
	}
	accountKey, err := k.account(account)
	if err != nil {
		return "", err
	}
	child, err := accountKey.Derive(uint32(subaddress))
	if err != nil {
		return "", fmt.Errorf("derive subaddress key: %w", err)
	}
	pub, err := child.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("subaddress public key: %w", err)
	}
	addr, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), k.params)
	if err != nil {
		return "", fmt.Errorf("encode address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

func (k *KeyDeriver) account(account model.AccountIndex) (*hdkeychain.ExtendedKey, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if key, ok := k.accounts[account]; ok {
		return key, nil
	}
	key, err := k.root.Derive(uint32(account))
	if err != nil {
		return nil, fmt.Errorf("derive account key: %w", err)
	}
	k.accounts[account] = key
	return key, nil
}
