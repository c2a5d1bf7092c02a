// Package account owns the ordered collection of wallet accounts and their subaddresses.
package account

import "github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// KeyDeriver derives the public address of a subaddress.
	KeyDeriver interface {
		DeriveAddress(account model.AccountIndex, subaddress model.SubaddressIndex) (string, error)
	}
)
