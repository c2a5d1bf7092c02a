package model

// Account groups subaddresses under one spend authority.
type Account struct {
	Index           AccountIndex
	Label           string
	Tag             string
	Balance         Amount
	UnlockedBalance Amount
	// Subaddresses is nil when not requested; a fetched account always has its primary subaddress.
	Subaddresses []Subaddress `json:",omitempty"`
}

// Subaddress is a derived receiving address of an account.
type Subaddress struct {
	AccountIndex      AccountIndex
	Index             SubaddressIndex
	Address           string
	Label             string
	Balance           Amount
	UnlockedBalance   Amount
	IsUsed            bool
	NumUnspentOutputs int
}

// Key returns the wallet-wide identity of the subaddress.
func (s Subaddress) Key() SubaddressKey {
	return SubaddressKey{Account: s.AccountIndex, Subaddress: s.Index}
}

// Clone copies the account including its subaddresses.
func (a Account) Clone() Account {
	if a.Subaddresses != nil {
		a.Subaddresses = append([]Subaddress(nil), a.Subaddresses...)
	}
	return a
}
