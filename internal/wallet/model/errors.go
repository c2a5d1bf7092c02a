package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery is matched by InvalidQueryError.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrDerivation is matched by DerivationError.
	ErrDerivation = errors.New("key derivation failed")
	// ErrSyncInProgress is returned when a sync is requested while another one runs.
	ErrSyncInProgress = errors.New("sync already in progress")
	// ErrSync is matched by SyncError.
	ErrSync = errors.New("sync failed")
	// ErrMalformed marks daemon data that failed structural validation; it is never retried.
	ErrMalformed = errors.New("malformed daemon data")
	// ErrImmutable is matched by ImmutableError.
	ErrImmutable = errors.New("transaction is immutable")
	// ErrInvalidTransaction rejects a transaction that cannot be merged into the store.
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// NotFoundError reports an unknown account, subaddress or transaction.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound builds a NotFoundError with a formatted key.
func NewNotFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: fmt.Sprint(key)}
}

// InvalidQueryError names the offending filter field.
type InvalidQueryError struct {
	Field  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query field %s: %s", e.Field, e.Reason)
}

func (e *InvalidQueryError) Is(target error) bool { return target == ErrInvalidQuery }

// DerivationError wraps a key derivation failure for a subaddress.
type DerivationError struct {
	Account    AccountIndex
	Subaddress SubaddressIndex
	Err        error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derive address %d/%d: %v", e.Account, e.Subaddress, e.Err)
}

func (e *DerivationError) Is(target error) bool { return target == ErrDerivation }

func (e *DerivationError) Unwrap() error { return e.Err }

// SyncError aborts a sync. LastGoodHeight is the next height a retry would start from.
type SyncError struct {
	Height         uint64
	LastGoodHeight uint64
	Err            error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync at height %d (last good height %d): %v", e.Height, e.LastGoodHeight, e.Err)
}

func (e *SyncError) Is(target error) bool { return target == ErrSync }

func (e *SyncError) Unwrap() error { return e.Err }

// ImmutableError rejects changes to a transaction confirmed beyond the reorg-safety depth.
type ImmutableError struct {
	ID     TxID
	Height uint64
}

func (e *ImmutableError) Error() string {
	return fmt.Sprintf("transaction %s confirmed at height %d is immutable", e.ID, e.Height)
}

func (e *ImmutableError) Is(target error) bool { return target == ErrImmutable }
