// Package service exposes the wallet to callers: accounts decorated with balances, transaction
// queries, notes, attributes and synchronization.
package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Syncer interface {
		Load(ctx context.Context) error
		Sync(ctx context.Context, startHeight *uint64) (model.SyncResult, error)
		Run(ctx context.Context, interval time.Duration, signal <-chan struct{}) error
	}
)
