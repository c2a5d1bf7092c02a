package syncer

import "time"

const (
	maxFetchRetries      = 5
	initialRetryInterval = 500 * time.Millisecond
	maxRetryInterval     = 30 * time.Second
	saveStateTimeout     = 30 * time.Second

	tracerName = "github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/syncer"
)
