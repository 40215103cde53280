package remote

import "errors"

// Sentinel errors surfaced by the catalog client. Transport-level
// failures are retryable; the sync engine bounds the retries.
var (
	ErrServerOffline = errors.New("media server is unreachable")
	ErrAuthFailed    = errors.New("authentication failed")
	ErrItemNotFound  = errors.New("item not found")
)
