// Package kv provides the persistent key/value store backing application
// state: timer state, task list, conversations, and uploaded file context.
// Values are JSON strings; there are no transactions or expiry at this
// level. Transactional multi-key writes compose via db.UnitOfWork and
// tx-scoped stores.
package kv

import (
	"context"
	"errors"
)

// ErrQuotaExceeded indicates a write failed because the underlying storage
// is out of space. Callers treat this as non-fatal and keep the session
// running in memory for the failed write.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a synchronous string key → JSON-string value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
