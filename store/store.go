// Package store holds the content store collaborator: the ledger records
// who may see a file, the store holds the actual bytes, addressed by an
// opaque content ref.
package store

import "errors"

// ErrNotFound is returned by Get when the content ref is unknown.
var ErrNotFound = errors.New("content not found")

// ErrStoreUnavailable is returned when the storage daemon can't be reached.
var ErrStoreUnavailable = errors.New("content store unavailable")

// ContentStore is the contract the ledger engine consumes. Both calls are
// synchronous and fallible; the engine never records a transaction for
// content the store did not actually accept or return.
type ContentStore interface {
	// Put stores the bytes and returns their content ref.
	Put(data []byte) (string, error)
	// Get returns the bytes for a previously stored content ref.
	Get(contentRef string) ([]byte, error)
}
