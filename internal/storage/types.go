// Package storage provides the local key-value backends the board persists to
// and the snapshot adapter that binds one backend key to a board.Store.
//
// Every backend stores opaque JSON values under string keys, the way a browser
// local store would. The board only ever uses a single key.
package storage

// Backend defines the contract for a local key-value store.
//
// Implementations must make Put atomic: a reader sees either the previous value
// or the new one, never a partial write.
type Backend interface {
	// Get returns the value stored under key.
	//
	// found is false when the key has never been written. A non-nil error means
	// the store itself could not be read.
	Get(key string) (value []byte, found bool, err error)

	// Put overwrites the value stored under key.
	Put(key string, value []byte) error

	// Close releases any resources held by the backend.
	Close() error
}
