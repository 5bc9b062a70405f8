package ports

import "context"

// KeyValueStore is the durable medium the application state is mirrored to.
// Values are opaque serialized text.
type KeyValueStore interface {
	// Get returns the value for key; ok is false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// BeginTx groups writes so they are applied together
	BeginTx(ctx context.Context) (KeyValueTx, error)

	Close() error
}

// KeyValueTx represents a batch of writes against a KeyValueStore
type KeyValueTx interface {
	Set(key, value string) error
	Delete(key string) error

	// Transaction control
	Commit() error
	Rollback() error
}
