// Package kv provides the small key-value capability backing the
// persistence cache, the daily usage record and the onboarding flag.
package kv

import "context"

// Repository is a byte-oriented key-value store.
//
// Get returns (nil, nil) when the key is absent, mirroring "no record" as
// a value rather than an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	List(ctx context.Context) (map[string][]byte, error)

	// Probe reports whether the underlying storage is usable by doing a
	// write/delete round trip on a reserved key.
	Probe(ctx context.Context) bool
}
