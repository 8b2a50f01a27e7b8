// Package kv implements the durable key-value store backing the client:
// string keys, write-through persistence, typed accessors for string and
// boolean values.
package kv

import "context"

// Repository is the durable key-value store contract.
//
// Get returns (nil, nil) when the key was never set or has been deleted.
// Set overwrites any prior value. Delete is a no-op for absent keys.
// Typed accessors report presence explicitly; reading a value with the
// wrong typed accessor reports it as absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key string, value string) error
	GetBool(ctx context.Context, key string) (bool, bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}
