// Package kvstore is the durable string-keyed storage the session store
// persists into. It mirrors what a browser offers: synchronous get, set and
// remove of string values, here backed by SQLite.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Store is string-keyed durable storage.
//
// SetMany and Remove are atomic: either every key is written (removed) or
// none is.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, entries map[string]string) error
	Remove(ctx context.Context, keys ...string) error
}
