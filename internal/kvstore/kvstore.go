// Package kvstore holds the key/value backends behind the authoring backup.
package kvstore

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("kvstore: backend unavailable")

// KV is a flat string key/value store.
type KV interface {
	// Get returns found=false without an error when key has never been set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
