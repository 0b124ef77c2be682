// Package storage writes scan visualisations to a destination chosen at
// start-up: a local directory or an S3 bucket.
package storage

import (
	"context"
)

type Storage interface {
	// Put stores data with the given key and returns the storage URL
	Put(ctx context.Context, key string, data []byte) (string, error)
}
