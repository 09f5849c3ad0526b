package entity

import "context"

// ObjectStore is the object storage capability consumed by the service.
// Both operations are whole-object; no streaming or partial reads.
type ObjectStore interface {

	// Get returns the full content of the object. If the object does not exist the
	// returned error should wrap ErrObjectNotFound.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// Put writes data as the full content of the object, replacing any existing one.
	Put(ctx context.Context, bucket, key string, data []byte) error
}
