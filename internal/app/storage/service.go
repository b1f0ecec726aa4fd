/*
Package storage provides the durable key/value backends that hold the persisted session snapshot.

The client reads one key at boot and rewrites it after every session mutation. The file
driver is the default; Redis, PostgreSQL and S3-compatible object storage let several
installations of the client share one durable location.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("snapshot not found")

// ServiceConfig selects and configures a snapshot backend.
type ServiceConfig struct {
	Driver string

	// file
	Path string

	// redis
	RedisURL string

	// postgres
	DatabaseDSN string

	// s3
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// SnapshotStorage stores opaque snapshot bytes under a key.
type SnapshotStorage interface {
	// Load returns the stored bytes, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the bytes stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the backend.
	Close() error
}

// NewSnapshotStorage builds the backend named by cfg.Driver.
func NewSnapshotStorage(ctx context.Context, cfg ServiceConfig) (SnapshotStorage, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStorage(cfg.Path)
	case "redis":
		return newRedisStorage(ctx, cfg.RedisURL)
	case "postgres":
		return newPostgresStorage(ctx, cfg.DatabaseDSN)
	case "s3":
		return newS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
