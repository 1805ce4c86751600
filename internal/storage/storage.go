package storage

import (
	"context"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	LastModified *time.Time
}

// Service reads dataset objects from remote object storage.
type Service interface {
	Stat(ctx context.Context, bucket, key string) (ObjectInfo, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
