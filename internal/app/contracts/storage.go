package contracts

import "context"

type Storage interface {
	EnsureBucket(ctx context.Context, bucketName string) error
	PutObject(ctx context.Context, bucketName, objectName string, data []byte, contentType string) (int64, error)
	GetObject(ctx context.Context, bucketName, objectName string) ([]byte, error)
}
