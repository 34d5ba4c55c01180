package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// SetupTestBucket (re)creates bucket empty and returns a cleanup that drops it.
func SetupTestBucket(client *minio.Client, bucket string) (func() error, error) {
	ctx := context.Background()

	emptyBucket(ctx, client, bucket)
	_ = client.RemoveBucket(ctx, bucket)

	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, err2 := client.BucketExists(ctx, bucket)
		if err2 != nil || !exists {
			return nil, fmt.Errorf("could not create bucket %q: %w", bucket, err)
		}
	}

	cleanup := func() error {
		emptyBucket(ctx, client, bucket)
		if err := client.RemoveBucket(ctx, bucket); err != nil {
			return fmt.Errorf("could not remove bucket %q: %w", bucket, err)
		}
		return nil
	}
	return cleanup, nil
}

// ObjectExists reports whether key is still present in bucket.
func ObjectExists(client *minio.Client, bucket, key string) bool {
	_, err := client.StatObject(context.Background(), bucket, key, minio.StatObjectOptions{})
	return err == nil
}

func emptyBucket(ctx context.Context, client *minio.Client, bucket string) {
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			continue
		}
		_ = client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{})
	}
}
