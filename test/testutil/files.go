package testutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
)

// GenerateBytes returns n bytes of a repeating, recognisable pattern.
func GenerateBytes(n int) []byte {
	pattern := []byte("0123456789abcdef")
	return bytes.Repeat(pattern, n/len(pattern)+1)[:n]
}

// PutObject uploads content to bucket/key the way a producer would.
func PutObject(t *testing.T, client *minio.Client, bucket, key string, content []byte, contentType string) {
	t.Helper()
	_, err := client.PutObject(context.Background(), bucket, key, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		t.Fatalf("put object %q: %v", key, err)
	}
}
