package mock

import (
	"context"
	"time"

	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	FileOut []byte

	// etag values
	EtagFile string

	// captured inputs
	ValidUntil time.Time

	// errors
	GetFileErr     error
	GetEtagFileErr error
	DelFileErr     error
	DelEtagFileErr error

	// call flags
	GetFileCalled     bool
	GetEtagFileCalled bool
	SetFileCalled     bool
	SetEtagFileCalled bool
	DelFileCalled     bool
	DelEtagFileCalled bool
}

func (c *Cache) GetFileDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	c.GetFileCalled = true
	if c.GetFileErr != nil {
		return nil, c.GetFileErr
	}
	return c.FileOut, nil
}

func (c *Cache) GetEtagFileDetails(ctx context.Context, id uuid.UUID) (string, error) {
	c.GetEtagFileCalled = true
	if c.GetEtagFileErr != nil {
		return "", c.GetEtagFileErr
	}
	return c.EtagFile, nil
}

func (c *Cache) SetFileDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	c.SetFileCalled = true
	c.FileOut = data
	c.ValidUntil = validUntil
}

func (c *Cache) SetEtagFileDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
	c.SetEtagFileCalled = true
	c.EtagFile = etag
}

func (c *Cache) DeleteFileDetails(ctx context.Context, id uuid.UUID) error {
	c.DelFileCalled = true
	return c.DelFileErr
}

func (c *Cache) DeleteEtagFileDetails(ctx context.Context, id uuid.UUID) error {
	c.DelEtagFileCalled = true
	return c.DelEtagFileErr
}
