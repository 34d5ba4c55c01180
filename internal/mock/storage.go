package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
)

// Storage implements the staging storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	GetOut      []byte
	ExistsOut   bool

	// captured inputs
	Bucket    string
	ObjectKey string
	Saved     []byte
	SavedOpts map[string]string

	// errors
	InitBucketErr error
	StatErr       error
	RemoveErr     error
	GetErr        error
	SaveErr       error
	FileExistsErr error

	// call flags
	InitBucketCalled bool
	StatCalled       bool
	RemoveCalled     bool
	GetCalled        bool
	SaveCalled       bool
	FileExistsCalled bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	m.Bucket = bucket
	return m.InitBucketErr
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	m.Bucket, m.ObjectKey = bucket, fileKey
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	m.Bucket, m.ObjectKey = bucket, fileKey
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.Bucket, m.ObjectKey = bucket, fileKey
	return m.RemoveErr
}

func (m *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error) {
	m.GetCalled = true
	m.Bucket, m.ObjectKey = bucket, fileKey
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return noopRC{bytes.NewReader(m.GetOut)}, nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.Bucket, m.ObjectKey = bucket, fileKey
	m.SavedOpts = opts
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.Saved = data
	return nil
}
