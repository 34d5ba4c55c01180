package file

import "errors"

var (
	ErrNotFound       = errors.New("file: not found")
	ErrSourceNotFound = errors.New("file: ingest source not found")
	ErrIngestFailure  = errors.New("file: ingest failed")
	ErrPersistence    = errors.New("metadata: persist failed")
	ErrQueueDisabled  = errors.New("task: queue disabled")
)

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)
