package storage

import (
	"fmt"

	"github.com/minio/minio-go/v7"

	"github.com/fhuszti/tmpfiles-ms-go/internal/usecase/file"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return file.ErrObjectNotFound
	case "NoSuchBucket":
		return file.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return file.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", file.ErrInternal, err)
	}
}
