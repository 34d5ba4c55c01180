package file

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/format"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/urls"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

type fileDescriberSrv struct {
	repo port.FileRepository
	urls *urls.Builder
}

// compile-time check: *fileDescriberSrv must satisfy port.FileDescriber
var _ port.FileDescriber = (*fileDescriberSrv)(nil)

func NewFileDescriber(repo port.FileRepository, urls *urls.Builder) port.FileDescriber {
	return &fileDescriberSrv{repo: repo, urls: urls}
}

// DescribeFile returns ErrNotFound for unknown, expired or vanished files.
func (s *fileDescriberSrv) DescribeFile(ctx context.Context, id uuid.UUID) (*port.DescribeFileOutput, error) {
	d, ok := s.repo.Describe(ctx, id)
	if !ok {
		return nil, ErrNotFound
	}

	return &port.DescribeFileOutput{
		FileDescriptor: d,
		StreamURL:      s.urls.StreamURL(d.ID, d.Extension),
		DownloadURL:    s.urls.DownloadURL(d.ID, d.Extension),
		SizeHuman:      format.Size(d.SizeBytes),
	}, nil
}
