package mock

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	// stored values
	FileOut []byte

	// etag values
	EtagFile string

	// captured inputs
	GotFileID uuid.UUID

	// errors
	DescribeErr error

	// call flags
	DescribeCalled bool
}

func (m *HTTPRenderer) RenderDescribeFile(ctx context.Context, describer port.FileDescriber, id uuid.UUID) ([]byte, string, error) {
	m.DescribeCalled = true
	m.GotFileID = id
	return m.FileOut, m.EtagFile, m.DescribeErr
}
