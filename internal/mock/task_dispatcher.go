package mock

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	IngestCalled bool
	IngestInputs []port.StagedIngestInput
	IngestErr    error
}

func (m *MockDispatcher) EnqueueIngestStaged(ctx context.Context, in port.StagedIngestInput) error {
	m.IngestCalled = true
	m.IngestInputs = append(m.IngestInputs, in)
	return m.IngestErr
}
