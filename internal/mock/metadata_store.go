package mock

import (
	"context"
	"maps"
	"sync"

	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// MetadataStore implements port.MetadataStore in memory for tests.
type MetadataStore struct {
	mu sync.Mutex

	// stored values
	Entries map[uuid.UUID]model.FileDescriptor

	// errors
	PersistErr error

	// call counters
	LoadCalls    int
	PersistCalls int
}

func (m *MetadataStore) Load(ctx context.Context) map[uuid.UUID]model.FileDescriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.Entries == nil {
		return map[uuid.UUID]model.FileDescriptor{}
	}
	return maps.Clone(m.Entries)
}

func (m *MetadataStore) Persist(ctx context.Context, entries map[uuid.UUID]model.FileDescriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
	if m.PersistErr != nil {
		return m.PersistErr
	}
	m.Entries = maps.Clone(entries)
	return nil
}

