package mock

import (
	"context"
	"time"

	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// FileDescriber implements port.FileDescriber for tests.
type FileDescriber struct {
	Out    *port.DescribeFileOutput
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *FileDescriber) DescribeFile(ctx context.Context, id uuid.UUID) (*port.DescribeFileOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// FileDeleter implements port.FileDeleter for tests.
type FileDeleter struct {
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *FileDeleter) DeleteFile(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// StatsReporter implements port.StatsReporter for tests.
type StatsReporter struct {
	Out    port.StatsOutput
	Called bool
}

func (m *StatsReporter) Stats(ctx context.Context) port.StatsOutput {
	m.Called = true
	return m.Out
}

// StagedIngester implements port.StagedIngester for tests.
type StagedIngester struct {
	Out    *port.IngestOutput
	Err    error
	Called bool
	In     port.StagedIngestInput
}

func (m *StagedIngester) IngestStaged(ctx context.Context, in port.StagedIngestInput) (*port.IngestOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// SweepRunner implements port.SweepRunner for tests.
type SweepRunner struct {
	Out    model.SweepResult
	Err    error
	Called bool
}

func (m *SweepRunner) RunOnce(ctx context.Context) (model.SweepResult, error) {
	m.Called = true
	return m.Out, m.Err
}

// FileResolver implements port.FileResolver for tests.
type FileResolver struct {
	Paths     map[string]string
	GotPrefix string
}

func (m *FileResolver) ResolvePrefix(ctx context.Context, prefix string) (string, bool) {
	m.GotPrefix = prefix
	p, ok := m.Paths[prefix]
	return p, ok
}

// FileRepository implements port.FileRepository for tests.
type FileRepository struct {
	FileResolver

	// stored values
	IngestOut   uuid.UUID
	Descriptors map[uuid.UUID]model.FileDescriptor
	StatsOut    model.FileStats
	RootOut     string
	SweepOut    int
	ClearOut    int
	DeleteOut   bool

	// captured inputs
	IngestIn  port.IngestInput
	SweptAt   time.Time
	DeletedID uuid.UUID

	// errors
	IngestErr error
	DeleteErr error
	SweepErr  error
	ClearErr  error

	// call flags
	IngestCalled bool
	DeleteCalled bool
	SweepCalled  bool
	ClearCalled  bool
}

func (m *FileRepository) Ingest(ctx context.Context, in port.IngestInput) (uuid.UUID, error) {
	m.IngestCalled = true
	m.IngestIn = in
	return m.IngestOut, m.IngestErr
}

func (m *FileRepository) Resolve(ctx context.Context, id uuid.UUID) (string, bool) {
	p, ok := m.Paths[id.String()]
	return p, ok
}

func (m *FileRepository) Describe(ctx context.Context, id uuid.UUID) (model.FileDescriptor, bool) {
	d, ok := m.Descriptors[id]
	return d, ok
}

func (m *FileRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteOut, m.DeleteErr
}

func (m *FileRepository) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	m.SweepCalled = true
	m.SweptAt = now
	return m.SweepOut, m.SweepErr
}

func (m *FileRepository) Stats(ctx context.Context) model.FileStats {
	return m.StatsOut
}

func (m *FileRepository) Clear(ctx context.Context) (int, error) {
	m.ClearCalled = true
	return m.ClearOut, m.ClearErr
}

func (m *FileRepository) Root() string {
	return m.RootOut
}
