package file

import (
	"context"

	"github.com/fhuszti/tmpfiles-ms-go/internal/format"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
)

type statsReporterSrv struct {
	repo port.FileRepository
}

// compile-time check: *statsReporterSrv must satisfy port.StatsReporter
var _ port.StatsReporter = (*statsReporterSrv)(nil)

func NewStatsReporter(repo port.FileRepository) port.StatsReporter {
	return &statsReporterSrv{repo: repo}
}

func (s *statsReporterSrv) Stats(ctx context.Context) port.StatsOutput {
	st := s.repo.Stats(ctx)
	return port.StatsOutput{
		TotalFiles:     st.TotalFiles,
		TotalSizeBytes: st.TotalSizeBytes,
		TotalSizeMB:    format.SizeMB(st.TotalSizeBytes),
		TotalSizeHuman: format.Size(st.TotalSizeBytes),
		TTLHours:       st.TTLHours,
	}
}
