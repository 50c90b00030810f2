// Package memory collects exported reports in memory. It is the default
// export backend, so the export flow keeps working without any external
// spreadsheet configured, and it doubles as the test backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finman/internal/export"
)

type Store struct {
	mu      sync.Mutex
	reports []export.Report
}

var _ export.ReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores the report and returns a synthetic reference.
func (s *Store) Append(_ context.Context, r export.Report) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
	return fmt.Sprintf("mem:%d", len(s.reports)), nil
}

// Reports returns a snapshot of everything appended so far.
func (s *Store) Reports() []export.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]export.Report, len(s.reports))
	copy(out, s.reports)
	return out
}
