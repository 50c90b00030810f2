// Package export defines the outbound port for monthly report export.
package export

import (
	"context"

	"finman/internal/core"
)

// Report is one user's statement for a single period: the transactions
// followed by the aggregate summary.
type Report struct {
	UserEmail    string
	Summary      core.PeriodSummary
	Transactions []core.Transaction
}

// ReportWriter appends a report to its destination and returns an opaque
// reference to where it landed.
type ReportWriter interface {
	Append(ctx context.Context, r Report) (ref string, err error)
}
