package payroll

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists flattened rows. Implementations read the transaction
// (or pool) from the context; every Insert* call returns the number of rows
// actually written, which for the conflict-tolerant tables can be lower than
// len(rows).
type Repository interface {
	KnownCollaborators(ctx context.Context, accountID uuid.UUID, taxIDs []string) (map[string]struct{}, error)
	KnownStatuses(ctx context.Context, accountID uuid.UUID, labels []string) (map[string]struct{}, error)

	InsertEvents(ctx context.Context, rows []EventRow) (int64, error)
	InsertHeadings(ctx context.Context, rows []HeadingRow) (int64, error)
	InsertInssSummaries(ctx context.Context, rows []InssSummaryRow) (int64, error)
	InsertFgtsSummaries(ctx context.Context, rows []FgtsSummaryRow) (int64, error)
	InsertIrrfCalcs(ctx context.Context, rows []IrrfCalcRow) (int64, error)
	InsertIrrfPayments(ctx context.Context, rows []IrrfPaymentRow) (int64, error)
	InsertCollaborators(ctx context.Context, rows []CollaboratorRow) (int64, error)
	InsertStatuses(ctx context.Context, rows []StatusRow) (int64, error)

	// DeleteRun removes every row the run wrote for the account and returns
	// per-table deleted counts keyed by the Count* constants.
	DeleteRun(ctx context.Context, accountID, runID uuid.UUID) (map[string]int64, error)
}
