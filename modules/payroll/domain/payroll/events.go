package payroll

import "github.com/google/uuid"

// ImportedEvent is published after an import transaction commits.
type ImportedEvent struct {
	AccountID uuid.UUID
	Report    *ImportReport
}

// RunDeletedEvent is published after a run's rows are removed.
type RunDeletedEvent struct {
	AccountID uuid.UUID
	RunID     uuid.UUID
	Report    *DeleteReport
}
