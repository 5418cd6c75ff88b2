package payroll

import "github.com/google/uuid"

// Count-map keys shared by import and delete reports. Every report carries
// all of them, zero-filled, so the response shape is stable.
const (
	CountEvents        = "events"
	CountHeadings      = "headings"
	CountInss          = "inssSummaries"
	CountFgts          = "fgtsSummaries"
	CountIrrfCalcs     = "irrfCalculations"
	CountIrrfPayments  = "irrfPayments"
	CountCollaborators = "collaborators"
	CountStatuses      = "collaboratorStatuses"
)

func CountKeys() []string {
	return []string{
		CountEvents,
		CountHeadings,
		CountInss,
		CountFgts,
		CountIrrfCalcs,
		CountIrrfPayments,
		CountCollaborators,
		CountStatuses,
	}
}

// EventRow is the fully denormalized per-event row. Employee attributes are
// repeated on every row so each one is self-contained.
type EventRow struct {
	AccountID    uuid.UUID
	RunID        *uuid.UUID
	Month        int
	Year         int
	CompanyTaxID string
	CompanyName  string
	IssueDate    string // YYYY-MM-DD

	TaxID               string
	Code                string
	Name                string
	Status              string
	AdmissionDate       string // YYYY-MM-DD
	LinkType            string
	CostCenter          string
	Department          string
	HoursPerMonth       float64
	PositionCode        string
	PositionDescription string
	CBO                 string
	Branch              string

	Salary          float64
	BaseSalary      float64
	GrossEarnings   float64
	TotalDeductions float64
	NetPay          float64
	InssBase        float64
	FgtsBase        float64
	IrrfBase        float64
	FgtsValue       float64

	EventCode        string
	EventDescription string
	EventQuantity    float64
	EventValue       float64
	EventKind        EventKind
}

type HeadingRow struct {
	AccountID   uuid.UUID
	RunID       *uuid.UUID
	Month       int
	Year        int
	Code        string
	Description string
	Quantity    float64
	Value       float64
	Kind        EventKind
}

type InssSummaryRow struct {
	AccountID     uuid.UUID
	RunID         *uuid.UUID
	Month         int
	Year          int
	EmployeesBase float64
	EmployerShare float64
	ThirdParties  float64
	RatShare      float64
	Total         float64
}

type FgtsSummaryRow struct {
	AccountID   uuid.UUID
	RunID       *uuid.UUID
	Month       int
	Year        int
	FgtsBase    float64
	FgtsDeposit float64
	PisBase     float64
	IssValue    float64
	Total       float64
}

type IrrfCalcRow struct {
	AccountID     uuid.UUID
	RunID         *uuid.UUID
	Month         int
	Year          int
	TaxableBase   float64
	Deductions    float64
	WithheldTotal float64
}

type IrrfPaymentRow struct {
	AccountID    uuid.UUID
	RunID        *uuid.UUID
	Month        int
	Year         int
	DueDate      string // YYYY-MM-DD
	Amount       float64
	DocumentCode string
}

// CollaboratorRow is the per-tax-id master row. At most one per submission
// per tax id; the deduplicator enforces that before the writer sees them.
type CollaboratorRow struct {
	AccountID     uuid.UUID
	RunID         *uuid.UUID
	TaxID         string
	Name          string
	Branch        string
	AdmissionDate string // YYYY-MM-DD
}

type StatusRow struct {
	AccountID uuid.UUID
	Label     string
}
