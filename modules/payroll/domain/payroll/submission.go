package payroll

import "github.com/google/uuid"

// Submission is one hierarchical payroll document: one company, one or more
// pay-period competencies. It is assembled upstream (document extraction is
// out of scope here) and consumed exactly once by the ingestion pipeline.
type Submission struct {
	Company      Company      `json:"company"`
	Competencies []Competency `json:"competencies"`
}

type Company struct {
	TaxID     string `json:"taxId"`
	Code      string `json:"code"`
	IssueDate string `json:"issueDate"` // DD/MM/YYYY
	Name      string `json:"name"`
}

// Competency is one pay period's worth of data. RunID correlates its rows to
// a payroll-run record created by the caller beforehand; rows are written
// with a NULL run when absent.
type Competency struct {
	Period           Period           `json:"period"`
	RunID            *uuid.UUID       `json:"runId,omitempty"`
	Employees        []EmployeeRecord `json:"employees"`
	HeadingSummaries []HeadingSummary `json:"headingSummaries,omitempty"`
	PeriodFrame      PeriodFrame      `json:"periodFrame"`
}

type Period struct {
	Month string `json:"month"`
	Year  string `json:"year"`
}

type EmployeeRecord struct {
	TaxID string `json:"taxId"`
	Code  string `json:"code"`
	Name  string `json:"name"`

	Status              string  `json:"status"`
	AdmissionDate       string  `json:"admissionDate"` // DD/MM/YYYY
	LinkType            string  `json:"linkType"`
	CostCenter          string  `json:"costCenter"`
	Department          string  `json:"department"`
	HoursPerMonth       float64 `json:"hoursPerMonth"`
	PositionCode        string  `json:"positionCode"`
	PositionDescription string  `json:"positionDescription"`
	CBO                 string  `json:"cbo"`
	Branch              string  `json:"branch"`

	Salary     float64 `json:"salary"`
	BaseSalary float64 `json:"baseSalary"`

	Totals EmployeeTotals `json:"totals"`
	Bases  EmployeeBases  `json:"bases"`

	Events []PayEvent `json:"events"`
}

type EmployeeTotals struct {
	GrossEarnings   float64 `json:"grossEarnings"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetPay          float64 `json:"netPay"`
}

type EmployeeBases struct {
	InssBase  float64 `json:"inssBase"`
	FgtsBase  float64 `json:"fgtsBase"`
	IrrfBase  float64 `json:"irrfBase"`
	FgtsValue float64 `json:"fgtsValue"`
}

type EventKind string

const (
	EventKindEarning   EventKind = "earning"
	EventKindDeduction EventKind = "deduction"
)

type PayEvent struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	Value       float64   `json:"value"`
	Kind        EventKind `json:"kind"`
}

// HeadingSummary is a period-level aggregate per pay-event heading.
type HeadingSummary struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	Value       float64   `json:"value"`
	Kind        EventKind `json:"kind"`
}

// PeriodFrame carries the competency-level statutory summary blocks. A nil
// block means the source document had no such frame and no row is written.
type PeriodFrame struct {
	INSS        *InssSummary        `json:"inss,omitempty"`
	FgtsPisIss  *FgtsSummary        `json:"fgtsPisIss,omitempty"`
	IrrfCalc    *IrrfCalcSummary    `json:"irrfCalc,omitempty"`
	IrrfPayment *IrrfPaymentSummary `json:"irrfPayment,omitempty"`
}

type InssSummary struct {
	EmployeesBase float64 `json:"employeesBase"`
	EmployerShare float64 `json:"employerShare"`
	ThirdParties  float64 `json:"thirdParties"`
	RatShare      float64 `json:"ratShare"`
	Total         float64 `json:"total"`
}

type FgtsSummary struct {
	FgtsBase    float64 `json:"fgtsBase"`
	FgtsDeposit float64 `json:"fgtsDeposit"`
	PisBase     float64 `json:"pisBase"`
	IssValue    float64 `json:"issValue"`
	Total       float64 `json:"total"`
}

type IrrfCalcSummary struct {
	TaxableBase   float64 `json:"taxableBase"`
	Deductions    float64 `json:"deductions"`
	WithheldTotal float64 `json:"withheldTotal"`
}

type IrrfPaymentSummary struct {
	DueDate      string  `json:"dueDate"` // DD/MM/YYYY
	Amount       float64 `json:"amount"`
	DocumentCode string  `json:"documentCode"`
}
