package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const brDateLayout = "02/01/2006"

// Flattened is the normalized output of one submission, grouped per target
// table. Collaborators and Statuses are raw candidates; run them through
// DedupeCollaborators / DedupeStatuses before writing.
type Flattened struct {
	Events        []EventRow
	Headings      []HeadingRow
	Inss          []InssSummaryRow
	Fgts          []FgtsSummaryRow
	IrrfCalcs     []IrrfCalcRow
	IrrfPayments  []IrrfPaymentRow
	Collaborators []CollaboratorRow
	Statuses      []StatusRow

	// SkippedCompetencies holds the raw period labels of competencies whose
	// period could not be parsed; SkippedEmployees the codes (or names) of
	// employees dropped for a missing tax id or unparseable admission date.
	SkippedCompetencies []string
	SkippedEmployees    []string
}

// Flatten walks the submission and produces one row slice per target table.
// It is pure: no I/O, no clock, deterministic for a given input. Competencies
// and employees that fail their local checks are skipped and recorded, never
// fatal; only document-level defects return an error.
func Flatten(accountID uuid.UUID, sub *Submission) (*Flattened, error) {
	issueDate, ok := normalizeDate(sub.Company.IssueDate)
	if !ok {
		return nil, ErrInvalidIssueDate.WithDetail(sub.Company.IssueDate)
	}
	companyTaxID := digitsOnly(sub.Company.TaxID)
	if companyTaxID == "" {
		return nil, ErrMissingCompanyTaxID
	}

	out := &Flattened{}

	for _, comp := range sub.Competencies {
		month, year, ok := parsePeriod(comp.Period)
		if !ok {
			out.SkippedCompetencies = append(out.SkippedCompetencies, periodLabel(comp.Period))
			continue
		}

		if s := comp.PeriodFrame.INSS; s != nil {
			out.Inss = append(out.Inss, InssSummaryRow{
				AccountID:     accountID,
				RunID:         comp.RunID,
				Month:         month,
				Year:          year,
				EmployeesBase: s.EmployeesBase,
				EmployerShare: s.EmployerShare,
				ThirdParties:  s.ThirdParties,
				RatShare:      s.RatShare,
				Total:         s.Total,
			})
		}
		if s := comp.PeriodFrame.FgtsPisIss; s != nil {
			out.Fgts = append(out.Fgts, FgtsSummaryRow{
				AccountID:   accountID,
				RunID:       comp.RunID,
				Month:       month,
				Year:        year,
				FgtsBase:    s.FgtsBase,
				FgtsDeposit: s.FgtsDeposit,
				PisBase:     s.PisBase,
				IssValue:    s.IssValue,
				Total:       s.Total,
			})
		}
		if s := comp.PeriodFrame.IrrfCalc; s != nil {
			out.IrrfCalcs = append(out.IrrfCalcs, IrrfCalcRow{
				AccountID:     accountID,
				RunID:         comp.RunID,
				Month:         month,
				Year:          year,
				TaxableBase:   s.TaxableBase,
				Deductions:    s.Deductions,
				WithheldTotal: s.WithheldTotal,
			})
		}
		if s := comp.PeriodFrame.IrrfPayment; s != nil {
			dueDate, _ := normalizeDate(s.DueDate)
			out.IrrfPayments = append(out.IrrfPayments, IrrfPaymentRow{
				AccountID:    accountID,
				RunID:        comp.RunID,
				Month:        month,
				Year:         year,
				DueDate:      dueDate,
				Amount:       s.Amount,
				DocumentCode: s.DocumentCode,
			})
		}

		for _, h := range comp.HeadingSummaries {
			out.Headings = append(out.Headings, HeadingRow{
				AccountID:   accountID,
				RunID:       comp.RunID,
				Month:       month,
				Year:        year,
				Code:        h.Code,
				Description: h.Description,
				Quantity:    h.Quantity,
				Value:       h.Value,
				Kind:        h.Kind,
			})
		}

		for _, emp := range comp.Employees {
			taxID := digitsOnly(emp.TaxID)
			admissionDate, dateOK := normalizeDate(emp.AdmissionDate)
			if taxID == "" || !dateOK {
				out.SkippedEmployees = append(out.SkippedEmployees, employeeLabel(emp))
				continue
			}

			out.Collaborators = append(out.Collaborators, CollaboratorRow{
				AccountID:     accountID,
				RunID:         comp.RunID,
				TaxID:         taxID,
				Name:          emp.Name,
				Branch:        emp.Branch,
				AdmissionDate: admissionDate,
			})
			if label := strings.TrimSpace(emp.Status); label != "" {
				out.Statuses = append(out.Statuses, StatusRow{AccountID: accountID, Label: label})
			}

			for _, ev := range emp.Events {
				out.Events = append(out.Events, EventRow{
					AccountID:    accountID,
					RunID:        comp.RunID,
					Month:        month,
					Year:         year,
					CompanyTaxID: companyTaxID,
					CompanyName:  sub.Company.Name,
					IssueDate:    issueDate,

					TaxID:               taxID,
					Code:                emp.Code,
					Name:                emp.Name,
					Status:              emp.Status,
					AdmissionDate:       admissionDate,
					LinkType:            emp.LinkType,
					CostCenter:          emp.CostCenter,
					Department:          emp.Department,
					HoursPerMonth:       emp.HoursPerMonth,
					PositionCode:        emp.PositionCode,
					PositionDescription: emp.PositionDescription,
					CBO:                 emp.CBO,
					Branch:              emp.Branch,

					Salary:          emp.Salary,
					BaseSalary:      emp.BaseSalary,
					GrossEarnings:   emp.Totals.GrossEarnings,
					TotalDeductions: emp.Totals.TotalDeductions,
					NetPay:          emp.Totals.NetPay,
					InssBase:        emp.Bases.InssBase,
					FgtsBase:        emp.Bases.FgtsBase,
					IrrfBase:        emp.Bases.IrrfBase,
					FgtsValue:       emp.Bases.FgtsValue,

					EventCode:        ev.Code,
					EventDescription: ev.Description,
					EventQuantity:    ev.Quantity,
					EventValue:       ev.Value,
					EventKind:        ev.Kind,
				})
			}
		}
	}
	return out, nil
}

// normalizeDate converts DD/MM/YYYY into YYYY-MM-DD. Anything else fails.
func normalizeDate(s string) (string, bool) {
	t, err := time.Parse(brDateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// digitsOnly strips formatting from tax ids (12.345.678/0001-95 and the
// like), leaving bare digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parsePeriod(p Period) (month, year int, ok bool) {
	month, err := strconv.Atoi(strings.TrimSpace(p.Month))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	year, err = strconv.Atoi(strings.TrimSpace(p.Year))
	if err != nil || year < 1900 || year > 2200 {
		return 0, 0, false
	}
	return month, year, true
}

func periodLabel(p Period) string {
	return fmt.Sprintf("%s/%s", p.Month, p.Year)
}

func employeeLabel(emp EmployeeRecord) string {
	if emp.Code != "" {
		return emp.Code
	}
	return emp.Name
}
