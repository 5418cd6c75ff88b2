package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/lioratech/mvp-web-sub001/modules/payroll/domain/payroll"
	"github.com/lioratech/mvp-web-sub001/pkg/composables"
)

const (
	defaultParamCeiling   = 65000
	defaultExistenceChunk = 1000
)

var (
	insertEvents = bulkInsert{
		table: "payroll_events",
		columns: []string{
			"account_id", "run_id", "month", "year",
			"company_tax_id", "company_name", "issue_date",
			"tax_id", "code", "name", "status", "admission_date",
			"link_type", "cost_center", "department", "hours_per_month",
			"position_code", "position_description", "cbo", "branch",
			"salary", "base_salary", "gross_earnings", "total_deductions",
			"net_pay", "inss_base", "fgts_base", "irrf_base", "fgts_value",
			"event_code", "event_description", "event_quantity", "event_value",
			"event_kind",
		},
	}
	insertHeadings = bulkInsert{
		table: "payroll_headings",
		columns: []string{
			"account_id", "run_id", "month", "year",
			"code", "description", "quantity", "value", "kind",
		},
	}
	insertInss = bulkInsert{
		table: "payroll_inss_summaries",
		columns: []string{
			"account_id", "run_id", "month", "year",
			"employees_base", "employer_share", "third_parties", "rat_share", "total",
		},
	}
	insertFgts = bulkInsert{
		table: "payroll_fgts_summaries",
		columns: []string{
			"account_id", "run_id", "month", "year",
			"fgts_base", "fgts_deposit", "pis_base", "iss_value", "total",
		},
	}
	insertIrrfCalcs = bulkInsert{
		table: "payroll_irrf_calculations",
		columns: []string{
			"account_id", "run_id", "month", "year",
			"taxable_base", "deductions", "withheld_total",
		},
	}
	insertIrrfPayments = bulkInsert{
		table: "payroll_irrf_payments",
		columns: []string{
			"account_id", "run_id", "month", "year",
			"due_date", "amount", "document_code",
		},
	}
	insertCollaborators = bulkInsert{
		table: "payroll_collaborators",
		columns: []string{
			"account_id", "run_id", "tax_id", "name", "branch", "admission_date",
		},
		suffix: "ON CONFLICT (account_id, tax_id) DO NOTHING",
	}
	insertStatuses = bulkInsert{
		table:   "payroll_collaborator_statuses",
		columns: []string{"account_id", "label"},
		suffix:  "ON CONFLICT (account_id, label) DO NOTHING",
	}
)

const (
	selectKnownCollaborators = `
	SELECT tax_id FROM payroll_collaborators
	WHERE account_id = $1 AND tax_id = ANY($2)`

	selectKnownStatuses = `
	SELECT label FROM payroll_collaborator_statuses
	WHERE account_id = $1 AND label = ANY($2)`
)

// runScopedTables maps count keys to tables carrying a run_id column, in
// delete order. Statuses are account-level vocabulary and are never deleted
// with a run.
var runScopedTables = []struct {
	key   string
	table string
}{
	{payroll.CountEvents, "payroll_events"},
	{payroll.CountHeadings, "payroll_headings"},
	{payroll.CountInss, "payroll_inss_summaries"},
	{payroll.CountFgts, "payroll_fgts_summaries"},
	{payroll.CountIrrfCalcs, "payroll_irrf_calculations"},
	{payroll.CountIrrfPayments, "payroll_irrf_payments"},
	{payroll.CountCollaborators, "payroll_collaborators"},
}

type PayrollRepository struct {
	paramCeiling   int
	existenceChunk int
}

func NewPayrollRepository(paramCeiling, existenceChunk int) *PayrollRepository {
	if paramCeiling < 1 {
		paramCeiling = defaultParamCeiling
	}
	if existenceChunk < 1 {
		existenceChunk = defaultExistenceChunk
	}
	return &PayrollRepository{paramCeiling: paramCeiling, existenceChunk: existenceChunk}
}

func (r *PayrollRepository) KnownCollaborators(ctx context.Context, accountID uuid.UUID, taxIDs []string) (map[string]struct{}, error) {
	return r.known(ctx, selectKnownCollaborators, accountID, taxIDs)
}

func (r *PayrollRepository) KnownStatuses(ctx context.Context, accountID uuid.UUID, labels []string) (map[string]struct{}, error) {
	return r.known(ctx, selectKnownStatuses, accountID, labels)
}

func (r *PayrollRepository) known(ctx context.Context, query string, accountID uuid.UUID, values []string) (map[string]struct{}, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(values))
	for _, chunk := range chunkStrings(values, r.existenceChunk) {
		rows, err := tx.Query(ctx, query, accountID, chunk)
		if err != nil {
			return nil, errors.Wrap(err, "querying existing rows")
		}
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return nil, errors.Wrap(err, "scanning existing row")
			}
			known[v] = struct{}{}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, errors.Wrap(err, "reading existing rows")
		}
	}
	return known, nil
}

func (r *PayrollRepository) InsertEvents(ctx context.Context, rows []payroll.EventRow) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	return insertEvents.execBatched(ctx, tx, r.paramCeiling, len(rows), func(dst []any, i int) []any {
		e := rows[i]
		return append(dst,
			e.AccountID, e.RunID, e.Month, e.Year,
			e.CompanyTaxID, e.CompanyName, e.IssueDate,
			e.TaxID, e.Code, e.Name, e.Status, e.AdmissionDate,
			e.LinkType, e.CostCenter, e.Department, e.HoursPerMonth,
			e.PositionCode, e.PositionDescription, e.CBO, e.Branch,
			e.Salary, e.BaseSalary, e.GrossEarnings, e.TotalDeductions,
			e.NetPay, e.InssBase, e.FgtsBase, e.IrrfBase, e.FgtsValue,
			e.EventCode, e.EventDescription, e.EventQuantity, e.EventValue,
			string(e.EventKind),
		)
	})
}

func (r *PayrollRepository) InsertHeadings(ctx context.Context, rows []payroll.HeadingRow) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	return insertHeadings.execBatched(ctx, tx, r.paramCeiling, len(rows), func(dst []any, i int) []any {
		h := rows[i]
		return append(dst,
			h.AccountID, h.RunID, h.Month, h.Year,
			h.Code, h.Description, h.Quantity, h.Value, string(h.Kind),
		)
	})
}

func (r *PayrollRepository) InsertInssSummaries(ctx context.Context, rows []payroll.InssSummaryRow) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	return insertInss.execBatched(ctx, tx, r.paramCeiling, len(rows), func(dst []any, i int) []any {
		s := rows[i]
		return append(dst,
			s.AccountID, s.RunID, s.Month, s.Year,
			s.EmployeesBase, s.EmployerShare, s.ThirdParties, s.RatShare, s.Total,
		)
	})
}

func (r *PayrollRepository) InsertFgtsSummaries(ctx context.Context, rows []payroll.FgtsSummaryRow) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	return insertFgts.execBatched(ctx, tx, r.paramCeiling, len(rows), func(dst []any, i int) []any {
		s := rows[i]
		return append(dst,
			s.AccountID, s.RunID, s.Month, s.Year,
			s.FgtsBase, s.FgtsDeposit, s.PisBase, s.IssValue, s.Total,
		)
	})
}

func (r *PayrollRepository) InsertIrrfCalcs(ctx context.Context, rows []payroll.IrrfCalcRow) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	return insertIrrfCalcs.execBatched(ctx, tx, r.paramCeiling, len(rows), func(dst []any, i int) []any {
		s := rows[i]
		return append(dst,
			s.AccountID, s.RunID, s.Month, s.Year,
			s.TaxableBase, s.Deductions, s.WithheldTotal,
		)
	})
}

func (r *PayrollRepository) InsertIrrfPayments(ctx context.Context, rows []payroll.IrrfPaymentRow) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	return insertIrrfPayments.execBatched(ctx, tx, r.paramCeiling, len(rows), func(dst []any, i int) []any {
		s := rows[i]
		return append(dst,
			s.AccountID, s.RunID, s.Month, s.Year,
			nullIfEmpty(s.DueDate), s.Amount, s.DocumentCode,
		)
	})
}

func (r *PayrollRepository) InsertCollaborators(ctx context.Context, rows []payroll.CollaboratorRow) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	return insertCollaborators.execBatched(ctx, tx, r.paramCeiling, len(rows), func(dst []any, i int) []any {
		c := rows[i]
		return append(dst, c.AccountID, c.RunID, c.TaxID, c.Name, c.Branch, c.AdmissionDate)
	})
}

func (r *PayrollRepository) InsertStatuses(ctx context.Context, rows []payroll.StatusRow) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	return insertStatuses.execBatched(ctx, tx, r.paramCeiling, len(rows), func(dst []any, i int) []any {
		s := rows[i]
		return append(dst, s.AccountID, s.Label)
	})
}

func (r *PayrollRepository) DeleteRun(ctx context.Context, accountID, runID uuid.UUID) (map[string]int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(runScopedTables)+1)
	for _, t := range runScopedTables {
		tag, err := tx.Exec(ctx,
			"DELETE FROM "+t.table+" WHERE account_id = $1 AND run_id = $2",
			accountID, runID,
		)
		if err != nil {
			return nil, errors.Wrapf(err, "deleting run rows from %s", t.table)
		}
		counts[t.key] = tag.RowsAffected()
	}
	counts[payroll.CountStatuses] = 0
	return counts, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
