package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lioratech/mvp-web-sub001/modules/payroll/domain/payroll"
	"github.com/lioratech/mvp-web-sub001/pkg/composables"
	"github.com/lioratech/mvp-web-sub001/pkg/eventbus"
)

// DB starts write transactions. *pgxpool.Pool satisfies it.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PayrollService runs the ingestion pipeline: flatten outside the
// transaction, then write every table inside one transaction so a submission
// lands fully or not at all.
type PayrollService struct {
	db        DB
	repo      payroll.Repository
	publisher eventbus.EventBus
}

func NewPayrollService(db DB, repo payroll.Repository, publisher eventbus.EventBus) *PayrollService {
	return &PayrollService{db: db, repo: repo, publisher: publisher}
}

func (s *PayrollService) Import(ctx context.Context, accountID uuid.UUID, sub *payroll.Submission) (*payroll.ImportReport, error) {
	started := time.Now()
	logger := composables.UseLogger(ctx)

	flat, err := payroll.Flatten(accountID, sub)
	if err != nil {
		return nil, err
	}
	if len(flat.SkippedCompetencies) > 0 {
		logger.WithField("periods", flat.SkippedCompetencies).
			Warn("skipping competencies with unparseable periods")
	}
	if len(flat.SkippedEmployees) > 0 {
		logger.WithField("employees", flat.SkippedEmployees).
			Warn("skipping employees without tax id or admission date")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, payroll.ErrTxFailed.Wrap(err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.WithError(rbErr).Error("rolling back payroll import")
		}
	}()
	txCtx := composables.WithTx(ctx, tx)

	counts, err := s.writeAll(txCtx, accountID, flat)
	if err != nil {
		return nil, payroll.ErrTxFailed.Wrap(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, payroll.ErrTxFailed.Wrap(err)
	}

	report := payroll.NewImportReport(counts, flat.SkippedCompetencies, time.Since(started))
	s.publisher.Publish(&payroll.ImportedEvent{AccountID: accountID, Report: report})
	observeImport(report)

	logger.WithField("counts", report.InsertedCounts).
		WithField("durationMs", report.DurationMs).
		Info("payroll submission imported")
	return report, nil
}

// writeAll persists every row group of one flattened submission through the
// transaction in ctx. Summary and heading rows go in as-is; collaborators
// and statuses pass through the existence check first so re-ingesting a
// submission inserts none of them twice.
func (s *PayrollService) writeAll(ctx context.Context, accountID uuid.UUID, flat *payroll.Flattened) (map[string]int64, error) {
	counts := make(map[string]int64, 8)

	var err error
	if counts[payroll.CountInss], err = s.repo.InsertInssSummaries(ctx, flat.Inss); err != nil {
		return nil, err
	}
	if counts[payroll.CountFgts], err = s.repo.InsertFgtsSummaries(ctx, flat.Fgts); err != nil {
		return nil, err
	}
	if counts[payroll.CountIrrfCalcs], err = s.repo.InsertIrrfCalcs(ctx, flat.IrrfCalcs); err != nil {
		return nil, err
	}
	if counts[payroll.CountIrrfPayments], err = s.repo.InsertIrrfPayments(ctx, flat.IrrfPayments); err != nil {
		return nil, err
	}
	if counts[payroll.CountHeadings], err = s.repo.InsertHeadings(ctx, flat.Headings); err != nil {
		return nil, err
	}

	knownCollabs, err := s.repo.KnownCollaborators(ctx, accountID, payroll.CollaboratorTaxIDs(flat.Collaborators))
	if err != nil {
		return nil, err
	}
	newCollabs := payroll.DedupeCollaborators(flat.Collaborators, knownCollabs)
	if counts[payroll.CountCollaborators], err = s.repo.InsertCollaborators(ctx, newCollabs); err != nil {
		return nil, err
	}

	knownStatuses, err := s.repo.KnownStatuses(ctx, accountID, payroll.StatusLabels(flat.Statuses))
	if err != nil {
		return nil, err
	}
	newStatuses := payroll.DedupeStatuses(flat.Statuses, knownStatuses)
	if counts[payroll.CountStatuses], err = s.repo.InsertStatuses(ctx, newStatuses); err != nil {
		return nil, err
	}

	if counts[payroll.CountEvents], err = s.repo.InsertEvents(ctx, flat.Events); err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *PayrollService) DeleteRun(ctx context.Context, accountID, runID uuid.UUID) (*payroll.DeleteReport, error) {
	started := time.Now()
	logger := composables.UseLogger(ctx)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, payroll.ErrTxFailed.Wrap(err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.WithError(rbErr).Error("rolling back payroll run delete")
		}
	}()

	counts, err := s.repo.DeleteRun(composables.WithTx(ctx, tx), accountID, runID)
	if err != nil {
		return nil, payroll.ErrTxFailed.Wrap(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, payroll.ErrTxFailed.Wrap(err)
	}

	// deleting a run that wrote nothing is a success with zero counts
	report := payroll.NewDeleteReport(counts, time.Since(started))
	s.publisher.Publish(&payroll.RunDeletedEvent{AccountID: accountID, RunID: runID, Report: report})
	observeDelete(report)

	logger.WithField("runId", runID).
		WithField("counts", report.DeletedCounts).
		Info("payroll run deleted")
	return report, nil
}
