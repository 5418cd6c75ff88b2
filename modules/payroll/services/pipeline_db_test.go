package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	payrollmodule "github.com/lioratech/mvp-web-sub001/modules/payroll"
	"github.com/lioratech/mvp-web-sub001/modules/payroll/domain/payroll"
	"github.com/lioratech/mvp-web-sub001/modules/payroll/services"
	"github.com/lioratech/mvp-web-sub001/pkg/itf"
)

func pipelineSubmission(runID uuid.UUID) *payroll.Submission {
	return &payroll.Submission{
		Company: payroll.Company{
			TaxID:     "12.345.678/0001-95",
			IssueDate: "15/01/2024",
			Name:      "Acme Ltda",
		},
		Competencies: []payroll.Competency{
			{
				Period: payroll.Period{Month: "01", Year: "2024"},
				RunID:  &runID,
				Employees: []payroll.EmployeeRecord{
					{
						TaxID: "111.111.111-11", Code: "E001", Name: "Maria",
						Status: "Ativo", AdmissionDate: "01/03/2020",
						Events: []payroll.PayEvent{
							{Code: "001", Description: "Salario", Value: 5000, Kind: payroll.EventKindEarning},
							{Code: "901", Description: "INSS", Value: 550, Kind: payroll.EventKindDeduction},
						},
					},
					{
						TaxID: "222.222.222-22", Code: "E002", Name: "Joao",
						Status: "Ferias", AdmissionDate: "10/07/2021",
						Events: []payroll.PayEvent{
							{Code: "001", Description: "Salario", Value: 3200, Kind: payroll.EventKindEarning},
						},
					},
				},
				HeadingSummaries: []payroll.HeadingSummary{
					{Code: "001", Description: "Salario", Value: 8200, Kind: payroll.EventKindEarning},
				},
				PeriodFrame: payroll.PeriodFrame{
					INSS: &payroll.InssSummary{EmployeesBase: 8200, Total: 2190},
				},
			},
		},
	}
}

func TestPayrollPipeline_RoundTrip(t *testing.T) {
	env := itf.Setup(t, payrollmodule.NewModule())
	svc := env.App.Service(services.PayrollService{}).(*services.PayrollService)

	// applied versions are tracked, so a second run is a no-op
	require.NoError(t, env.App.Migrations().Run(context.Background()))

	accountID, runID := uuid.New(), uuid.New()

	first, err := svc.Import(env.Ctx, accountID, pipelineSubmission(runID))
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.InsertedCounts[payroll.CountEvents])
	assert.Equal(t, int64(1), first.InsertedCounts[payroll.CountHeadings])
	assert.Equal(t, int64(1), first.InsertedCounts[payroll.CountInss])
	assert.Equal(t, int64(2), first.InsertedCounts[payroll.CountCollaborators])
	assert.Equal(t, int64(2), first.InsertedCounts[payroll.CountStatuses])

	// re-ingesting appends events but inserts no collaborator or status twice
	second, err := svc.Import(env.Ctx, accountID, pipelineSubmission(runID))
	require.NoError(t, err)
	assert.Equal(t, int64(3), second.InsertedCounts[payroll.CountEvents])
	assert.Zero(t, second.InsertedCounts[payroll.CountCollaborators])
	assert.Zero(t, second.InsertedCounts[payroll.CountStatuses])

	deleted, err := svc.DeleteRun(env.Ctx, accountID, runID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), deleted.DeletedCounts[payroll.CountEvents])
	assert.Equal(t, int64(2), deleted.DeletedCounts[payroll.CountHeadings])
	assert.Equal(t, int64(2), deleted.DeletedCounts[payroll.CountInss])
	assert.Equal(t, int64(2), deleted.DeletedCounts[payroll.CountCollaborators])
	assert.Zero(t, deleted.DeletedCounts[payroll.CountStatuses])

	// a second delete finds nothing and reports zero counts
	again, err := svc.DeleteRun(env.Ctx, accountID, runID)
	require.NoError(t, err)
	assert.Zero(t, again.DeletedCounts[payroll.CountEvents])
	assert.Zero(t, again.DeletedCounts[payroll.CountCollaborators])
}

func TestPayrollPipeline_AccountsAreIsolated(t *testing.T) {
	env := itf.Setup(t, payrollmodule.NewModule())
	svc := env.App.Service(services.PayrollService{}).(*services.PayrollService)

	runID := uuid.New()
	accountA, accountB := uuid.New(), uuid.New()

	_, err := svc.Import(env.Ctx, accountA, pipelineSubmission(runID))
	require.NoError(t, err)

	// same tax ids under another account insert fresh collaborators
	report, err := svc.Import(env.Ctx, accountB, pipelineSubmission(runID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.InsertedCounts[payroll.CountCollaborators])

	// deleting the run for one account leaves the other untouched
	_, err = svc.DeleteRun(env.Ctx, accountA, runID)
	require.NoError(t, err)

	deleted, err := svc.DeleteRun(env.Ctx, accountB, runID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted.DeletedCounts[payroll.CountEvents])
}
