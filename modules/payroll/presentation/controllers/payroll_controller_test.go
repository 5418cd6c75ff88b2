package controllers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lioratech/mvp-web-sub001/modules/payroll/domain/payroll"
	"github.com/lioratech/mvp-web-sub001/modules/payroll/presentation/controllers"
	"github.com/lioratech/mvp-web-sub001/modules/payroll/services"
	"github.com/lioratech/mvp-web-sub001/pkg/application"
	"github.com/lioratech/mvp-web-sub001/pkg/eventbus"
)

type noopTx struct {
	pgx.Tx
}

func (noopTx) Commit(context.Context) error   { return nil }
func (noopTx) Rollback(context.Context) error { return pgx.ErrTxClosed }

type noopDB struct{}

func (noopDB) Begin(context.Context) (pgx.Tx, error) { return noopTx{}, nil }

type memoryRepo struct {
	events  int64
	deleted map[string]int64
}

func (m *memoryRepo) KnownCollaborators(context.Context, uuid.UUID, []string) (map[string]struct{}, error) {
	return nil, nil
}

func (m *memoryRepo) KnownStatuses(context.Context, uuid.UUID, []string) (map[string]struct{}, error) {
	return nil, nil
}

func (m *memoryRepo) InsertEvents(_ context.Context, rows []payroll.EventRow) (int64, error) {
	m.events += int64(len(rows))
	return int64(len(rows)), nil
}

func (m *memoryRepo) InsertHeadings(_ context.Context, rows []payroll.HeadingRow) (int64, error) {
	return int64(len(rows)), nil
}

func (m *memoryRepo) InsertInssSummaries(_ context.Context, rows []payroll.InssSummaryRow) (int64, error) {
	return int64(len(rows)), nil
}

func (m *memoryRepo) InsertFgtsSummaries(_ context.Context, rows []payroll.FgtsSummaryRow) (int64, error) {
	return int64(len(rows)), nil
}

func (m *memoryRepo) InsertIrrfCalcs(_ context.Context, rows []payroll.IrrfCalcRow) (int64, error) {
	return int64(len(rows)), nil
}

func (m *memoryRepo) InsertIrrfPayments(_ context.Context, rows []payroll.IrrfPaymentRow) (int64, error) {
	return int64(len(rows)), nil
}

func (m *memoryRepo) InsertCollaborators(_ context.Context, rows []payroll.CollaboratorRow) (int64, error) {
	return int64(len(rows)), nil
}

func (m *memoryRepo) InsertStatuses(_ context.Context, rows []payroll.StatusRow) (int64, error) {
	return int64(len(rows)), nil
}

func (m *memoryRepo) DeleteRun(context.Context, uuid.UUID, uuid.UUID) (map[string]int64, error) {
	return m.deleted, nil
}

func newTestRouter(t *testing.T, repo payroll.Repository) *mux.Router {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterServices(services.NewPayrollService(noopDB{}, repo, app.EventPublisher()))

	router := mux.NewRouter()
	controllers.NewPayrollController(app).Register(router)
	return router
}

func importBody(accountID string) string {
	return fmt.Sprintf(`{
		"accountId": %q,
		"submission": {
			"company": {"taxId": "12345678000195", "issueDate": "15/01/2024", "name": "Acme"},
			"competencies": [{
				"period": {"month": "01", "year": "2024"},
				"employees": [{
					"taxId": "11111111111",
					"code": "E001",
					"name": "Maria",
					"status": "Ativo",
					"admissionDate": "01/03/2020",
					"events": [{"code": "001", "value": 5000, "kind": "earning"}]
				}],
				"periodFrame": {}
			}]
		}
	}`, accountID)
}

func TestPayrollController_Import(t *testing.T) {
	repo := &memoryRepo{}
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/payroll/imports", strings.NewReader(importBody(uuid.NewString())))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report payroll.ImportReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Success)
	assert.Equal(t, int64(1), report.InsertedCounts["events"])
	assert.Equal(t, int64(1), repo.events)
}

func TestPayrollController_Import_MalformedJSON(t *testing.T) {
	router := newTestRouter(t, &memoryRepo{})

	req := httptest.NewRequest(http.MethodPost, "/payroll/imports", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_BODY")
}

func TestPayrollController_Import_MissingAccountID(t *testing.T) {
	router := newTestRouter(t, &memoryRepo{})

	req := httptest.NewRequest(http.MethodPost, "/payroll/imports", strings.NewReader(importBody("")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayrollController_Import_DocumentValidation(t *testing.T) {
	router := newTestRouter(t, &memoryRepo{})

	body := strings.Replace(importBody(uuid.NewString()), "15/01/2024", "2024-01-15", 1)
	req := httptest.NewRequest(http.MethodPost, "/payroll/imports", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), payroll.CodeValidation)
}

func TestPayrollController_DeleteRun(t *testing.T) {
	repo := &memoryRepo{deleted: map[string]int64{payroll.CountEvents: 42}}
	router := newTestRouter(t, repo)

	target := fmt.Sprintf("/payroll/imports/%s/%s", uuid.NewString(), uuid.NewString())
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report payroll.DeleteReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, int64(42), report.DeletedCounts["events"])
}

func TestPayrollController_DeleteRun_UnknownRunIsIdempotent(t *testing.T) {
	router := newTestRouter(t, &memoryRepo{deleted: map[string]int64{}})

	target := fmt.Sprintf("/payroll/imports/%s/%s", uuid.NewString(), uuid.NewString())
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report payroll.DeleteReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Success)
	assert.Zero(t, report.DeletedCounts["events"])
}

func TestPayrollController_DeleteRun_BadRunID(t *testing.T) {
	router := newTestRouter(t, &memoryRepo{})

	target := fmt.Sprintf("/payroll/imports/%s/not-a-uuid", uuid.NewString())
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
