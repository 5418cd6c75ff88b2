package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lioratech/mvp-web-sub001/modules/payroll/domain/payroll"
	"github.com/lioratech/mvp-web-sub001/modules/payroll/services"
	"github.com/lioratech/mvp-web-sub001/pkg/application"
	"github.com/lioratech/mvp-web-sub001/pkg/httpapi"
	"github.com/lioratech/mvp-web-sub001/pkg/serrors"
)

type PayrollController struct {
	app      application.Application
	service  *services.PayrollService
	validate *validator.Validate
}

func NewPayrollController(app application.Application) *PayrollController {
	return &PayrollController{
		app:      app,
		service:  app.Service(services.PayrollService{}).(*services.PayrollService),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (c *PayrollController) Key() string {
	return "/payroll"
}

func (c *PayrollController) Register(r *mux.Router) {
	router := r.PathPrefix("/payroll").Subrouter()
	router.HandleFunc("/imports", c.importSubmission).Methods(http.MethodPost)
	router.HandleFunc("/imports/{accountId}/{runId}", c.deleteRun).Methods(http.MethodDelete)
}

type importRequest struct {
	AccountID  string              `json:"accountId" validate:"required,uuid"`
	Submission *payroll.Submission `json:"submission" validate:"required"`
}

func (c *PayrollController) importSubmission(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON", nil)
		return
	}
	if err := c.validate.Struct(&req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "accountId is not a UUID", nil)
		return
	}

	report, err := c.service.Import(r.Context(), accountID, req.Submission)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, report)
}

func (c *PayrollController) deleteRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	accountID, err := uuid.Parse(vars["accountId"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PATH", "accountId is not a UUID", nil)
		return
	}
	runID, err := uuid.Parse(vars["runId"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_PATH", "runId is not a UUID", nil)
		return
	}

	report, err := c.service.DeleteRun(r.Context(), accountID, runID)
	if err != nil {
		c.writeServiceError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, report)
}

// writeServiceError maps coded pipeline errors onto HTTP statuses. The
// internal detail stays in the logs, only code and message go to the caller.
func (c *PayrollController) writeServiceError(w http.ResponseWriter, err error) {
	coded, ok := serrors.From(err)
	if !ok {
		c.app.Logger().WithError(err).Error("payroll request failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
		return
	}
	status := http.StatusInternalServerError
	if coded.Code == payroll.CodeValidation {
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		c.app.Logger().WithError(err).Error("payroll request failed")
	}
	_ = httpapi.WriteError(w, status, coded.Code, coded.Message, nil)
}
