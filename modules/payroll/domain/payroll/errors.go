package payroll

import "github.com/lioratech/mvp-web-sub001/pkg/serrors"

const (
	CodeValidation = "PAYROLL_VALIDATION"
	CodeTxFailed   = "PAYROLL_TX_FAILED"
)

var (
	ErrInvalidIssueDate    = serrors.NewError(CodeValidation, "company issue date is missing or not DD/MM/YYYY", "")
	ErrMissingCompanyTaxID = serrors.NewError(CodeValidation, "company tax id is required", "")
	ErrTxFailed            = serrors.NewError(CodeTxFailed, "payroll write transaction failed", "")
)
