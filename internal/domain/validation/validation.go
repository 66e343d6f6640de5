package validation

import "strings"

// Error codes shared by the loan ledger and payment tracker.
const (
	CodeRequiredField       = "REQUIRED_FIELD"
	CodeInvalidType         = "INVALID_TYPE"
	CodeInvalidLoanType     = "INVALID_LOAN_TYPE"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInvalidTenure       = "INVALID_TENURE"
	CodeInvalidInterestRate = "INVALID_INTEREST_RATE"
	CodeInvalidEMI          = "INVALID_EMI"
	CodeInvalidDateRange    = "INVALID_DATE_RANGE"
	CodeInvalidDateFormat   = "INVALID_DATE_FORMAT"
	CodeEMIMismatch         = "EMI_MISMATCH"
	CodeExceedsBalance      = "EXCEEDS_BALANCE"
)

// Error is a field-scoped validation failure. Always recoverable by the
// caller correcting the input.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *Error) Error() string { return e.Field + ": " + e.Message }

// Errors aggregates the failures from one validation pass.
type Errors []Error

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return strings.Join(msgs, "; ")
}

// First returns the leading failure, the one surfaced to callers that only
// want a single error.
func (es Errors) First() *Error {
	if len(es) == 0 {
		return nil
	}
	return &es[0]
}
