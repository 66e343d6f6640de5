package http

import (
	"errors"
	"net/http"
	"strings"

	loanDomain "smartfin-backend/internal/domain/loan"
	paymentDomain "smartfin-backend/internal/domain/payment"
	"smartfin-backend/internal/domain/validation"

	"github.com/labstack/echo/v4"
)

// writeError maps domain errors to HTTP statuses:
// validation/balance → 422, not found → 404, ownership → 403,
// deleted/defaulted state → 409, anything else → 500.
func writeError(c echo.Context, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, e := range verrs {
			details = append(details, FieldError{Field: e.Field, Message: e.Message, Code: e.Code})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: details})
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: verr.Field, Message: verr.Message, Code: verr.Code}},
		})
	}
	var balErr *paymentDomain.BalanceExceededError
	if errors.As(err, &balErr) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   balErr.Error(),
			Details: []FieldError{{Field: "payment_amount", Message: balErr.Error(), Code: validation.CodeExceedsBalance}},
		})
	}

	switch {
	case errors.Is(err, loanDomain.ErrNotFound), errors.Is(err, paymentDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, loanDomain.ErrNotOwned), errors.Is(err, paymentDomain.ErrNotOwned):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrDeleted), errors.Is(err, loanDomain.ErrDefaulted):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
