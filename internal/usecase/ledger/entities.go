package ledger

import (
	"time"

	"smartfin-backend/internal/domain/validation"
)

// LoanInput carries caller-supplied loan data. Pointer fields distinguish
// "absent" from zero values so required-field validation can report each
// missing field, and so Update can patch a subset.
type LoanInput struct {
	Type          *string  `json:"loan_type"`
	Amount        *float64 `json:"loan_amount" validate:"omitempty,dec2"`
	TenureMonths  *int     `json:"loan_tenure"`
	MonthlyEMI    *float64 `json:"monthly_emi"`
	InterestRate  *float64 `json:"interest_rate"`
	StartDate     *string  `json:"loan_start_date"`
	MaturityDate  *string  `json:"loan_maturity_date"`
	DefaultStatus *bool    `json:"default_status"`
}

type ValidationResult struct {
	Valid  bool               `json:"valid"`
	Errors []validation.Error `json:"errors"`
}

type LoanDTO struct {
	LoanID        string     `json:"loan_id"`
	UserID        string     `json:"user_id"`
	Type          string     `json:"loan_type"`
	Amount        float64    `json:"loan_amount"`
	TenureMonths  int        `json:"loan_tenure"`
	MonthlyEMI    float64    `json:"monthly_emi"`
	InterestRate  float64    `json:"interest_rate"`
	StartDate     time.Time  `json:"loan_start_date"`
	MaturityDate  time.Time  `json:"loan_maturity_date"`
	DefaultStatus bool       `json:"default_status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}
