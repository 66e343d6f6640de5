package payment

import "time"

// PaymentInput carries caller-supplied payment data; pointers distinguish
// absent fields for required-field validation.
type PaymentInput struct {
	Date   *string  `json:"payment_date"`
	Amount *float64 `json:"payment_amount" validate:"omitempty,dec2"`
}

type PaymentDTO struct {
	PaymentID string    `json:"payment_id"`
	LoanID    string    `json:"loan_id"`
	Date      time.Time `json:"payment_date"`
	Amount    float64   `json:"payment_amount"`
	Status    string    `json:"payment_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
