package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	// ListByLoan returns a loan's payments ascending by payment_date.
	ListByLoan(ctx context.Context, loanRef uint64) ([]Payment, error)
	// ListByUser returns payments across all of the user's active loans.
	ListByUser(ctx context.Context, userID string) ([]Payment, error)
	Delete(ctx context.Context, p *Payment) error
}
