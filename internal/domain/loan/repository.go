package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	// GetByLoanID returns the loan regardless of soft-delete state; callers
	// decide whether a deleted loan is acceptable.
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row for the duration of the enclosing
	// transaction. Only meaningful inside a UnitOfWork.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByUser(ctx context.Context, userID string, includeDeleted bool) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	SoftDelete(ctx context.Context, l *Loan) error
}
