package uow

import (
	"context"

	"smartfin-backend/internal/domain/loan"
	"smartfin-backend/internal/domain/payment"
)

type Repos struct {
	Loans    loan.Repository
	Payments payment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. The balance
	// check in payment recording is check-then-act; the row lock keeps two
	// concurrent payments from both reading a stale balance.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
