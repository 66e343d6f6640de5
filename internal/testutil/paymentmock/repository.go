package paymentmock

import (
	"context"

	domain "smartfin-backend/internal/domain/payment"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies payment.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn func(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListByLoanFn     func(ctx context.Context, loanRef uint64) ([]domain.Payment, error)
	ListByUserFn     func(ctx context.Context, userID string) ([]domain.Payment, error)
	DeleteFn         func(ctx context.Context, p *domain.Payment) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLoan(ctx context.Context, loanRef uint64) ([]domain.Payment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanRef)
	}
	return nil, nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, p *domain.Payment) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p)
	}
	return nil
}
