package loanmock

import (
	"context"

	domain "smartfin-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies loan.Repository. Fill in
// the function fields a test needs; unfilled getters report not-found.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByUserFn           func(ctx context.Context, userID string, includeDeleted bool) ([]domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	SoftDeleteFn           func(ctx context.Context, l *domain.Loan) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByUser(ctx context.Context, userID string, includeDeleted bool) ([]domain.Loan, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, includeDeleted)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) SoftDelete(ctx context.Context, l *domain.Loan) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, l)
	}
	return nil
}
