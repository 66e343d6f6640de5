package mysql

import (
	"context"

	loanDomain "smartfin-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// GetByLoanID fetches by public id including soft-deleted rows; state checks
// belong to the caller.
func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Unscoped().Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate takes a row lock; call it inside a transaction. The
// locking clause is skipped on sqlite, which serializes writers anyway.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Unscoped()
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Loan
	res := q.Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID string, includeDeleted bool) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	if includeDeleted {
		q = q.Unscoped()
	}
	var out []loanDomain.Loan
	res := q.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) SoftDelete(ctx context.Context, l *loanDomain.Loan) error {
	// gorm soft delete: sets deleted_at, row stays.
	return r.db.WithContext(ctx).Delete(l).Error
}

var _ loanDomain.Repository = (*LoanRepository)(nil)
