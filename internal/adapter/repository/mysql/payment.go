package mysql

import (
	"context"

	paymentDomain "smartfin-backend/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanRef uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanRef).
		Order("payment_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// ListByUser joins through loans so only payments on the user's active
// (non-deleted) loans are counted.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Joins("INNER JOIN loans ON loans.id = loan_payments.loan_id").
		Where("loans.user_id = ? AND loans.deleted_at IS NULL", userID).
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) Delete(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Delete(p).Error
}

var _ paymentDomain.Repository = (*PaymentRepository)(nil)
