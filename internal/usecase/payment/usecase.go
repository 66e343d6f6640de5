package payment

import (
	"context"
	"errors"
	"log"

	domainLoan "smartfin-backend/internal/domain/loan"
	domainPayment "smartfin-backend/internal/domain/payment"
	"smartfin-backend/internal/domain/uow"
	"smartfin-backend/internal/domain/validation"
	"smartfin-backend/pkg/dates"
	"smartfin-backend/pkg/id"

	"gorm.io/gorm"

	"time"
)

// balanceTolerance absorbs rounding drift when comparing a payment against
// the remaining balance.
const balanceTolerance = 0.01

type Usecase struct {
	loans    domainLoan.Repository
	payments domainPayment.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, payments domainPayment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, payments: payments, uow: tx}
}

// DueDate returns the expected due date of the k-th installment (1-based).
// Installments fall on the start date's day each calendar month, starting in
// the start month itself, with the day clamped to the end of shorter months.
func DueDate(start time.Time, k int) time.Time {
	return dates.AddMonthsClamped(start, k-1)
}

// Classify derives the status of the k-th payment purely from the loan start
// date and the payment date: on or before the due date is on-time, up to 30
// days after is late, anything beyond is missed.
func Classify(start time.Time, k int, paid time.Time) (domainPayment.Status, int) {
	due := DueDate(start, k)
	days := int(dates.DateOnly(paid).Sub(due).Hours() / 24)
	switch {
	case days <= 0:
		return domainPayment.StatusOnTime, days
	case days <= 30:
		return domainPayment.StatusLate, days
	default:
		return domainPayment.StatusMissed, days
	}
}

// Record validates and persists a payment. The balance check and insert run
// inside a transaction that locks the loan row, so two concurrent payments
// cannot both pass the check against a stale sum.
func (u *Usecase) Record(ctx context.Context, loanID string, in PaymentInput) (*PaymentDTO, error) {
	if in.Date == nil {
		return nil, validation.Errors{{Field: "payment_date", Message: "payment_date is required", Code: validation.CodeRequiredField}}
	}
	if in.Amount == nil {
		return nil, validation.Errors{{Field: "payment_amount", Message: "payment_amount is required", Code: validation.CodeRequiredField}}
	}
	paidAt, err := dates.Parse(*in.Date)
	if err != nil {
		return nil, validation.Errors{{Field: "payment_date", Message: "Invalid date format. Use ISO 8601 format", Code: validation.CodeInvalidDateFormat}}
	}
	amount := *in.Amount
	if amount <= 0 {
		return nil, validation.Errors{{Field: "payment_amount", Message: "Payment amount must be positive", Code: validation.CodeInvalidAmount}}
	}

	var dto *PaymentDTO
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		existing, err := r.Payments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		var totalPaid float64
		for _, p := range existing {
			totalPaid += p.Amount
		}
		remaining := l.Amount - totalPaid
		if amount > remaining+balanceTolerance {
			log.Printf("payments: amount %.2f exceeds remaining balance %.2f on loan %s", amount, remaining, loanID)
			return &domainPayment.BalanceExceededError{Remaining: remaining}
		}

		k := len(existing) + 1
		status, daysOverdue := Classify(l.StartDate, k, paidAt)
		log.Printf("payments: loan %s installment %d due %s paid %s days_overdue=%d status=%s",
			loanID, k, DueDate(l.StartDate, k).Format("2006-01-02"),
			dates.DateOnly(paidAt).Format("2006-01-02"), daysOverdue, status)

		p := &domainPayment.Payment{
			PaymentID: id.NewID32(),
			LoanID:    l.ID,
			Date:      paidAt,
			Amount:    amount,
			Status:    status,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p, l.LoanID)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// History returns a loan's payments ascending by payment date.
func (u *Usecase) History(ctx context.Context, loanID string) ([]PaymentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	ps, err := u.payments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(ps))
	for i := range ps {
		out = append(out, *toDTO(&ps[i], l.LoanID))
	}
	return out, nil
}

// Delete removes a payment after verifying it belongs to the given loan.
// Returns false when the payment does not exist.
func (u *Usecase) Delete(ctx context.Context, paymentID, loanID string) (bool, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domainLoan.ErrNotFound
		}
		return false, err
	}
	p, err := u.payments.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if p.LoanID != l.ID {
		log.Printf("payments: payment %s does not belong to loan %s", paymentID, loanID)
		return false, domainPayment.ErrNotOwned
	}
	if err := u.payments.Delete(ctx, p); err != nil {
		return false, err
	}
	log.Printf("payments: payment deleted %s", paymentID)
	return true, nil
}

func toDTO(p *domainPayment.Payment, publicLoanID string) *PaymentDTO {
	return &PaymentDTO{
		PaymentID: p.PaymentID,
		LoanID:    publicLoanID,
		Date:      p.Date,
		Amount:    p.Amount,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
