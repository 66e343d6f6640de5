package payment

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound = errors.New("payment not found")
	ErrNotOwned = errors.New("payment does not belong to loan")
)

// BalanceExceededError rejects a payment that would overdraw the loan.
type BalanceExceededError struct {
	Remaining float64
}

func (e *BalanceExceededError) Error() string {
	return fmt.Sprintf("payment amount exceeds remaining balance (remaining: %.2f)", e.Remaining)
}

type Status string

const (
	StatusOnTime Status = "on-time"
	StatusLate   Status = "late"
	StatusMissed Status = "missed"
)

type Payment struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	PaymentID string    `gorm:"size:32;uniqueIndex:ux_payments_payment_id"`
	// Numeric FK to loans.id.
	LoanID    uint64    `gorm:"column:loan_id;not null;index:idx_payments_loan"`
	Date      time.Time `gorm:"column:payment_date"`
	Amount    float64   `gorm:"column:payment_amount;type:decimal(18,2)"`
	Status    Status    `gorm:"column:payment_status;type:enum('on-time','late','missed')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string { return "loan_payments" }
