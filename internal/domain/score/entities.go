package score

import (
	"context"
	"time"
)

// HistoryEntry is an appended snapshot of a computed financial health score.
type HistoryEntry struct {
	ID                  uint64    `gorm:"primaryKey;column:id"`
	UserID              string    `gorm:"size:32;index:idx_score_history_user;column:user_id"`
	SavingsScore        float64   `gorm:"column:savings_score"`
	DebtScore           float64   `gorm:"column:debt_score"`
	ExpenseScore        float64   `gorm:"column:expense_score"`
	BalanceScore        float64   `gorm:"column:balance_score"`
	LifeStageScore      float64   `gorm:"column:life_stage_score"`
	LoanDiversityScore  float64   `gorm:"column:loan_diversity_score"`
	PaymentHistoryScore float64   `gorm:"column:payment_history_score"`
	LoanMaturityScore   float64   `gorm:"column:loan_maturity_score"`
	OverallScore        float64   `gorm:"column:overall_score"`
	CalculatedAt        time.Time `gorm:"column:calculated_at"`
}

func (HistoryEntry) TableName() string { return "score_history" }

type HistoryRepository interface {
	Append(ctx context.Context, e *HistoryEntry) error
	// ListByUser returns entries newest first, at most limit rows.
	ListByUser(ctx context.Context, userID string, limit int) ([]HistoryEntry, error)
}
