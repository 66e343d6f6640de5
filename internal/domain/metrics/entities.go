package metrics

import (
	"context"
	"time"
)

type PaymentStatistics struct {
	OnTimePercentage float64 `json:"on_time_payment_percentage"`
	LateCount        int     `json:"late_payment_count"`
	MissedCount      int     `json:"missed_payment_count"`
	TotalPayments    int     `json:"total_payments"`
}

type LoanStatistics struct {
	TotalActiveLoans      int                `json:"total_active_loans"`
	TotalLoanAmount       float64            `json:"total_loan_amount"`
	AverageTenure         float64            `json:"average_loan_tenure"`
	WeightedAverageTenure float64            `json:"weighted_average_tenure"`
	TypeDistribution      map[string]float64 `json:"loan_type_distribution"`
}

// Snapshot is a write-through cache row, never the source of truth; scores
// are always recomputed from loans and payments.
type Snapshot struct {
	UserID              string            `gorm:"primaryKey;size:32;column:user_id"`
	DiversityScore      float64           `gorm:"column:loan_diversity_score"`
	PaymentHistoryScore float64           `gorm:"column:payment_history_score"`
	MaturityScore       float64           `gorm:"column:loan_maturity_score"`
	PaymentStats        PaymentStatistics `gorm:"column:payment_statistics;serializer:json"`
	LoanStats           LoanStatistics    `gorm:"column:loan_statistics;serializer:json"`
	CalculatedAt        time.Time         `gorm:"column:calculated_at"`
}

func (Snapshot) TableName() string { return "loan_metrics" }

type SnapshotRepository interface {
	Upsert(ctx context.Context, s *Snapshot) error
}
