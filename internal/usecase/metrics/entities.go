package metrics

import (
	"time"

	domainMetrics "smartfin-backend/internal/domain/metrics"
)

type SnapshotDTO struct {
	UserID              string                          `json:"user_id"`
	DiversityScore      float64                         `json:"loan_diversity_score"`
	PaymentHistoryScore float64                         `json:"payment_history_score"`
	MaturityScore       float64                         `json:"loan_maturity_score"`
	PaymentStats        domainMetrics.PaymentStatistics `json:"payment_statistics"`
	LoanStats           domainMetrics.LoanStatistics    `json:"loan_statistics"`
	CalculatedAt        time.Time                       `json:"calculated_at"`
}
