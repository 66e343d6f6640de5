package metrics

import (
	"context"
	"log"
	"math"
	"time"

	domainLoan "smartfin-backend/internal/domain/loan"
	domainMetrics "smartfin-backend/internal/domain/metrics"
	domainPayment "smartfin-backend/internal/domain/payment"
	"smartfin-backend/pkg/dates"
)

// Neutral baselines returned when a user has no data to score.
const (
	baselineDiversity      = 50.0
	baselinePaymentHistory = 70.0
	baselineMaturity       = 50.0
)

// Engine derives loan metric scores from a user's active loans and all of
// their payments. Read-only over the ledger and tracker state; the snapshot
// cache is write-through only.
type Engine struct {
	loans     domainLoan.Repository
	payments  domainPayment.Repository
	snapshots domainMetrics.SnapshotRepository // optional

	now func() time.Time
}

func NewEngine(loans domainLoan.Repository, payments domainPayment.Repository, snapshots domainMetrics.SnapshotRepository) *Engine {
	return &Engine{loans: loans, payments: payments, snapshots: snapshots, now: time.Now}
}

// DiversityScore rates the spread of a user's active loans across types,
// amounts and count. No active loans scores the neutral 50.
func (e *Engine) DiversityScore(ctx context.Context, userID string) (float64, error) {
	loans, err := e.loans.ListByUser(ctx, userID, false)
	if err != nil {
		return 0, err
	}
	if len(loans) == 0 {
		return baselineDiversity, nil
	}

	typeAmounts := map[domainLoan.Type]float64{}
	var totalAmount float64
	for _, l := range loans {
		typeAmounts[l.Type] += l.Amount
		totalAmount += l.Amount
	}
	numTypes := len(typeAmounts)
	loanCount := len(loans)

	var maxShare float64
	for _, amount := range typeAmounts {
		if share := amount / totalAmount * 100; share > maxShare {
			maxShare = share
		}
	}

	var typeDiversity float64
	switch numTypes {
	case 1:
		typeDiversity = 50
	case 2:
		typeDiversity = 75
	case 3:
		typeDiversity = 90
	default:
		typeDiversity = 100
	}

	var distribution float64
	switch {
	case maxShare > 80:
		distribution = 50
	case maxShare > 60:
		distribution = 70
	case maxShare > 40:
		distribution = 85
	default:
		distribution = 100
	}

	var countScore float64
	switch loanCount {
	case 1:
		countScore = 60
	case 2:
		countScore = 75
	case 3:
		countScore = 90
	case 4:
		countScore = 100
	default:
		countScore = 85
	}

	base := typeDiversity*0.40 + distribution*0.35 + countScore*0.25

	// Independent, additive penalties, each applied at most once.
	var penalties float64
	if numTypes == 1 && loanCount > 1 {
		penalties += 10
	}
	if numTypes > 1 && maxShare > 80 {
		penalties += 10
	}
	if loanCount > 5 {
		penalties += 10
	}

	return round2(clamp(base - penalties)), nil
}

// PaymentHistoryScore buckets the on-time percentage across every payment
// on the user's active loans, then deducts for late and missed counts. No
// payments scores 70, the new-borrower neutral.
func (e *Engine) PaymentHistoryScore(ctx context.Context, userID string) (float64, error) {
	payments, err := e.payments.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(payments) == 0 {
		return baselinePaymentHistory, nil
	}

	var onTime, late, missed int
	for _, p := range payments {
		switch p.Status {
		case domainPayment.StatusOnTime:
			onTime++
		case domainPayment.StatusLate:
			late++
		case domainPayment.StatusMissed:
			missed++
		}
	}
	onTimePct := float64(onTime) / float64(len(payments)) * 100

	var base float64
	switch {
	case onTimePct >= 95:
		base = 95
	case onTimePct >= 85:
		base = 80
	case onTimePct >= 75:
		base = 65
	case onTimePct >= 60:
		base = 45
	default:
		base = 25
	}

	lateDeduction := math.Min(15, float64(late)*2)
	missedDeduction := math.Min(25, float64(missed)*5)

	return round2(clamp(base - lateDeduction - missedDeduction)), nil
}

// MaturityScore buckets the amount-weighted average tenure of active loans,
// with a one-time bonus if any loan matures within 6 months and a one-time
// penalty if any matures beyond 120 months.
func (e *Engine) MaturityScore(ctx context.Context, userID string) (float64, error) {
	loans, err := e.loans.ListByUser(ctx, userID, false)
	if err != nil {
		return 0, err
	}
	if len(loans) == 0 {
		return baselineMaturity, nil
	}

	var totalAmount, weighted float64
	for _, l := range loans {
		totalAmount += l.Amount
		weighted += l.Amount * float64(l.TenureMonths)
	}
	tenure := weighted / totalAmount

	var base float64
	switch {
	case tenure < 12:
		base = 85
	case tenure < 36:
		base = 75
	case tenure < 60:
		base = 65
	default:
		base = 50
	}

	now := e.now().UTC()
	var adjustments float64
	if anyLoan(loans, func(l *domainLoan.Loan) bool {
		m := dates.MonthsBetween(now, l.MaturityDate)
		return m > 0 && m <= 6
	}) {
		adjustments += 10
	}
	if anyLoan(loans, func(l *domainLoan.Loan) bool {
		return dates.MonthsBetween(now, l.MaturityDate) > 120
	}) {
		adjustments -= 10
	}

	return round2(clamp(base + adjustments)), nil
}

// PaymentStatistics is a pure read-side projection of payment counts.
func (e *Engine) PaymentStatistics(ctx context.Context, userID string) (domainMetrics.PaymentStatistics, error) {
	var stats domainMetrics.PaymentStatistics
	payments, err := e.payments.ListByUser(ctx, userID)
	if err != nil {
		return stats, err
	}
	if len(payments) == 0 {
		return stats, nil
	}
	var onTime int
	for _, p := range payments {
		switch p.Status {
		case domainPayment.StatusOnTime:
			onTime++
		case domainPayment.StatusLate:
			stats.LateCount++
		case domainPayment.StatusMissed:
			stats.MissedCount++
		}
	}
	stats.TotalPayments = len(payments)
	stats.OnTimePercentage = round2(float64(onTime) / float64(len(payments)) * 100)
	return stats, nil
}

// LoanStatistics is a pure read-side projection over active loans.
func (e *Engine) LoanStatistics(ctx context.Context, userID string) (domainMetrics.LoanStatistics, error) {
	stats := domainMetrics.LoanStatistics{TypeDistribution: map[string]float64{}}
	loans, err := e.loans.ListByUser(ctx, userID, false)
	if err != nil {
		return stats, err
	}
	if len(loans) == 0 {
		return stats, nil
	}

	typeAmounts := map[string]float64{}
	var totalAmount, totalTenure, weighted float64
	for _, l := range loans {
		totalAmount += l.Amount
		totalTenure += float64(l.TenureMonths)
		weighted += l.Amount * float64(l.TenureMonths)
		typeAmounts[string(l.Type)] += l.Amount
	}
	stats.TotalActiveLoans = len(loans)
	stats.TotalLoanAmount = round2(totalAmount)
	stats.AverageTenure = round2(totalTenure / float64(len(loans)))
	stats.WeightedAverageTenure = round2(weighted / totalAmount)
	for typ, amount := range typeAmounts {
		stats.TypeDistribution[typ] = round2(amount / totalAmount * 100)
	}
	return stats, nil
}

// Compute evaluates all three scores plus statistics and writes the result
// through to the snapshot cache when one is configured.
func (e *Engine) Compute(ctx context.Context, userID string) (*SnapshotDTO, error) {
	diversity, err := e.DiversityScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := e.PaymentHistoryScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	maturity, err := e.MaturityScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	paymentStats, err := e.PaymentStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	loanStats, err := e.LoanStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := &SnapshotDTO{
		UserID:              userID,
		DiversityScore:      diversity,
		PaymentHistoryScore: history,
		MaturityScore:       maturity,
		PaymentStats:        paymentStats,
		LoanStats:           loanStats,
		CalculatedAt:        e.now().UTC(),
	}

	if e.snapshots != nil {
		snap := &domainMetrics.Snapshot{
			UserID:              userID,
			DiversityScore:      diversity,
			PaymentHistoryScore: history,
			MaturityScore:       maturity,
			PaymentStats:        paymentStats,
			LoanStats:           loanStats,
			CalculatedAt:        dto.CalculatedAt,
		}
		if err := e.snapshots.Upsert(ctx, snap); err != nil {
			// Cache only; losing a write never fails the computation.
			log.Printf("metrics: snapshot cache write failed for user %s: %v", userID, err)
		}
	}
	return dto, nil
}

func anyLoan(loans []domainLoan.Loan, pred func(*domainLoan.Loan) bool) bool {
	for i := range loans {
		if pred(&loans[i]) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 { return math.Max(0, math.Min(100, v)) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
