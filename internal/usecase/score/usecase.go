package score

import (
	"context"
	"log"
	"math"
	"time"

	domainScore "smartfin-backend/internal/domain/score"
)

// Factor weights for the 8-factor model. Must sum to exactly 1.0.
const (
	WeightSavings        = 0.25
	WeightDebt           = 0.20
	WeightExpense        = 0.18
	WeightBalance        = 0.12
	WeightLifeStage      = 0.08
	WeightLoanDiversity  = 0.10
	WeightPaymentHistory = 0.05
	WeightLoanMaturity   = 0.02
)

// Defaults substituted when the metrics engine fails or when scoring a user
// as if they had no loan history.
const (
	DefaultLoanDiversity  = 50.0
	DefaultPaymentHistory = 70.0
	DefaultLoanMaturity   = 50.0
)

// MetricsProvider is the slice of the loan metrics engine the scorer needs.
type MetricsProvider interface {
	DiversityScore(ctx context.Context, userID string) (float64, error)
	PaymentHistoryScore(ctx context.Context, userID string) (float64, error)
	MaturityScore(ctx context.Context, userID string) (float64, error)
}

// Predictor is the opaque baseline regression; the scorer never inspects
// its internals.
type Predictor interface {
	Predict(ctx context.Context, f Features) (float64, error)
}

type Usecase struct {
	engine    MetricsProvider
	history   domainScore.HistoryRepository // optional
	predictor Predictor                     // optional

	now func() time.Time
}

func NewUsecase(engine MetricsProvider, history domainScore.HistoryRepository, predictor Predictor) *Usecase {
	return &Usecase{engine: engine, history: history, predictor: predictor, now: time.Now}
}

func savingsScore(fd FinancialData) float64 {
	if fd.Income <= 0 {
		return 0
	}
	switch ratio := fd.Savings / fd.Income; {
	case ratio >= 0.30:
		return 100
	case ratio >= 0.20:
		return 85
	case ratio >= 0.15:
		return 70
	case ratio >= 0.10:
		return 55
	case ratio >= 0.05:
		return 40
	default:
		return 20
	}
}

func debtScore(fd FinancialData) float64 {
	if fd.Income <= 0 {
		return 0
	}
	switch ratio := fd.EMI / fd.Income; {
	case ratio == 0:
		return 100
	case ratio <= 0.20:
		return 85
	case ratio <= 0.30:
		return 70
	case ratio <= 0.40:
		return 50
	case ratio <= 0.50:
		return 30
	default:
		return 10
	}
}

func totalExpenses(fd FinancialData) float64 {
	return fd.Rent + fd.Food + fd.Travel + fd.Shopping + fd.EMI
}

func expenseScore(fd FinancialData) float64 {
	if fd.Income <= 0 {
		return 0
	}
	switch ratio := totalExpenses(fd) / fd.Income; {
	case ratio <= 0.50:
		return 100
	case ratio <= 0.60:
		return 85
	case ratio <= 0.70:
		return 70
	case ratio <= 0.80:
		return 50
	case ratio <= 0.90:
		return 30
	default:
		return 10
	}
}

func balanceScore(fd FinancialData) float64 {
	if fd.Income <= 0 {
		return 0
	}
	balance := fd.Income - totalExpenses(fd) - fd.Savings
	switch {
	case balance >= 0 && fd.Savings > 0:
		return 100
	case balance >= 0:
		return 70
	case balance >= -fd.Income*0.10:
		return 50
	default:
		return 20
	}
}

func lifeStageScore(fd FinancialData) float64 {
	age := fd.Age
	if age == 0 {
		age = 30
	}
	switch {
	case age < 25:
		return 75
	case age < 35:
		return 85
	case age < 50:
		return 80
	case age < 60:
		return 75
	default:
		return 70
	}
}

// loanFactors asks the metrics engine for the three loan sub-scores,
// substituting fixed defaults on any failure. Fail-soft: one user's
// malformed loan history must never block their overall score.
func (u *Usecase) loanFactors(ctx context.Context, userID string) (diversity, history, maturity float64) {
	diversity, err := u.engine.DiversityScore(ctx, userID)
	if err == nil {
		history, err = u.engine.PaymentHistoryScore(ctx, userID)
	}
	if err == nil {
		maturity, err = u.engine.MaturityScore(ctx, userID)
	}
	if err != nil {
		log.Printf("score: loan metrics unavailable for user %s, using defaults: %v", userID, err)
		return DefaultLoanDiversity, DefaultPaymentHistory, DefaultLoanMaturity
	}
	return diversity, history, maturity
}

func overall(savings, debt, expense, balance, lifeStage, diversity, history, maturity float64) float64 {
	sum := savings*WeightSavings +
		debt*WeightDebt +
		expense*WeightExpense +
		balance*WeightBalance +
		lifeStage*WeightLifeStage +
		diversity*WeightLoanDiversity +
		history*WeightPaymentHistory +
		maturity*WeightLoanMaturity
	return math.Max(0, math.Min(100, round2(sum)))
}

// Compute evaluates the 8-factor financial health score and appends the
// result to the score history when one is configured.
func (u *Usecase) Compute(ctx context.Context, userID string, fd FinancialData) (*Result, error) {
	diversity, history, maturity := u.loanFactors(ctx, userID)
	return u.compute(ctx, userID, fd, diversity, history, maturity, true)
}

func (u *Usecase) compute(ctx context.Context, userID string, fd FinancialData, diversity, history, maturity float64, persist bool) (*Result, error) {
	res := &Result{
		SavingsScore:        round2(savingsScore(fd)),
		DebtScore:           round2(debtScore(fd)),
		ExpenseScore:        round2(expenseScore(fd)),
		BalanceScore:        round2(balanceScore(fd)),
		LifeStageScore:      round2(lifeStageScore(fd)),
		LoanDiversityScore:  round2(diversity),
		PaymentHistoryScore: round2(history),
		LoanMaturityScore:   round2(maturity),
		CalculatedAt:        u.now().UTC(),
	}
	res.OverallScore = overall(
		res.SavingsScore, res.DebtScore, res.ExpenseScore, res.BalanceScore,
		res.LifeStageScore, res.LoanDiversityScore, res.PaymentHistoryScore, res.LoanMaturityScore,
	)

	if persist && u.history != nil {
		entry := &domainScore.HistoryEntry{
			UserID:              userID,
			SavingsScore:        res.SavingsScore,
			DebtScore:           res.DebtScore,
			ExpenseScore:        res.ExpenseScore,
			BalanceScore:        res.BalanceScore,
			LifeStageScore:      res.LifeStageScore,
			LoanDiversityScore:  res.LoanDiversityScore,
			PaymentHistoryScore: res.PaymentHistoryScore,
			LoanMaturityScore:   res.LoanMaturityScore,
			OverallScore:        res.OverallScore,
			CalculatedAt:        res.CalculatedAt,
		}
		if err := u.history.Append(ctx, entry); err != nil {
			// History is informational; never fail the score over it.
			log.Printf("score: history append failed for user %s: %v", userID, err)
		}
	}
	return res, nil
}

// Breakdown reports each factor's score, weight and weighted contribution.
func (u *Usecase) Breakdown(ctx context.Context, userID string, fd FinancialData) (*Breakdown, error) {
	res, err := u.Compute(ctx, userID, fd)
	if err != nil {
		return nil, err
	}
	factors := []Factor{
		{Name: "Savings", Score: res.SavingsScore, Weight: WeightSavings},
		{Name: "Debt Management", Score: res.DebtScore, Weight: WeightDebt},
		{Name: "Expense Control", Score: res.ExpenseScore, Weight: WeightExpense},
		{Name: "Balance", Score: res.BalanceScore, Weight: WeightBalance},
		{Name: "Life Stage", Score: res.LifeStageScore, Weight: WeightLifeStage},
		{Name: "Loan Diversity", Score: res.LoanDiversityScore, Weight: WeightLoanDiversity},
		{Name: "Payment History", Score: res.PaymentHistoryScore, Weight: WeightPaymentHistory},
		{Name: "Loan Maturity", Score: res.LoanMaturityScore, Weight: WeightLoanMaturity},
	}
	for i := range factors {
		factors[i].Contribution = round2(factors[i].Score * factors[i].Weight)
	}
	return &Breakdown{OverallScore: res.OverallScore, Factors: factors}, nil
}

// Delta compares the score with the user's real loan metrics against the
// same aggregation forced to the no-loan defaults.
func (u *Usecase) Delta(ctx context.Context, userID string, fd FinancialData) (*Delta, error) {
	diversity, history, maturity := u.loanFactors(ctx, userID)
	with, err := u.compute(ctx, userID, fd, diversity, history, maturity, false)
	if err != nil {
		return nil, err
	}
	without, err := u.compute(ctx, userID, fd, DefaultLoanDiversity, DefaultPaymentHistory, DefaultLoanMaturity, false)
	if err != nil {
		return nil, err
	}

	delta := round2(with.OverallScore - without.OverallScore)
	var pct float64
	if without.OverallScore > 0 {
		pct = round2(delta / without.OverallScore * 100)
	}
	return &Delta{
		ScoreWithLoans:    with.OverallScore,
		ScoreWithoutLoans: without.OverallScore,
		Delta:             delta,
		PercentageChange:  pct,
	}, nil
}

// History returns up to limit past results, newest first.
func (u *Usecase) History(ctx context.Context, userID string, limit int) ([]HistoryDTO, error) {
	if u.history == nil {
		return []HistoryDTO{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	entries, err := u.history.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryDTO{
			Score:        e.OverallScore,
			CalculatedAt: e.CalculatedAt,
			Factors: []FactorScore{
				{Name: "Savings", Score: e.SavingsScore},
				{Name: "Debt Management", Score: e.DebtScore},
				{Name: "Expense Control", Score: e.ExpenseScore},
				{Name: "Balance", Score: e.BalanceScore},
				{Name: "Life Stage", Score: e.LifeStageScore},
				{Name: "Loan Diversity", Score: e.LoanDiversityScore},
				{Name: "Payment History", Score: e.PaymentHistoryScore},
				{Name: "Loan Maturity", Score: e.LoanMaturityScore},
			},
		})
	}
	return out, nil
}

// PredictBaseline proxies the external regression model, clamping its
// output to [0,100].
func (u *Usecase) PredictBaseline(ctx context.Context, f Features) (float64, error) {
	raw, err := u.predictor.Predict(ctx, f)
	if err != nil {
		return 0, err
	}
	return math.Max(0, math.Min(100, round2(raw))), nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
