package score

import "time"

// FinancialData carries the caller-supplied income/expense figures the five
// baseline factors are computed from. Monthly amounts; Age in years (unset
// defaults to 30).
type FinancialData struct {
	Income   float64 `json:"income" validate:"gte=0"`
	Rent     float64 `json:"rent" validate:"gte=0"`
	Food     float64 `json:"food" validate:"gte=0"`
	Travel   float64 `json:"travel" validate:"gte=0"`
	Shopping float64 `json:"shopping" validate:"gte=0"`
	EMI      float64 `json:"emi" validate:"gte=0"`
	Savings  float64 `json:"savings" validate:"gte=0"`
	Age      int     `json:"age" validate:"gte=0,lte=150"`
}

// Features is the input to the opaque baseline regression model.
type Features struct {
	Income   float64 `json:"income" validate:"gte=0"`
	Rent     float64 `json:"rent" validate:"gte=0"`
	Food     float64 `json:"food" validate:"gte=0"`
	Travel   float64 `json:"travel" validate:"gte=0"`
	Shopping float64 `json:"shopping" validate:"gte=0"`
	EMI      float64 `json:"emi" validate:"gte=0"`
	Savings  float64 `json:"savings" validate:"gte=0"`
}

type Result struct {
	OverallScore        float64   `json:"overall_score"`
	SavingsScore        float64   `json:"savings_score"`
	DebtScore           float64   `json:"debt_score"`
	ExpenseScore        float64   `json:"expense_score"`
	BalanceScore        float64   `json:"balance_score"`
	LifeStageScore      float64   `json:"life_stage_score"`
	LoanDiversityScore  float64   `json:"loan_diversity_score"`
	PaymentHistoryScore float64   `json:"payment_history_score"`
	LoanMaturityScore   float64   `json:"loan_maturity_score"`
	CalculatedAt        time.Time `json:"calculated_at"`
}

type Factor struct {
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type Breakdown struct {
	OverallScore float64  `json:"overall_score"`
	Factors      []Factor `json:"factors"`
}

type Delta struct {
	ScoreWithLoans    float64 `json:"score_with_loans"`
	ScoreWithoutLoans float64 `json:"score_without_loans"`
	Delta             float64 `json:"delta"`
	PercentageChange  float64 `json:"percentage_change"`
}

type HistoryDTO struct {
	Score        float64       `json:"score"`
	CalculatedAt time.Time     `json:"calculated_at"`
	Factors      []FactorScore `json:"factors"`
}

type FactorScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
