package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"smartfin-backend/internal/domain/loan"
	"smartfin-backend/internal/domain/validation"
	"smartfin-backend/pkg/dates"
	"smartfin-backend/pkg/id"

	"gorm.io/gorm"
)

// emiTolerance: the stated EMI may differ from the amortization formula by
// at most 1% of the expected value.
const emiTolerance = 0.01

type Usecase struct{ loans loan.Repository }

func NewUsecase(r loan.Repository) *Usecase { return &Usecase{loans: r} }

// ExpectedEMI computes the level monthly installment for a principal,
// annual interest rate in percent, and tenure in months. Zero-rate loans
// amortize linearly.
func ExpectedEMI(principal, ratePct float64, months int) float64 {
	if ratePct <= 0 {
		return principal / float64(months)
	}
	r := ratePct / 100 / 12
	pow := math.Pow(1+r, float64(months))
	return principal * r * pow / (pow - 1)
}

// Validate checks loan data against the business rules. Required-field
// failures short-circuit before any range or EMI math runs.
func (u *Usecase) Validate(in LoanInput) ValidationResult {
	errs := validation.Errors{}

	required := []struct {
		name string
		ok   bool
	}{
		{"loan_type", in.Type != nil},
		{"loan_amount", in.Amount != nil},
		{"loan_tenure", in.TenureMonths != nil},
		{"monthly_emi", in.MonthlyEMI != nil},
		{"interest_rate", in.InterestRate != nil},
		{"loan_start_date", in.StartDate != nil},
		{"loan_maturity_date", in.MaturityDate != nil},
	}
	for _, f := range required {
		if !f.ok {
			errs = append(errs, validation.Error{
				Field:   f.name,
				Message: f.name + " is required",
				Code:    validation.CodeRequiredField,
			})
		}
	}
	if len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs}
	}

	if !loan.Type(*in.Type).Valid() {
		names := make([]string, 0, 4)
		for _, t := range loan.Types() {
			names = append(names, string(t))
		}
		errs = append(errs, validation.Error{
			Field:   "loan_type",
			Message: "Loan type must be one of: " + strings.Join(names, ", "),
			Code:    validation.CodeInvalidLoanType,
		})
	}
	if *in.Amount <= 0 {
		errs = append(errs, validation.Error{
			Field:   "loan_amount",
			Message: "Loan amount must be positive",
			Code:    validation.CodeInvalidAmount,
		})
	}
	if *in.TenureMonths <= 0 {
		errs = append(errs, validation.Error{
			Field:   "loan_tenure",
			Message: "Loan tenure must be positive",
			Code:    validation.CodeInvalidTenure,
		})
	}
	if *in.InterestRate < 0 || *in.InterestRate > 50 {
		errs = append(errs, validation.Error{
			Field:   "interest_rate",
			Message: "Interest rate must be between 0 and 50 percent",
			Code:    validation.CodeInvalidInterestRate,
		})
	}
	if *in.MonthlyEMI <= 0 {
		errs = append(errs, validation.Error{
			Field:   "monthly_emi",
			Message: "Monthly EMI must be positive",
			Code:    validation.CodeInvalidEMI,
		})
	}

	start, startErr := dates.Parse(*in.StartDate)
	maturity, maturityErr := dates.Parse(*in.MaturityDate)
	switch {
	case startErr != nil || maturityErr != nil:
		errs = append(errs, validation.Error{
			Field:   "loan_start_date",
			Message: "Invalid date format. Use ISO 8601 format",
			Code:    validation.CodeInvalidDateFormat,
		})
	case !maturity.After(start):
		errs = append(errs, validation.Error{
			Field:   "loan_maturity_date",
			Message: "Loan maturity date must be after loan start date",
			Code:    validation.CodeInvalidDateRange,
		})
	}

	// EMI consistency runs only on otherwise-clean input so the formula
	// never sees out-of-range values.
	if len(errs) == 0 {
		expected := ExpectedEMI(*in.Amount, *in.InterestRate, *in.TenureMonths)
		if math.Abs(*in.MonthlyEMI-expected) > emiTolerance*expected {
			errs = append(errs, validation.Error{
				Field:   "monthly_emi",
				Message: fmt.Sprintf("Monthly EMI does not match loan parameters (expected: %.2f)", expected),
				Code:    validation.CodeEMIMismatch,
			})
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func (u *Usecase) Create(ctx context.Context, userID string, in LoanInput) (*LoanDTO, error) {
	res := u.Validate(in)
	if !res.Valid {
		log.Printf("ledger: loan validation failed for user %s: %s", userID, res.Errors[0].Message)
		return nil, validation.Errors(res.Errors)
	}

	start, _ := dates.Parse(*in.StartDate)
	maturity, _ := dates.Parse(*in.MaturityDate)
	l := &loan.Loan{
		LoanID:       id.NewID32(),
		UserID:       userID,
		Type:         loan.Type(*in.Type),
		Amount:       *in.Amount,
		TenureMonths: *in.TenureMonths,
		MonthlyEMI:   *in.MonthlyEMI,
		InterestRate: *in.InterestRate,
		StartDate:    start,
		MaturityDate: maturity,
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	log.Printf("ledger: loan created %s for user %s", l.LoanID, userID)
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListByUser(ctx context.Context, userID string, includeDeleted bool) ([]LoanDTO, error) {
	ls, err := u.loans.ListByUser(ctx, userID, includeDeleted)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out, nil
}

// Update patches an owned, active loan. Touching any of amount, tenure, EMI
// or rate re-validates the merged record before writing.
func (u *Usecase) Update(ctx context.Context, loanID, userID string, patch LoanInput) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	if l.UserID != userID {
		log.Printf("ledger: user %s attempted to update loan %s owned by %s", userID, loanID, l.UserID)
		return nil, loan.ErrNotOwned
	}
	if l.Deleted() {
		return nil, loan.ErrDeleted
	}
	if l.DefaultStatus {
		return nil, loan.ErrDefaulted
	}

	if patch.Amount != nil || patch.TenureMonths != nil || patch.MonthlyEMI != nil || patch.InterestRate != nil {
		merged := mergeInput(l, patch)
		if res := u.Validate(merged); !res.Valid {
			log.Printf("ledger: loan update validation failed for %s: %s", loanID, res.Errors[0].Message)
			return nil, validation.Errors(res.Errors)
		}
	}

	if err := applyPatch(l, patch); err != nil {
		return nil, err
	}
	l.UpdatedAt = time.Now().UTC()
	if err := u.loans.Save(ctx, l); err != nil {
		return nil, err
	}
	log.Printf("ledger: loan updated %s", loanID)
	return toDTO(l), nil
}

// SoftDelete marks the loan deleted, leaving its payments attached. Returns
// false when the loan does not exist.
func (u *Usecase) SoftDelete(ctx context.Context, loanID, userID string) (bool, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if l.UserID != userID {
		log.Printf("ledger: user %s attempted to delete loan %s owned by %s", userID, loanID, l.UserID)
		return false, loan.ErrNotOwned
	}
	if l.Deleted() {
		return true, nil
	}
	if err := u.loans.SoftDelete(ctx, l); err != nil {
		return false, err
	}
	log.Printf("ledger: loan deleted %s", loanID)
	return true, nil
}

// mergeInput overlays a patch on the stored record, yielding a complete
// input for re-validation.
func mergeInput(l *loan.Loan, patch LoanInput) LoanInput {
	typ := string(l.Type)
	amount := l.Amount
	tenure := l.TenureMonths
	emi := l.MonthlyEMI
	rate := l.InterestRate
	start := l.StartDate.Format(time.RFC3339)
	maturity := l.MaturityDate.Format(time.RFC3339)

	merged := LoanInput{
		Type: &typ, Amount: &amount, TenureMonths: &tenure,
		MonthlyEMI: &emi, InterestRate: &rate,
		StartDate: &start, MaturityDate: &maturity,
	}
	if patch.Type != nil {
		merged.Type = patch.Type
	}
	if patch.Amount != nil {
		merged.Amount = patch.Amount
	}
	if patch.TenureMonths != nil {
		merged.TenureMonths = patch.TenureMonths
	}
	if patch.MonthlyEMI != nil {
		merged.MonthlyEMI = patch.MonthlyEMI
	}
	if patch.InterestRate != nil {
		merged.InterestRate = patch.InterestRate
	}
	if patch.StartDate != nil {
		merged.StartDate = patch.StartDate
	}
	if patch.MaturityDate != nil {
		merged.MaturityDate = patch.MaturityDate
	}
	return merged
}

func applyPatch(l *loan.Loan, patch LoanInput) error {
	if patch.Type != nil {
		l.Type = loan.Type(*patch.Type)
	}
	if patch.Amount != nil {
		l.Amount = *patch.Amount
	}
	if patch.TenureMonths != nil {
		l.TenureMonths = *patch.TenureMonths
	}
	if patch.MonthlyEMI != nil {
		l.MonthlyEMI = *patch.MonthlyEMI
	}
	if patch.InterestRate != nil {
		l.InterestRate = *patch.InterestRate
	}
	if patch.StartDate != nil {
		t, err := dates.Parse(*patch.StartDate)
		if err != nil {
			return validation.Errors{{Field: "loan_start_date", Message: "Invalid date format. Use ISO 8601 format", Code: validation.CodeInvalidDateFormat}}
		}
		l.StartDate = t
	}
	if patch.MaturityDate != nil {
		t, err := dates.Parse(*patch.MaturityDate)
		if err != nil {
			return validation.Errors{{Field: "loan_maturity_date", Message: "Invalid date format. Use ISO 8601 format", Code: validation.CodeInvalidDateFormat}}
		}
		l.MaturityDate = t
	}
	if patch.DefaultStatus != nil {
		l.DefaultStatus = *patch.DefaultStatus
	}
	return nil
}

func toDTO(l *loan.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:        l.LoanID,
		UserID:        l.UserID,
		Type:          string(l.Type),
		Amount:        l.Amount,
		TenureMonths:  l.TenureMonths,
		MonthlyEMI:    l.MonthlyEMI,
		InterestRate:  l.InterestRate,
		StartDate:     l.StartDate,
		MaturityDate:  l.MaturityDate,
		DefaultStatus: l.DefaultStatus,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if l.DeletedAt.Valid {
		t := l.DeletedAt.Time
		dto.DeletedAt = &t
	}
	return dto
}
