package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "smartfin-backend/internal/domain/loan"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no enums/engine specifics) ---
type loanSQLite struct {
	ID            uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	LoanID        string         `gorm:"size:32;uniqueIndex;column:loan_id"`
	UserID        string         `gorm:"size:32;column:user_id"`
	Type          string         `gorm:"column:loan_type"`
	Amount        float64        `gorm:"column:loan_amount"`
	TenureMonths  int            `gorm:"column:loan_tenure"`
	MonthlyEMI    float64        `gorm:"column:monthly_emi"`
	InterestRate  float64        `gorm:"column:interest_rate"`
	StartDate     time.Time      `gorm:"column:loan_start_date"`
	MaturityDate  time.Time      `gorm:"column:loan_maturity_date"`
	DefaultStatus bool           `gorm:"column:default_status"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

// openLoanTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openLoanTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// IMPORTANT: migrate the sqlite-safe model, NOT the domain model.
	if err := db.AutoMigrate(&loanSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, userID string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:       loanID,
		UserID:       userID,
		Type:         loanDomain.TypePersonal,
		Amount:       250_000.00,
		TenureMonths: 36,
		MonthlyEMI:   8_303.86,
		InterestRate: 12.0,
		StartDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		MaturityDate: time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestLoan_CreateAndGet(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	in := makeLoan("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "11111111111111111111111111111111")
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if in.ID == 0 {
		t.Fatal("numeric id not assigned on insert")
	}

	got, err := repo.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.UserID != in.UserID || got.Type != loanDomain.TypePersonal || got.Amount != in.Amount {
		t.Errorf("unexpected row: %+v", got)
	}
	if got.TenureMonths != 36 || got.MonthlyEMI != in.MonthlyEMI || got.InterestRate != 12.0 {
		t.Errorf("terms not preserved: %+v", got)
	}
	if !got.StartDate.Equal(in.StartDate) || !got.MaturityDate.Equal(in.MaturityDate) {
		t.Errorf("dates not preserved as UTC: %+v", got)
	}
	if got.DefaultStatus || got.Deleted() {
		t.Errorf("fresh loan flagged: %+v", got)
	}
}

func TestLoan_NotFound(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanID(context.Background(), "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestLoan_SaveUpdatesTerms(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	in := makeLoan("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "11111111111111111111111111111111")
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	in.DefaultStatus = true
	in.Amount = 300_000
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if !got.DefaultStatus || got.Amount != 300_000 {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestLoan_SoftDeleteVisibility(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	const user = "11111111111111111111111111111111"
	kept := makeLoan("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", user)
	gone := makeLoan("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", user)
	for _, l := range []*loanDomain.Loan{kept, gone} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.SoftDelete(ctx, gone); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	active, err := repo.ListByUser(ctx, user, false)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(active) != 1 || active[0].LoanID != kept.LoanID {
		t.Errorf("active list: %+v", active)
	}

	all, err := repo.ListByUser(ctx, user, true)
	if err != nil {
		t.Fatalf("ListByUser include_deleted: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("full list: %+v", all)
	}

	// the record stays reachable by id so callers can distinguish
	// "deleted" from "never existed"
	got, err := repo.GetByLoanID(ctx, gone.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID after delete: %v", err)
	}
	if !got.Deleted() {
		t.Errorf("deleted_at not set: %+v", got)
	}
}

func TestLoan_ListByUser_ScopedToUser(t *testing.T) {
	db := openLoanTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	mine := makeLoan("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "11111111111111111111111111111111")
	theirs := makeLoan("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "22222222222222222222222222222222")
	for _, l := range []*loanDomain.Loan{mine, theirs} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByUser(ctx, "11111111111111111111111111111111", false)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 || got[0].LoanID != mine.LoanID {
		t.Errorf("list crossed users: %+v", got)
	}
}
