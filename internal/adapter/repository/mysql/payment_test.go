package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "smartfin-backend/internal/domain/loan"
	paymentDomain "smartfin-backend/internal/domain/payment"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no enums/engine specifics) ---
type paymentSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	PaymentID string    `gorm:"size:32;uniqueIndex;column:payment_id"`
	LoanID    uint64    `gorm:"column:loan_id"`
	Date      time.Time `gorm:"column:payment_date"`
	Amount    float64   `gorm:"column:payment_amount"`
	Status    string    `gorm:"column:payment_status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (paymentSQLite) TableName() string { return "loan_payments" }

// openPaymentTestDB migrates both tables; the payment repo joins loans.
func openPaymentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &paymentSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makePayment(paymentID string, loanRef uint64, when time.Time, amount float64, status paymentDomain.Status) *paymentDomain.Payment {
	return &paymentDomain.Payment{
		PaymentID: paymentID,
		LoanID:    loanRef,
		Date:      when.UTC(),
		Amount:    amount,
		Status:    status,
	}
}

func TestPayment_CreateAndGet(t *testing.T) {
	db := openPaymentTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	when := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	in := makePayment("cccccccccccccccccccccccccccccccc", 7, when, 1_000, paymentDomain.StatusOnTime)
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByPaymentID(ctx, in.PaymentID)
	if err != nil {
		t.Fatalf("GetByPaymentID: %v", err)
	}
	if got.LoanID != 7 || got.Amount != 1_000 || got.Status != paymentDomain.StatusOnTime {
		t.Errorf("unexpected row: %+v", got)
	}
	if !got.Date.Equal(when) {
		t.Errorf("payment_date not preserved as UTC: got=%v want=%v", got.Date, when)
	}
}

func TestPayment_NotFound(t *testing.T) {
	db := openPaymentTestDB(t)
	repo := NewPaymentRepository(db)

	_, err := repo.GetByPaymentID(context.Background(), "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestPayment_ListByLoan_OrderedByDate(t *testing.T) {
	db := openPaymentTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	// inserted out of order on purpose
	for _, p := range []*paymentDomain.Payment{
		makePayment("c2222222222222222222222222222222", 7, base.AddDate(0, 0, 35), 1_000, paymentDomain.StatusLate),
		makePayment("c1111111111111111111111111111111", 7, base, 1_000, paymentDomain.StatusOnTime),
		makePayment("c3333333333333333333333333333333", 7, base.AddDate(0, 2, 0), 1_000, paymentDomain.StatusOnTime),
		makePayment("c9999999999999999999999999999999", 8, base, 500, paymentDomain.StatusOnTime),
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByLoan(ctx, 7)
	if err != nil {
		t.Fatalf("ListByLoan: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 payments on loan 7, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.Before(got[i-1].Date) {
			t.Fatalf("payments not ascending by date: %+v", got)
		}
	}
}

func TestPayment_ListByUser_SkipsDeletedLoans(t *testing.T) {
	db := openPaymentTestDB(t)
	loanRepo := NewLoanRepository(db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	const user = "11111111111111111111111111111111"
	kept := makeLoan("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", user)
	gone := makeLoan("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", user)
	other := makeLoan("dddddddddddddddddddddddddddddddd", "22222222222222222222222222222222")
	for _, l := range []*loanDomain.Loan{kept, gone, other} {
		if err := loanRepo.Create(ctx, l); err != nil {
			t.Fatalf("Create loan: %v", err)
		}
	}

	when := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	for i, ref := range []uint64{kept.ID, gone.ID, other.ID} {
		p := makePayment(
			string(rune('a'+i))+"2222222222222222222222222222222",
			ref, when, 1_000, paymentDomain.StatusOnTime,
		)
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create payment: %v", err)
		}
	}

	if err := loanRepo.SoftDelete(ctx, gone); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	got, err := repo.ListByUser(ctx, user)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 || got[0].LoanID != kept.ID {
		t.Fatalf("want only the active loan's payment, got %+v", got)
	}
}

func TestPayment_Delete(t *testing.T) {
	db := openPaymentTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	in := makePayment("cccccccccccccccccccccccccccccccc", 7, time.Now().UTC(), 1_000, paymentDomain.StatusOnTime)
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, in); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByPaymentID(ctx, in.PaymentID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("payment survived delete: %v", err)
	}
}
