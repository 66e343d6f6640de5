package mysql

import (
	"context"
	"testing"
	"time"

	scoreDomain "smartfin-backend/internal/domain/score"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openScoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&scoreDomain.HistoryEntry{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeEntry(userID string, overall float64, when time.Time) *scoreDomain.HistoryEntry {
	return &scoreDomain.HistoryEntry{
		UserID:       userID,
		SavingsScore: 100,
		DebtScore:    100,
		OverallScore: overall,
		CalculatedAt: when.UTC(),
	}
}

func TestScoreHistory_AppendAndList(t *testing.T) {
	db := openScoreTestDB(t)
	repo := NewScoreHistoryRepository(db)
	ctx := context.Background()

	const user = "11111111111111111111111111111111"
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i, overall := range []float64{85.1, 88.4, 91.3} {
		if err := repo.Append(ctx, makeEntry(user, overall, base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := repo.Append(ctx, makeEntry("22222222222222222222222222222222", 50, base)); err != nil {
		t.Fatalf("Append other user: %v", err)
	}

	got, err := repo.ListByUser(ctx, user, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 entries, got %d", len(got))
	}
	// newest first
	if got[0].OverallScore != 91.3 || got[2].OverallScore != 85.1 {
		t.Errorf("ordering: %+v", got)
	}
	if got[0].SavingsScore != 100 {
		t.Errorf("sub-scores not persisted: %+v", got[0])
	}
}

func TestScoreHistory_LimitApplies(t *testing.T) {
	db := openScoreTestDB(t)
	repo := NewScoreHistoryRepository(db)
	ctx := context.Background()

	const user = "11111111111111111111111111111111"
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := repo.Append(ctx, makeEntry(user, float64(80+i), base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := repo.ListByUser(ctx, user, 2)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 || got[0].OverallScore != 84 {
		t.Fatalf("limit not applied newest-first: %+v", got)
	}
}

func TestScoreHistory_EmptyUser(t *testing.T) {
	db := openScoreTestDB(t)
	repo := NewScoreHistoryRepository(db)

	got, err := repo.ListByUser(context.Background(), "ffffffffffffffffffffffffffffffff", 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want no entries, got %+v", got)
	}
}
