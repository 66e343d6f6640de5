package mysql

import (
	"context"

	scoreDomain "smartfin-backend/internal/domain/score"

	"gorm.io/gorm"
)

type ScoreHistoryRepository struct{ db *gorm.DB }

func NewScoreHistoryRepository(db *gorm.DB) *ScoreHistoryRepository {
	return &ScoreHistoryRepository{db: db}
}

func (r *ScoreHistoryRepository) Append(ctx context.Context, e *scoreDomain.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ScoreHistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]scoreDomain.HistoryEntry, error) {
	var out []scoreDomain.HistoryEntry
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("calculated_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

var _ scoreDomain.HistoryRepository = (*ScoreHistoryRepository)(nil)
