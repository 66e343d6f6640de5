package mysql

import (
	"context"

	metricsDomain "smartfin-backend/internal/domain/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetricsRepository struct{ db *gorm.DB }

func NewMetricsRepository(db *gorm.DB) *MetricsRepository { return &MetricsRepository{db: db} }

// Upsert replaces the user's cached snapshot; one row per user.
func (r *MetricsRepository) Upsert(ctx context.Context, s *metricsDomain.Snapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(s).Error
}

var _ metricsDomain.SnapshotRepository = (*MetricsRepository)(nil)
