package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/persistence/models"
)

const maxHistoryLimit = 200

// GormExportRecordRepository implements report.ExportRecordRepository
type GormExportRecordRepository struct {
	db *gorm.DB
}

// NewGormExportRecordRepository creates the repository
func NewGormExportRecordRepository(db *gorm.DB) *GormExportRecordRepository {
	return &GormExportRecordRepository{db: db}
}

// Save inserts a record
func (r *GormExportRecordRepository) Save(ctx context.Context, record *report.ExportRecord) error {
	model, err := models.ExportRecordModelFromDomain(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save export record: %w", err)
	}
	return nil
}

// ListByUser returns the newest records of a user. limit is clamped to
// 1..200.
func (r *GormExportRecordRepository) ListByUser(ctx context.Context, userID string, limit int) ([]report.ExportRecord, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var rows []models.ExportRecordModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list export records: %w", err)
	}

	records := make([]report.ExportRecord, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

var _ report.ExportRecordRepository = (*GormExportRecordRepository)(nil)
