package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"neolink/internal/models"
)

type ApproachRepository interface {
	ReplaceSnapshot(ctx context.Context, snapshot uuid.UUID, records []models.ApproachRecord) error
	GetByDesignation(ctx context.Context, designation string, limit int) ([]models.ApproachRecord, error)
	Count(ctx context.Context) (int64, error)
}

type approachRepository struct {
	db *gorm.DB
}

func NewApproachRepository(db *gorm.DB) ApproachRepository {
	return &approachRepository{db: db}
}

// ReplaceSnapshot swaps every stored approach for records in one transaction.
func (r *approachRepository) ReplaceSnapshot(ctx context.Context, snapshot uuid.UUID, records []models.ApproachRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("snapshot_id <> ?", snapshot).Delete(&models.ApproachRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 1000).Error
	})
}

func (r *approachRepository) GetByDesignation(ctx context.Context, designation string, limit int) ([]models.ApproachRecord, error) {
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	var records []models.ApproachRecord
	err := r.db.WithContext(ctx).
		Where("designation = ?", designation).
		Order("approach_at ASC").
		Limit(limit).
		Find(&records).
		Error
	return records, err
}

func (r *approachRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ApproachRecord{}).
		Count(&count).
		Error
	return count, err
}
