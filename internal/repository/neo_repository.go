package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"neolink/internal/models"
)

type NEORepository interface {
	BulkUpsert(ctx context.Context, snapshot uuid.UUID, records []models.NEORecord) error
	GetByDesignation(ctx context.Context, designation string) (*models.NEORecord, error)
	GetByName(ctx context.Context, name string) (*models.NEORecord, error)
	Count(ctx context.Context) (int64, error)
}

type neoRepository struct {
	db *gorm.DB
}

func NewNEORepository(db *gorm.DB) NEORepository {
	return &neoRepository{db: db}
}

// BulkUpsert inserts or updates records by designation and removes rows
// left over from older snapshots.
func (r *neoRepository) BulkUpsert(ctx context.Context, snapshot uuid.UUID, records []models.NEORecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(records) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "designation"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "diameter_km", "hazardous", "snapshot_id", "raw", "updated_at"}),
			}).CreateInBatches(records, 500).Error
			if err != nil {
				return err
			}
		}

		return tx.Where("snapshot_id <> ?", snapshot).Delete(&models.NEORecord{}).Error
	})
}

func (r *neoRepository) GetByDesignation(ctx context.Context, designation string) (*models.NEORecord, error) {
	var rec models.NEORecord
	err := r.db.WithContext(ctx).First(&rec, "designation = ?", designation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *neoRepository) GetByName(ctx context.Context, name string) (*models.NEORecord, error) {
	var rec models.NEORecord
	err := r.db.WithContext(ctx).First(&rec, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *neoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.NEORecord{}).
		Count(&count).
		Error
	return count, err
}
