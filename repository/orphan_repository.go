package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/skillplus-backend/models"
)

type OrphanRepository interface {
	Record(ctx context.Context, key, reason string) error
	Pending(ctx context.Context, limit int) ([]models.OrphanObject, error)
	Resolve(ctx context.Context, id uint) error
	Bump(ctx context.Context, id uint, reason string) error
}

type orphanRepo struct {
	db *gorm.DB
}

func NewOrphanRepository(db *gorm.DB) OrphanRepository {
	return &orphanRepo{db: db}
}

// Record is idempotent per key.
func (r *orphanRepo) Record(ctx context.Context, key, reason string) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason", "updated_at"}),
	}).Create(&models.OrphanObject{Key: key, Reason: reason}).Error
	return errors.Wrap(err, "record orphan")
}

// Pending returns the least-attempted orphans first.
func (r *orphanRepo) Pending(ctx context.Context, limit int) ([]models.OrphanObject, error) {
	var rows []models.OrphanObject
	err := r.db.WithContext(ctx).Order("attempts ASC, id ASC").Limit(limit).Find(&rows).Error
	return rows, errors.Wrap(err, "list orphans")
}

func (r *orphanRepo) Resolve(ctx context.Context, id uint) error {
	return errors.Wrap(r.db.WithContext(ctx).Delete(&models.OrphanObject{}, id).Error, "resolve orphan")
}

func (r *orphanRepo) Bump(ctx context.Context, id uint, reason string) error {
	err := r.db.WithContext(ctx).Model(&models.OrphanObject{}).Where("id = ?", id).Updates(map[string]interface{}{
		"attempts": gorm.Expr("attempts + 1"),
		"reason":   reason,
	}).Error
	return errors.Wrap(err, "bump orphan")
}
