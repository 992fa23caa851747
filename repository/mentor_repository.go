package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vnkhanh/skillplus-backend/apperror"
	"github.com/vnkhanh/skillplus-backend/models"
	"github.com/vnkhanh/skillplus-backend/validators"
)

const mentorListPrefix = "mentors:list:"

var MentorSortColumns = map[string]string{
	"created_at": "created_at",
	"createAt":   "created_at",
	"name":       "name",
}

type MentorRepository interface {
	Create(ctx context.Context, in *validators.MentorInput, photoURL string) (*models.Mentor, error)
	List(ctx context.Context, q validators.ListQuery) ([]models.Mentor, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Mentor, error)
	Update(ctx context.Context, id uuid.UUID, upd *validators.MentorUpdate) (*models.Mentor, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Mentor, error)
}

type mentorRepo struct {
	db    *gorm.DB
	cache *ListCache
}

func NewMentorRepository(db *gorm.DB, cache *ListCache) MentorRepository {
	return &mentorRepo{db: db, cache: cache}
}

func (r *mentorRepo) Create(ctx context.Context, in *validators.MentorInput, photoURL string) (*models.Mentor, error) {
	mentor := models.Mentor{
		Name:           in.Name,
		Company:        in.Company,
		Specialization: in.Specialization,
		PhotoURL:       photoURL,
		IsActive:       true,
	}
	if err := r.db.WithContext(ctx).Omit("Courses").Create(&mentor).Error; err != nil {
		return nil, apperror.Persistence(errors.Wrap(err, "insert mentor"), "Failed to save mentor")
	}
	r.invalidate(ctx)
	return &mentor, nil
}

func (r *mentorRepo) List(ctx context.Context, q validators.ListQuery) ([]models.Mentor, int64, error) {
	key := fmt.Sprintf("%s%s:%s:%d:%d", mentorListPrefix, strings.ToLower(q.Search), q.OrderClause(), q.Page, q.Limit)

	var cached struct {
		Mentors []models.Mentor
		Total   int64
	}
	if r.cache.Get(ctx, key, &cached) {
		return cached.Mentors, cached.Total, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Mentor{})
	if q.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count mentors")
	}

	mentors := []models.Mentor{}
	err := query.
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order(q.OrderClause()).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&mentors).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list mentors")
	}

	cached.Mentors, cached.Total = mentors, total
	r.cache.Set(ctx, key, cached)
	return mentors, total, nil
}

func (r *mentorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Mentor, error) {
	var mentor models.Mentor
	if err := r.db.WithContext(ctx).First(&mentor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Mentor not found")
		}
		return nil, errors.Wrap(err, "find mentor")
	}
	return &mentor, nil
}

// Update applies only the fields present in upd. The row is re-read in the
// same transaction, so an error means nothing was changed.
func (r *mentorRepo) Update(ctx context.Context, id uuid.UUID, upd *validators.MentorUpdate) (*models.Mentor, error) {
	changes := map[string]interface{}{}
	if upd.Name != nil {
		changes["name"] = *upd.Name
	}
	if upd.Company != nil {
		changes["company"] = *upd.Company
	}
	if upd.Specialization != nil {
		changes["specialization"] = *upd.Specialization
	}
	if upd.IsActive != nil {
		changes["is_active"] = *upd.IsActive
	}
	if upd.PhotoURL != nil {
		changes["photo_url"] = *upd.PhotoURL
	}
	if len(changes) == 0 {
		return r.FindByID(ctx, id)
	}

	var mentor models.Mentor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&mentor, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&mentor).Updates(changes).Error; err != nil {
			return errors.Wrap(err, "update mentor")
		}
		mentor = models.Mentor{}
		return errors.Wrap(tx.First(&mentor, "id = ?", id).Error, "reload mentor")
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Mentor not found")
		}
		return nil, apperror.Persistence(err, "Failed to update mentor")
	}
	r.invalidate(ctx)
	return &mentor, nil
}

// Delete removes the mentor and returns the deleted row so callers can clean
// up its photo. Courses keep existing with mentor_id cleared.
func (r *mentorRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Mentor, error) {
	var mentor models.Mentor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&mentor, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Course{}).Where("mentor_id = ?", id).Update("mentor_id", nil).Error; err != nil {
			return errors.Wrap(err, "detach courses")
		}
		return tx.Delete(&models.Mentor{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Mentor not found")
		}
		return nil, apperror.Persistence(errors.Wrap(err, "delete mentor"), "Failed to delete mentor")
	}
	r.invalidate(ctx)
	return &mentor, nil
}

// Mentor changes show up inside course listings too.
func (r *mentorRepo) invalidate(ctx context.Context) {
	r.cache.Invalidate(ctx, mentorListPrefix)
	r.cache.Invalidate(ctx, courseListPrefix)
}
