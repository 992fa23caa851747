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

const courseListPrefix = "courses:list:"

// CourseSortColumns maps accepted sortBy values to columns.
var CourseSortColumns = map[string]string{
	"created_at": "created_at",
	"createAt":   "created_at",
	"title":      "title",
	"price":      "price",
}

type CourseRepository interface {
	Create(ctx context.Context, in *validators.CourseInput, thumbnailURL string) (*models.Course, error)
	List(ctx context.Context, q validators.ListQuery) ([]models.Course, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type courseRepo struct {
	db    *gorm.DB
	cache *ListCache
}

func NewCourseRepository(db *gorm.DB, cache *ListCache) CourseRepository {
	return &courseRepo{db: db, cache: cache}
}

// Create writes the course, its lessons and their modules in one transaction.
// Missing orders default to position+1 within the parent. The returned graph is
// read back inside the same transaction, so a failed read also rolls back.
func (r *courseRepo) Create(ctx context.Context, in *validators.CourseInput, thumbnailURL string) (*models.Course, error) {
	course := models.Course{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Thumbnail:   thumbnailURL,
		MentorID:    in.MentorID,
	}
	var created models.Course

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.MentorID != nil {
			var n int64
			if err := tx.Model(&models.Mentor{}).Where("id = ?", *in.MentorID).Count(&n).Error; err != nil {
				return errors.Wrap(err, "check mentor")
			}
			if n == 0 {
				return apperror.Validation(apperror.FieldError{Field: "mentor_id", Message: "mentor does not exist"})
			}
		}

		if err := tx.Omit("Lessons", "Mentor").Create(&course).Error; err != nil {
			return errors.Wrap(err, "insert course")
		}

		for i, li := range in.Lessons {
			lesson := models.Lesson{
				CourseID:  course.ID,
				Title:     li.Title,
				SortOrder: orderOrPosition(li.Order, i),
			}
			if err := tx.Omit("Modules").Create(&lesson).Error; err != nil {
				return errors.Wrapf(err, "insert lesson %d", i)
			}

			modules := make([]models.Module, 0, len(li.Modules))
			for j, mi := range li.Modules {
				modules = append(modules, models.Module{
					LessonID:  lesson.ID,
					Title:     mi.Title,
					Content:   mi.Content,
					VideoURL:  nullable(mi.VideoURL),
					SortOrder: orderOrPosition(mi.Order, j),
				})
			}
			if err := tx.Create(&modules).Error; err != nil {
				return errors.Wrapf(err, "insert modules of lesson %d", i)
			}
		}

		if err := preloadTree(tx.Preload("Mentor")).First(&created, "id = ?", course.ID).Error; err != nil {
			return errors.Wrap(err, "load saved course")
		}
		return nil
	})
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		return nil, apperror.Persistence(err, "Failed to save course")
	}

	r.cache.Invalidate(ctx, courseListPrefix)
	return &created, nil
}

func (r *courseRepo) List(ctx context.Context, q validators.ListQuery) ([]models.Course, int64, error) {
	key := fmt.Sprintf("%s%s:%s:%d:%d", courseListPrefix, strings.ToLower(q.Search), q.OrderClause(), q.Page, q.Limit)

	var cached struct {
		Courses []models.Course
		Total   int64
	}
	if r.cache.Get(ctx, key, &cached) {
		return cached.Courses, cached.Total, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Course{})
	if q.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count courses")
	}

	courses := []models.Course{}
	err := preloadTree(query.Preload("Mentor")).
		Order(q.OrderClause()).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list courses")
	}

	cached.Courses, cached.Total = courses, total
	r.cache.Set(ctx, key, cached)
	return courses, total, nil
}

func (r *courseRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := preloadTree(r.db.WithContext(ctx).Preload("Mentor")).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Course not found")
		}
		return nil, errors.Wrap(err, "find course")
	}
	return &course, nil
}

// preloadTree loads lessons and modules sorted by their order.
func preloadTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Lessons.Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
}

func orderOrPosition(order *int, index int) int {
	if order != nil {
		return *order
	}
	return index + 1
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
