package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vnkhanh/skillplus-backend/models"
	"github.com/vnkhanh/skillplus-backend/repository"
	"github.com/vnkhanh/skillplus-backend/storage"
	"github.com/vnkhanh/skillplus-backend/validators"
)

const coursePrefix = "courses"

type CourseService struct {
	courses repository.CourseRepository
	store   ObjectStore
	notify  Notifier
	cleaner cleaner
	log     zerolog.Logger
}

func NewCourseService(courses repository.CourseRepository, store ObjectStore, orphans repository.OrphanRepository, notify Notifier, log zerolog.Logger) *CourseService {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &CourseService{
		courses: courses,
		store:   store,
		notify:  notify,
		cleaner: cleaner{store: store, orphans: orphans, log: log},
		log:     log,
	}
}

// Create runs validate, upload and persist strictly in that order, stopping
// at the first failure. A failed persist removes the uploaded thumbnail.
func (s *CourseService) Create(ctx context.Context, form validators.CourseForm, thumbnail storage.File) (*models.Course, error) {
	in, err := validators.ParseCourse(form)
	if err != nil {
		return nil, err
	}

	obj, err := s.store.Upload(ctx, thumbnail, coursePrefix, storage.CreateOnly)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.Create(ctx, in, obj.URL)
	if err != nil {
		s.cleaner.discard(ctx, obj.Key, err)
		return nil, err
	}

	s.log.Info().
		Str("course_id", course.ID.String()).
		Int("lessons", len(course.Lessons)).
		Int("modules", course.ModuleCount()).
		Msg("course created")
	s.notify.Publish(EventCourseListChanged, course.ID.String())
	return course, nil
}

func (s *CourseService) List(ctx context.Context, q validators.ListQuery) ([]models.Course, models.Pagination, error) {
	courses, total, err := s.courses.List(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return courses, models.NewPagination(q.Page, q.Limit, total), nil
}

func (s *CourseService) Detail(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courses.FindByID(ctx, id)
}
