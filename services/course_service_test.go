package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/skillplus-backend/apperror"
	"github.com/vnkhanh/skillplus-backend/storage"
	"github.com/vnkhanh/skillplus-backend/validators"
)

var thumb = storage.File{Name: "cover.png", ContentType: "image/png", Data: []byte("png")}

func validForm() validators.CourseForm {
	return validators.CourseForm{
		Title:       "Intro to X",
		Description: "Learn X",
		Price:       "100",
		Lessons:     `[{"title":"L1","modules":[{"title":"M1","content":"C1"},{"title":"M2","content":"C2"}]},{"title":"L2","modules":[{"title":"M3","content":"C3"}]}]`,
	}
}

type courseFixture struct {
	svc      *CourseService
	store    *fakeStore
	repo     *fakeCourseRepo
	orphans  *fakeOrphans
	notifier *fakeNotifier
}

func newCourseFixture() *courseFixture {
	f := &courseFixture{
		store:    &fakeStore{},
		repo:     &fakeCourseRepo{},
		orphans:  &fakeOrphans{},
		notifier: &fakeNotifier{},
	}
	f.svc = NewCourseService(f.repo, f.store, f.orphans, f.notifier, zerolog.Nop())
	return f
}

func TestCourseCreateUploadsThenPersists(t *testing.T) {
	f := newCourseFixture()

	course, err := f.svc.Create(context.Background(), validForm(), thumb)
	require.NoError(t, err)

	assert.Len(t, course.Lessons, 2)
	assert.Equal(t, 3, course.ModuleCount())
	assert.Equal(t, []string{"courses/cover.png"}, f.store.uploads)
	assert.Equal(t, []storage.WritePolicy{storage.CreateOnly}, f.store.policies)
	assert.Equal(t, 1, f.repo.creates)
	assert.Equal(t, cdn+"courses/cover.png", f.repo.thumbnail)
	assert.Empty(t, f.store.removed)
	assert.Equal(t, []string{EventCourseListChanged}, f.notifier.events)
}

func TestCourseCreateValidationFailureInvokesNothing(t *testing.T) {
	f := newCourseFixture()
	form := validForm()
	form.Price = "0"

	_, err := f.svc.Create(context.Background(), form, thumb)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "price", appErr.Fields[0].Field)
	assert.Empty(t, f.store.uploads)
	assert.Zero(t, f.repo.creates)
	assert.Empty(t, f.notifier.events)
}

func TestCourseCreateUploadFailureSkipsPersist(t *testing.T) {
	f := newCourseFixture()
	f.store.uploadErr = apperror.Upload(errors.New("bucket not found"), "Failed to upload file")

	_, err := f.svc.Create(context.Background(), validForm(), thumb)

	assert.Equal(t, apperror.KindUpload, apperror.KindOf(err))
	assert.Zero(t, f.repo.creates)
	assert.Empty(t, f.store.removed)
}

func TestCourseCreatePersistFailureRemovesUpload(t *testing.T) {
	f := newCourseFixture()
	f.repo.err = apperror.Persistence(errors.New("connection reset"), "Failed to save course")

	_, err := f.svc.Create(context.Background(), validForm(), thumb)

	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
	assert.Equal(t, []string{"courses/cover.png"}, f.store.removed)
	assert.Empty(t, f.orphans.recorded)
	assert.Empty(t, f.notifier.events)
}

func TestCourseCreateRecordsOrphanWhenRemoveFails(t *testing.T) {
	f := newCourseFixture()
	f.repo.err = apperror.Persistence(errors.New("connection reset"), "Failed to save course")
	f.store.removeErr = errors.New("storage offline")

	_, err := f.svc.Create(context.Background(), validForm(), thumb)

	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
	assert.Equal(t, []string{"courses/cover.png"}, f.orphans.recorded)
}

func TestCourseCreateCompensatesAfterClientCancel(t *testing.T) {
	f := newCourseFixture()
	ctx, cancel := context.WithCancel(context.Background())
	f.repo.before = cancel
	f.repo.err = apperror.Persistence(context.Canceled, "Failed to save course")

	_, err := f.svc.Create(ctx, validForm(), thumb)

	require.Error(t, err)
	assert.NoError(t, f.store.removeCtx)
	assert.Equal(t, []string{"courses/cover.png"}, f.store.removed)
}

func TestCourseListBuildsPagination(t *testing.T) {
	f := newCourseFixture()

	courses, page, err := f.svc.List(context.Background(), validators.ListQuery{Page: 2, Limit: 9})
	require.NoError(t, err)

	assert.Len(t, courses, 1)
	assert.EqualValues(t, 19, page.Total)
	assert.EqualValues(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
}
