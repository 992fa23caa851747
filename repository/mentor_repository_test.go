package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vnkhanh/skillplus-backend/apperror"
	"github.com/vnkhanh/skillplus-backend/models"
	"github.com/vnkhanh/skillplus-backend/validators"
)

func strPtr(s string) *string { return &s }

func TestMentorCreateDefaultsActive(t *testing.T) {
	repo := NewMentorRepository(newTestDB(t), nil)

	m, err := repo.Create(bg, &validators.MentorInput{Name: "Hana", Company: strPtr("Acme")}, "https://cdn.example.com/m.png")
	require.NoError(t, err)

	assert.True(t, m.IsActive)
	assert.Equal(t, "Acme", *m.Company)
	assert.Nil(t, m.Specialization)
}

func TestMentorUpdateIsPartial(t *testing.T) {
	repo := NewMentorRepository(newTestDB(t), nil)
	m, err := repo.Create(bg, &validators.MentorInput{Name: "Hana", Company: strPtr("Acme")}, "https://cdn.example.com/m.png")
	require.NoError(t, err)

	inactive := false
	updated, err := repo.Update(bg, m.ID, &validators.MentorUpdate{
		Specialization: strPtr("Backend"),
		IsActive:       &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hana", updated.Name)
	assert.Equal(t, "Acme", *updated.Company)
	assert.Equal(t, "Backend", *updated.Specialization)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "https://cdn.example.com/m.png", updated.PhotoURL)
}

func TestMentorUpdateMissing(t *testing.T) {
	repo := NewMentorRepository(newTestDB(t), nil)

	_, err := repo.Update(bg, uuid.New(), &validators.MentorUpdate{Name: strPtr("x")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestMentorUpdateRollsBackWhenReloadFails(t *testing.T) {
	db := newTestDB(t)
	repo := NewMentorRepository(db, nil)
	m, err := repo.Create(bg, &validators.MentorInput{Name: "Hana"}, "https://cdn.example.com/m.png")
	require.NoError(t, err)

	reads := 0
	err = db.Callback().Query().Before("gorm:query").Register("test:fail_mentor_reload", func(tx *gorm.DB) {
		if tx.Statement.Table == "mentors" {
			reads++
			if reads == 2 {
				_ = tx.AddError(errors.New("connection reset"))
			}
		}
	})
	require.NoError(t, err)

	_, err = repo.Update(bg, m.ID, &validators.MentorUpdate{PhotoURL: strPtr("https://cdn.example.com/new.png")})
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))

	require.NoError(t, db.Callback().Query().Remove("test:fail_mentor_reload"))
	stored, err := repo.FindByID(bg, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/m.png", stored.PhotoURL)
}

func TestMentorDeleteDetachesCourses(t *testing.T) {
	db := newTestDB(t)
	mentors := NewMentorRepository(db, nil)
	m, err := mentors.Create(bg, &validators.MentorInput{Name: "Hana"}, "https://cdn.example.com/m.png")
	require.NoError(t, err)

	in := sampleCourse("Kept")
	in.MentorID = &m.ID
	course, err := NewCourseRepository(db, nil).Create(bg, in, "https://cdn.example.com/x.png")
	require.NoError(t, err)

	deleted, err := mentors.Delete(bg, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/m.png", deleted.PhotoURL)

	var reloaded models.Course
	require.NoError(t, db.First(&reloaded, "id = ?", course.ID).Error)
	assert.Nil(t, reloaded.MentorID)

	_, err = mentors.Delete(bg, m.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestMentorListSearchIncludesCourses(t *testing.T) {
	db := newTestDB(t)
	mentors := NewMentorRepository(db, nil)
	for _, name := range []string{"Hana Sato", "Minh Tran", "hanako"} {
		_, err := mentors.Create(bg, &validators.MentorInput{Name: name}, "https://cdn.example.com/m.png")
		require.NoError(t, err)
	}
	list, total, err := mentors.List(bg, listQuery("hana", "name", "asc", 1, 9))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "Hana Sato", list[0].Name)

	in := sampleCourse("With mentor")
	in.MentorID = &list[0].ID
	_, err = NewCourseRepository(db, nil).Create(bg, in, "https://cdn.example.com/x.png")
	require.NoError(t, err)

	list, _, err = mentors.List(bg, listQuery("Hana Sato", "name", "asc", 1, 9))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Courses, 1)
}

func TestMentorMutationInvalidatesCourseCache(t *testing.T) {
	db := newTestDB(t)
	cache, mr := newTestCache(t)
	courses := NewCourseRepository(db, cache)
	_, _, err := courses.List(bg, listQuery("", "created_at", "desc", 1, 9))
	require.NoError(t, err)
	require.NotEmpty(t, mr.Keys())

	_, err = NewMentorRepository(db, cache).Create(bg, &validators.MentorInput{Name: "Hana"}, "https://cdn.example.com/m.png")
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
}
