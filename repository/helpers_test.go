package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/skillplus-backend/config"
	"github.com/vnkhanh/skillplus-backend/validators"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func newTestCache(t *testing.T) (*ListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewListCache(rdb, time.Minute, zerolog.Nop()), mr
}

func intPtr(n int) *int { return &n }

func sampleCourse(title string) *validators.CourseInput {
	return &validators.CourseInput{
		Title:       title,
		Description: "A course about " + title,
		Price:       100,
		Lessons: []validators.LessonInput{{
			Title:   "Getting started",
			Modules: []validators.ModuleInput{{Title: "Welcome", Content: "Hello"}},
		}},
	}
}

func listQuery(search, sortBy, sortOrder string, page, limit int) validators.ListQuery {
	return validators.ListQuery{Page: page, Limit: limit, Search: search, SortBy: sortBy, SortOrder: sortOrder}
}

var bg = context.Background()
