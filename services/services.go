package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vnkhanh/skillplus-backend/repository"
	"github.com/vnkhanh/skillplus-backend/storage"
)

const (
	EventCourseListChanged = "course_list_changed"
	EventMentorListChanged = "mentor_list_changed"

	compensationTimeout = 30 * time.Second
)

// ObjectStore is the part of *storage.Gateway the services need.
type ObjectStore interface {
	Upload(ctx context.Context, f storage.File, prefix string, policy storage.WritePolicy) (storage.Object, error)
	Remove(ctx context.Context, key string) error
	KeyOf(publicURL string) (string, bool)
}

// Notifier pushes change events to connected admin consoles.
type Notifier interface {
	Publish(eventType, id string)
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, string) {}

// cleaner removes uploaded objects whose owning row could not be written.
type cleaner struct {
	store   ObjectStore
	orphans repository.OrphanRepository
	log     zerolog.Logger
}

// discard deletes key on a context detached from ctx's cancellation, so a
// client disconnect cannot leave the object behind. When the delete fails the
// key is recorded for the orphan sweeper.
func (c cleaner) discard(ctx context.Context, key string, cause error) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	err := c.store.Remove(cctx, key)
	if err == nil {
		c.log.Info().Str("key", key).AnErr("cause", cause).Msg("removed uploaded object after failed write")
		return
	}

	c.log.Error().Err(err).Str("key", key).Msg("could not remove uploaded object")
	if c.orphans == nil {
		return
	}
	if rerr := c.orphans.Record(cctx, key, err.Error()); rerr != nil {
		c.log.Error().Err(rerr).Str("key", key).Msg("could not record orphan object")
	}
}

// discardURL is discard for objects known only by their public URL.
func (c cleaner) discardURL(ctx context.Context, publicURL string, cause error) {
	if key, ok := c.store.KeyOf(publicURL); ok {
		c.discard(ctx, key, cause)
	}
}
