package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vnkhanh/skillplus-backend/apperror"
	"github.com/vnkhanh/skillplus-backend/models"
	"github.com/vnkhanh/skillplus-backend/repository"
	"github.com/vnkhanh/skillplus-backend/storage"
	"github.com/vnkhanh/skillplus-backend/validators"
)

const mentorPrefix = "mentors"

type MentorService struct {
	mentors repository.MentorRepository
	store   ObjectStore
	notify  Notifier
	cleaner cleaner
	log     zerolog.Logger
}

func NewMentorService(mentors repository.MentorRepository, store ObjectStore, orphans repository.OrphanRepository, notify Notifier, log zerolog.Logger) *MentorService {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &MentorService{
		mentors: mentors,
		store:   store,
		notify:  notify,
		cleaner: cleaner{store: store, orphans: orphans, log: log},
		log:     log,
	}
}

func (s *MentorService) Create(ctx context.Context, form validators.MentorForm, photo storage.File) (*models.Mentor, error) {
	in, err := validators.ParseMentor(form)
	if err != nil {
		return nil, err
	}

	obj, err := s.store.Upload(ctx, photo, mentorPrefix, storage.CreateOnly)
	if err != nil {
		return nil, err
	}

	mentor, err := s.mentors.Create(ctx, in, obj.URL)
	if err != nil {
		s.cleaner.discard(ctx, obj.Key, err)
		return nil, err
	}

	s.notify.Publish(EventMentorListChanged, mentor.ID.String())
	return mentor, nil
}

func (s *MentorService) List(ctx context.Context, q validators.ListQuery) ([]models.Mentor, models.Pagination, error) {
	mentors, total, err := s.mentors.List(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return mentors, models.NewPagination(q.Page, q.Limit, total), nil
}

// Update applies a partial update. A new photo replaces the old one, which is
// removed only after the row points at the new URL.
func (s *MentorService) Update(ctx context.Context, id uuid.UUID, form validators.MentorUpdateForm, photo *storage.File) (*models.Mentor, error) {
	upd, err := validators.ParseMentorUpdate(form)
	if err != nil {
		return nil, err
	}
	if upd.Empty() && photo == nil {
		return nil, apperror.Input("Nothing to update")
	}

	current, err := s.mentors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var obj storage.Object
	if photo != nil {
		obj, err = s.store.Upload(ctx, *photo, mentorPrefix, storage.Overwrite)
		if err != nil {
			return nil, err
		}
		upd.PhotoURL = &obj.URL
	}

	mentor, err := s.mentors.Update(ctx, id, upd)
	if err != nil {
		if photo != nil {
			s.cleaner.discard(ctx, obj.Key, err)
		}
		return nil, err
	}

	if photo != nil && current.PhotoURL != obj.URL {
		s.cleaner.discardURL(ctx, current.PhotoURL, nil)
	}
	s.notify.Publish(EventMentorListChanged, mentor.ID.String())
	return mentor, nil
}

func (s *MentorService) Delete(ctx context.Context, id uuid.UUID) error {
	mentor, err := s.mentors.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.cleaner.discardURL(ctx, mentor.PhotoURL, nil)
	s.notify.Publish(EventMentorListChanged, mentor.ID.String())
	return nil
}
