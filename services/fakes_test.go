package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vnkhanh/skillplus-backend/models"
	"github.com/vnkhanh/skillplus-backend/storage"
	"github.com/vnkhanh/skillplus-backend/validators"
)

const cdn = "https://cdn.test/"

type fakeStore struct {
	mu        sync.Mutex
	uploads   []string
	policies  []storage.WritePolicy
	removed   []string
	uploadErr error
	removeErr error
	removeCtx error
}

func (s *fakeStore) Upload(ctx context.Context, f storage.File, prefix string, policy storage.WritePolicy) (storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return storage.Object{}, s.uploadErr
	}
	key := prefix + "/" + f.Name
	s.uploads = append(s.uploads, key)
	s.policies = append(s.policies, policy)
	return storage.Object{Key: key, URL: cdn + key}, nil
}

func (s *fakeStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeCtx = ctx.Err()
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, key)
	return nil
}

func (s *fakeStore) KeyOf(url string) (string, bool) {
	if !strings.HasPrefix(url, cdn) {
		return "", false
	}
	return strings.TrimPrefix(url, cdn), true
}

type fakeCourseRepo struct {
	creates   int
	thumbnail string
	err       error
	before    func()
}

func (r *fakeCourseRepo) Create(ctx context.Context, in *validators.CourseInput, thumbnailURL string) (*models.Course, error) {
	r.creates++
	r.thumbnail = thumbnailURL
	if r.before != nil {
		r.before()
	}
	if r.err != nil {
		return nil, r.err
	}
	c := &models.Course{ID: uuid.New(), Title: in.Title, Thumbnail: thumbnailURL}
	for i, l := range in.Lessons {
		lesson := models.Lesson{Title: l.Title, SortOrder: i + 1}
		for range l.Modules {
			lesson.Modules = append(lesson.Modules, models.Module{})
		}
		c.Lessons = append(c.Lessons, lesson)
	}
	return c, nil
}

func (r *fakeCourseRepo) List(ctx context.Context, q validators.ListQuery) ([]models.Course, int64, error) {
	return []models.Course{{Title: "a"}}, 19, nil
}

func (r *fakeCourseRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}

type fakeMentorRepo struct {
	mentors map[uuid.UUID]*models.Mentor
	updates []*validators.MentorUpdate
	err     error
}

func newFakeMentorRepo(ms ...*models.Mentor) *fakeMentorRepo {
	r := &fakeMentorRepo{mentors: map[uuid.UUID]*models.Mentor{}}
	for _, m := range ms {
		r.mentors[m.ID] = m
	}
	return r
}

func (r *fakeMentorRepo) Create(ctx context.Context, in *validators.MentorInput, photoURL string) (*models.Mentor, error) {
	if r.err != nil {
		return nil, r.err
	}
	m := &models.Mentor{ID: uuid.New(), Name: in.Name, PhotoURL: photoURL, IsActive: true}
	r.mentors[m.ID] = m
	return m, nil
}

func (r *fakeMentorRepo) List(ctx context.Context, q validators.ListQuery) ([]models.Mentor, int64, error) {
	return nil, 0, nil
}

func (r *fakeMentorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Mentor, error) {
	m, ok := r.mentors[id]
	if !ok {
		return nil, errors.New("missing")
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMentorRepo) Update(ctx context.Context, id uuid.UUID, upd *validators.MentorUpdate) (*models.Mentor, error) {
	r.updates = append(r.updates, upd)
	if r.err != nil {
		return nil, r.err
	}
	m := r.mentors[id]
	if upd.Name != nil {
		m.Name = *upd.Name
	}
	if upd.PhotoURL != nil {
		m.PhotoURL = *upd.PhotoURL
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMentorRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Mentor, error) {
	m, ok := r.mentors[id]
	if !ok {
		return nil, errors.New("missing")
	}
	delete(r.mentors, id)
	return m, nil
}

type fakeOrphans struct {
	recorded []string
	pending  []models.OrphanObject
	resolved []uint
	bumped   []uint
}

func (o *fakeOrphans) Record(ctx context.Context, key, reason string) error {
	o.recorded = append(o.recorded, key)
	return nil
}

func (o *fakeOrphans) Pending(ctx context.Context, limit int) ([]models.OrphanObject, error) {
	return o.pending, nil
}

func (o *fakeOrphans) Resolve(ctx context.Context, id uint) error {
	o.resolved = append(o.resolved, id)
	return nil
}

func (o *fakeOrphans) Bump(ctx context.Context, id uint, reason string) error {
	o.bumped = append(o.bumped, id)
	return nil
}

type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) Publish(eventType, id string) {
	n.events = append(n.events, eventType)
}

type fakeUsers struct {
	byEmail map[string]*models.User
	created []*models.User
}

func newFakeUsers(us ...*models.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]*models.User{}}
	for _, u := range us {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	u.ID = uuid.New()
	f.byEmail[u.Email] = u
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUsers) Upsert(ctx context.Context, u *models.User) error {
	return f.Create(ctx, u)
}
