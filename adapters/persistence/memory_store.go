package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

// MemoryStore keeps users and profiles in process. It backs local runs with
// store.driver=memory and the handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]user.User
	profiles map[uuid.UUID]profile.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uuid.UUID]user.User),
		profiles: make(map[uuid.UUID]profile.Profile),
	}
}

func (s *MemoryStore) Profiles() profile.Repository { return memoryProfileRepo{s} }

func (s *MemoryStore) Users() user.Repository { return memoryUserRepo{s} }

type memoryProfileRepo struct{ s *MemoryStore }

func (r memoryProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, apperror.NewNotFound("Profile not found", "no profile for user "+userID.String())
	}
	return r.s.populate(p), nil
}

func (r memoryProfileRepo) List(_ context.Context) ([]*profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*profile.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, r.s.populate(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r memoryProfileRepo) Create(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.profiles[p.User.ID]; exists {
		return apperror.NewConflict("profile", "user", p.User.ID.String())
	}
	r.s.profiles[p.User.ID] = cloneProfile(*p)
	return nil
}

func (r memoryProfileRepo) UpdateFields(_ context.Context, userID uuid.UUID, f profile.Fields, now time.Time) (*profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, apperror.NewNotFound("Profile not found", "no profile for user "+userID.String())
	}
	f.Apply(&p)
	p.UpdatedAt = now
	r.s.profiles[userID] = p
	return r.s.populate(p), nil
}

func (r memoryProfileRepo) Save(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.profiles[p.User.ID]
	if !ok {
		return apperror.NewNotFound("Profile not found", "no profile for user "+p.User.ID.String())
	}
	stored.Experience = append([]profile.Experience{}, p.Experience...)
	stored.Education = append([]profile.Education{}, p.Education...)
	stored.UpdatedAt = p.UpdatedAt
	r.s.profiles[p.User.ID] = stored
	return nil
}

func (r memoryProfileRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.profiles, userID)
	return nil
}

type memoryUserRepo struct{ s *MemoryStore }

func (r memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperror.NewNotFound("User not found", "no user "+id.String())
	}
	return &u, nil
}

func (r memoryUserRepo) Upsert(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.users {
		if existing.Email == u.Email {
			u.ID = id
			u.Date = existing.Date
			break
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Date.IsZero() {
		u.Date = time.Now().UTC()
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r memoryUserRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.users, id)
	return nil
}

// populate fills the owner name and avatar. Caller holds the lock.
func (s *MemoryStore) populate(p profile.Profile) *profile.Profile {
	out := cloneProfile(p)
	if u, ok := s.users[p.User.ID]; ok {
		out.User.Name = u.Name
		out.User.Avatar = u.Avatar
	}
	return &out
}

func cloneProfile(p profile.Profile) profile.Profile {
	p.Skills = append([]string{}, p.Skills...)
	p.Experience = append([]profile.Experience{}, p.Experience...)
	p.Education = append([]profile.Education{}, p.Education...)
	return p
}
