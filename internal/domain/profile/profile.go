package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Owner is the populated subset of the owning user.
type Owner struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

type Profile struct {
	ID             uuid.UUID    `json:"id"`
	User           Owner        `json:"user"`
	Handle         string       `json:"handle,omitempty"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GitHubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Date           time.Time    `json:"date"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// New returns an empty profile owned by userID.
func New(userID uuid.UUID, now time.Time) *Profile {
	return &Profile{
		ID:         uuid.New(),
		User:       Owner{ID: userID},
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
		Date:       now,
		UpdatedAt:  now,
	}
}

// ParseSkills splits a comma separated list and trims every element.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, len(parts))
	for i, s := range parts {
		skills[i] = strings.TrimSpace(s)
	}
	return skills
}

// AddExperience assigns a fresh id and puts the entry first.
func (p *Profile) AddExperience(e Experience) Experience {
	e.ID = uuid.New()
	p.Experience = append([]Experience{e}, p.Experience...)
	return e
}

// RemoveExperience drops the first entry whose id matches. It reports
// whether anything was removed.
func (p *Profile) RemoveExperience(id string) bool {
	idx := -1
	for i, e := range p.Experience {
		if e.ID.String() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)
	return true
}

func (p *Profile) AddEducation(e Education) Education {
	e.ID = uuid.New()
	p.Education = append([]Education{e}, p.Education...)
	return e
}

func (p *Profile) RemoveEducation(id string) bool {
	idx := -1
	for i, e := range p.Education {
		if e.ID.String() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	p.Education = append(p.Education[:idx], p.Education[idx+1:]...)
	return true
}

type Repository interface {
	// FindByUserID returns a not-found apperror when the user has no profile.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	// Create returns a conflict apperror when the user already has a profile.
	Create(ctx context.Context, p *Profile) error
	// UpdateFields writes only the present fields and returns the stored document.
	UpdateFields(ctx context.Context, userID uuid.UUID, f Fields, now time.Time) (*Profile, error)
	// Save overwrites the experience and education sequences.
	Save(ctx context.Context, p *Profile) error
	// DeleteByUserID succeeds when no profile matches.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
