package http

import (
	"time"

	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

// Profile DTOs

// ProfileRequest carries the social links flat, next to the other fields.
type ProfileRequest struct {
	Handle         *string `json:"handle"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         string  `json:"status" binding:"required" msg:"Status is required"`
	GitHubUsername *string `json:"githubusername"`
	Skills         string  `json:"skills" binding:"required" msg:"Skills is required"`

	YouTube   *string `json:"youtube"`
	Twitter   *string `json:"twitter"`
	Facebook  *string `json:"facebook"`
	LinkedIn  *string `json:"linkedin"`
	Instagram *string `json:"instagram"`
}

// present treats an empty string as not supplied.
func present(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func (req *ProfileRequest) ToFields() profile.Fields {
	status := req.Status
	return profile.Fields{
		Handle:         present(req.Handle),
		Company:        present(req.Company),
		Website:        present(req.Website),
		Location:       present(req.Location),
		Bio:            present(req.Bio),
		Status:         &status,
		GitHubUsername: present(req.GitHubUsername),
		Skills:         profile.ParseSkills(req.Skills),
		Social: profile.SocialFields{
			YouTube:   present(req.YouTube),
			Twitter:   present(req.Twitter),
			Facebook:  present(req.Facebook),
			LinkedIn:  present(req.LinkedIn),
			Instagram: present(req.Instagram),
		},
	}
}

type ExperienceRequest struct {
	Title       string `json:"title" binding:"required" msg:"Title is Required"`
	Company     string `json:"company" binding:"required" msg:"Company is Required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required" msg:"From date is required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (req *ExperienceRequest) ToDomain() (profile.Experience, error) {
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return profile.Experience{}, err
	}
	return profile.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}, nil
}

type EducationRequest struct {
	School       string `json:"school" binding:"required" msg:"School is Required"`
	Degree       string `json:"degree" binding:"required" msg:"Degree is Required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required" msg:"Field of study is Required"`
	From         string `json:"from" binding:"required" msg:"From date is required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (req *EducationRequest) ToDomain() (profile.Education, error) {
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return profile.Education{}, err
	}
	return profile.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}, nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseRange(rawFrom, rawTo string) (time.Time, *time.Time, error) {
	var fieldErrs []apperror.FieldError

	from, ok := parseDate(rawFrom)
	if !ok {
		fieldErrs = append(fieldErrs, apperror.FieldError{Msg: "From date is invalid", Param: "from", Location: locationBody, Value: rawFrom})
	}

	var to *time.Time
	if rawTo != "" {
		t, ok := parseDate(rawTo)
		if !ok {
			fieldErrs = append(fieldErrs, apperror.FieldError{Msg: "To date is invalid", Param: "to", Location: locationBody, Value: rawTo})
		}
		to = &t
	}

	if len(fieldErrs) > 0 {
		return time.Time{}, nil, apperror.NewValidation(fieldErrs...)
	}
	return from, to, nil
}

type OwnerDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type SocialDTO struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type ExperienceDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type EducationDTO struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

type ProfileDTO struct {
	ID             string          `json:"id"`
	User           OwnerDTO        `json:"user"`
	Handle         string          `json:"handle,omitempty"`
	Company        string          `json:"company,omitempty"`
	Website        string          `json:"website,omitempty"`
	Location       string          `json:"location,omitempty"`
	Bio            string          `json:"bio,omitempty"`
	Status         string          `json:"status"`
	GitHubUsername string          `json:"githubusername,omitempty"`
	Skills         []string        `json:"skills"`
	Social         SocialDTO       `json:"social"`
	Experience     []ExperienceDTO `json:"experience"`
	Education      []EducationDTO  `json:"education"`
	Date           time.Time       `json:"date"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID: p.ID.String(),
		User: OwnerDTO{
			ID:     p.User.ID.String(),
			Name:   p.User.Name,
			Avatar: p.User.Avatar,
		},
		Handle:         p.Handle,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GitHubUsername: p.GitHubUsername,
		Skills:         p.Skills,
		Social:         SocialDTO(p.Social),
		Date:           p.Date,
		UpdatedAt:      p.UpdatedAt,
	}
	if dto.Skills == nil {
		dto.Skills = []string{}
	}

	dto.Experience = make([]ExperienceDTO, len(p.Experience))
	for i, e := range p.Experience {
		dto.Experience[i] = ExperienceDTO{
			ID:          e.ID.String(),
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		}
	}
	dto.Education = make([]EducationDTO, len(p.Education))
	for i, e := range p.Education {
		dto.Education[i] = EducationDTO{
			ID:           e.ID.String(),
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From,
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		}
	}
	return dto
}

func ToProfileDTOs(profiles []*profile.Profile) []ProfileDTO {
	out := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		out[i] = ToProfileDTO(p)
	}
	return out
}
