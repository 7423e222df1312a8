package profile

// Field names as stored in the document.
const (
	FieldHandle         = "handle"
	FieldCompany        = "company"
	FieldWebsite        = "website"
	FieldLocation       = "location"
	FieldBio            = "bio"
	FieldStatus         = "status"
	FieldGitHubUsername = "githubusername"
	FieldSkills         = "skills"

	SocialYouTube   = "youtube"
	SocialTwitter   = "twitter"
	SocialFacebook  = "facebook"
	SocialLinkedIn  = "linkedin"
	SocialInstagram = "instagram"
)

// Fields is a create-or-update request. A nil value means the field was not
// supplied and must be left as stored.
type Fields struct {
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GitHubUsername *string
	Skills         []string

	Social SocialFields
}

type SocialFields struct {
	YouTube   *string
	Twitter   *string
	Facebook  *string
	LinkedIn  *string
	Instagram *string
}

// Change is one present field. Value is a string or a []string.
type Change struct {
	Field string
	Value any
}

// Changes lists the present top-level fields in a fixed order.
func (f Fields) Changes() []Change {
	pairs := []struct {
		field string
		value *string
	}{
		{FieldHandle, f.Handle},
		{FieldCompany, f.Company},
		{FieldWebsite, f.Website},
		{FieldLocation, f.Location},
		{FieldBio, f.Bio},
		{FieldStatus, f.Status},
		{FieldGitHubUsername, f.GitHubUsername},
	}

	changes := make([]Change, 0, len(pairs)+1)
	for _, p := range pairs {
		if p.value != nil {
			changes = append(changes, Change{Field: p.field, Value: *p.value})
		}
	}
	if f.Skills != nil {
		changes = append(changes, Change{Field: FieldSkills, Value: f.Skills})
	}
	return changes
}

// SocialChanges lists the present social links in a fixed order.
func (f Fields) SocialChanges() []Change {
	pairs := []struct {
		field string
		value *string
	}{
		{SocialYouTube, f.Social.YouTube},
		{SocialTwitter, f.Social.Twitter},
		{SocialFacebook, f.Social.Facebook},
		{SocialLinkedIn, f.Social.LinkedIn},
		{SocialInstagram, f.Social.Instagram},
	}

	var changes []Change
	for _, p := range pairs {
		if p.value != nil {
			changes = append(changes, Change{Field: p.field, Value: *p.value})
		}
	}
	return changes
}

func (f Fields) IsEmpty() bool {
	return len(f.Changes()) == 0 && len(f.SocialChanges()) == 0
}

// Apply copies every present field onto p.
func (f Fields) Apply(p *Profile) {
	for _, c := range f.Changes() {
		switch c.Field {
		case FieldHandle:
			p.Handle = c.Value.(string)
		case FieldCompany:
			p.Company = c.Value.(string)
		case FieldWebsite:
			p.Website = c.Value.(string)
		case FieldLocation:
			p.Location = c.Value.(string)
		case FieldBio:
			p.Bio = c.Value.(string)
		case FieldStatus:
			p.Status = c.Value.(string)
		case FieldGitHubUsername:
			p.GitHubUsername = c.Value.(string)
		case FieldSkills:
			p.Skills = append([]string(nil), c.Value.([]string)...)
		}
	}
	for _, c := range f.SocialChanges() {
		v := c.Value.(string)
		switch c.Field {
		case SocialYouTube:
			p.Social.YouTube = v
		case SocialTwitter:
			p.Social.Twitter = v
		case SocialFacebook:
			p.Social.Facebook = v
		case SocialLinkedIn:
			p.Social.LinkedIn = v
		case SocialInstagram:
			p.Social.Instagram = v
		}
	}
}
