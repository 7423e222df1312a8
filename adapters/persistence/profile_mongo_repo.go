package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type mongoSocialDoc struct {
	YouTube   string `bson:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
}

type mongoExperienceDoc struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Company     string     `bson:"company"`
	Location    string     `bson:"location,omitempty"`
	From        time.Time  `bson:"from"`
	To          *time.Time `bson:"to,omitempty"`
	Current     bool       `bson:"current"`
	Description string     `bson:"description,omitempty"`
}

type mongoEducationDoc struct {
	ID           string     `bson:"_id"`
	School       string     `bson:"school"`
	Degree       string     `bson:"degree"`
	FieldOfStudy string     `bson:"fieldofstudy"`
	From         time.Time  `bson:"from"`
	To           *time.Time `bson:"to,omitempty"`
	Current      bool       `bson:"current"`
	Description  string     `bson:"description,omitempty"`
}

type mongoProfileDoc struct {
	ID             string               `bson:"_id"`
	User           string               `bson:"user"`
	Handle         string               `bson:"handle,omitempty"`
	Company        string               `bson:"company,omitempty"`
	Website        string               `bson:"website,omitempty"`
	Location       string               `bson:"location,omitempty"`
	Bio            string               `bson:"bio,omitempty"`
	Status         string               `bson:"status"`
	GitHubUsername string               `bson:"githubusername,omitempty"`
	Skills         []string             `bson:"skills"`
	Social         mongoSocialDoc       `bson:"social"`
	Experience     []mongoExperienceDoc `bson:"experience"`
	Education      []mongoEducationDoc  `bson:"education"`
	Date           time.Time            `bson:"date"`
	UpdatedAt      time.Time            `bson:"updated_at"`

	// Owner is only filled by the $lookup stage.
	Owner *mongoUserDoc `bson:"owner,omitempty"`
}

type mongoProfileRepo struct {
	profiles *mongo.Collection
	logger   logger.Logger
}

func NewMongoProfileRepo(db *mongo.Database, logger logger.Logger) profile.Repository {
	return &mongoProfileRepo{profiles: db.Collection(mongoProfilesCollection), logger: logger}
}

// populateOwner joins name and avatar of the owning user, keeping profiles
// whose user is gone.
func populateOwner() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: mongoUsersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (r *mongoProfileRepo) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*profile.Profile, error) {
	cursor, err := r.profiles.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperror.NewInternal("failed to aggregate profiles", err)
	}
	var docs []mongoProfileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperror.NewInternal("failed to decode profiles", err)
	}

	out := make([]*profile.Profile, 0, len(docs))
	for i := range docs {
		out = append(out, r.toDomain(&docs[i]))
	}
	return out, nil
}

func (r *mongoProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user", Value: userID.String()}}}},
		{{Key: "$limit", Value: 1}},
	}, populateOwner()...)

	profiles, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, apperror.NewNotFound("Profile not found", "no profile for user "+userID.String())
	}
	return profiles[0], nil
}

func (r *mongoProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}, populateOwner()...)
	return r.aggregate(ctx, pipeline)
}

func (r *mongoProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	if _, err := r.profiles.InsertOne(ctx, toProfileDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewConflict("profile", "user", p.User.ID.String())
		}
		return apperror.NewInternal("failed to insert profile", err)
	}
	return nil
}

func (r *mongoProfileRepo) UpdateFields(ctx context.Context, userID uuid.UUID, f profile.Fields, now time.Time) (*profile.Profile, error) {
	set := bson.M{"updated_at": now}
	for _, c := range f.Changes() {
		set[c.Field] = c.Value
	}
	for _, c := range f.SocialChanges() {
		set["social."+c.Field] = c.Value
	}

	res, err := r.profiles.UpdateOne(ctx, bson.M{"user": userID.String()}, bson.M{"$set": set})
	if err != nil {
		return nil, apperror.NewInternal("failed to update profile", err)
	}
	if res.MatchedCount == 0 {
		return nil, apperror.NewNotFound("Profile not found", "no profile for user "+userID.String())
	}
	return r.FindByUserID(ctx, userID)
}

func (r *mongoProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	doc := toProfileDoc(p)
	res, err := r.profiles.UpdateOne(ctx,
		bson.M{"user": p.User.ID.String()},
		bson.M{"$set": bson.M{
			"experience": doc.Experience,
			"education":  doc.Education,
			"updated_at": p.UpdatedAt,
		}},
	)
	if err != nil {
		return apperror.NewInternal("failed to save profile", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("Profile not found", "no profile for user "+p.User.ID.String())
	}
	return nil
}

func (r *mongoProfileRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.profiles.DeleteOne(ctx, bson.M{"user": userID.String()}); err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}

func toProfileDoc(p *profile.Profile) mongoProfileDoc {
	doc := mongoProfileDoc{
		ID:             p.ID.String(),
		User:           p.User.ID.String(),
		Handle:         p.Handle,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GitHubUsername: p.GitHubUsername,
		Skills:         p.Skills,
		Social:         mongoSocialDoc(p.Social),
		Experience:     make([]mongoExperienceDoc, len(p.Experience)),
		Education:      make([]mongoEducationDoc, len(p.Education)),
		Date:           p.Date,
		UpdatedAt:      p.UpdatedAt,
	}
	if doc.Skills == nil {
		doc.Skills = []string{}
	}
	for i, e := range p.Experience {
		doc.Experience[i] = mongoExperienceDoc{
			ID: e.ID.String(), Title: e.Title, Company: e.Company, Location: e.Location,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		}
	}
	for i, e := range p.Education {
		doc.Education[i] = mongoEducationDoc{
			ID: e.ID.String(), School: e.School, Degree: e.Degree, FieldOfStudy: e.FieldOfStudy,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		}
	}
	return doc
}

func (r *mongoProfileRepo) toDomain(doc *mongoProfileDoc) *profile.Profile {
	p := &profile.Profile{
		ID:             r.parseID(doc.ID, "profile_id"),
		User:           profile.Owner{ID: r.parseID(doc.User, "user_id")},
		Handle:         doc.Handle,
		Company:        doc.Company,
		Website:        doc.Website,
		Location:       doc.Location,
		Bio:            doc.Bio,
		Status:         doc.Status,
		GitHubUsername: doc.GitHubUsername,
		Skills:         doc.Skills,
		Social:         profile.Social(doc.Social),
		Experience:     make([]profile.Experience, len(doc.Experience)),
		Education:      make([]profile.Education, len(doc.Education)),
		Date:           doc.Date,
		UpdatedAt:      doc.UpdatedAt,
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if doc.Owner != nil {
		p.User.Name = doc.Owner.Name
		p.User.Avatar = doc.Owner.Avatar
	}
	for i, e := range doc.Experience {
		p.Experience[i] = profile.Experience{
			ID: r.parseID(e.ID, "experience_id"), Title: e.Title, Company: e.Company, Location: e.Location,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		}
	}
	for i, e := range doc.Education {
		p.Education[i] = profile.Education{
			ID: r.parseID(e.ID, "education_id"), School: e.School, Degree: e.Degree, FieldOfStudy: e.FieldOfStudy,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		}
	}
	return p
}

func (r *mongoProfileRepo) parseID(raw, field string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		r.logger.Warn("Stored document carries a malformed id", zap.String("field", field), zap.String("value", raw))
		return uuid.Nil
	}
	return id
}
