package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func selectProfiles() sq.SelectBuilder {
	return psql.Select(
		"p.id", "p.user_id", "COALESCE(u.name, '')", "COALESCE(u.avatar, '')",
		"p.handle", "p.company", "p.website", "p.location", "p.bio", "p.status", "p.githubusername",
		"p.skills", "p.social", "p.experience", "p.education", "p.date", "p.updated_at",
	).
		From("profiles p").
		LeftJoin("users u ON u.id = p.user_id")
}

func scanProfile(row pgx.Row, l logger.Logger) (*profile.Profile, error) {
	p := &profile.Profile{}
	var socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar,
		&p.Handle, &p.Company, &p.Website, &p.Location, &p.Bio, &p.Status, &p.GitHubUsername,
		&p.Skills, &socialBytes, &experienceBytes, &educationBytes, &p.Date, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Profile not found", "no profile row")
		}
		return nil, mapPgError("failed to scan profile row", err)
	}

	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		l.Warn("Failed to unmarshal social", zap.String("profile_id", p.ID.String()), zap.Error(err))
		p.Social = profile.Social{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil || p.Experience == nil {
		if err != nil {
			l.Warn("Failed to unmarshal experience", zap.String("profile_id", p.ID.String()), zap.Error(err))
		}
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil || p.Education == nil {
		if err != nil {
			l.Warn("Failed to unmarshal education", zap.String("profile_id", p.ID.String()), zap.Error(err))
		}
		p.Education = []profile.Education{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

func (r *postgresProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query, args, err := selectProfiles().Where(sq.Eq{"p.user_id": userID}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find profile query", err)
	}
	return scanProfile(r.db.QueryRow(ctx, query, args...), r.logger)
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	query, args, err := selectProfiles().OrderBy("p.date ASC").ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list profiles query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows, r.logger)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return apperror.NewInternal("failed to marshal social", err)
	}
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	query, args, err := psql.Insert("profiles").
		Columns("id", "user_id", "handle", "company", "website", "location", "bio", "status", "githubusername",
			"skills", "social", "experience", "education", "date", "updated_at").
		Values(p.ID, p.User.ID, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GitHubUsername,
			p.Skills, socialBytes, experienceBytes, educationBytes, p.Date, p.UpdatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build insert profile query", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return mapPgError("failed to insert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) UpdateFields(ctx context.Context, userID uuid.UUID, f profile.Fields, now time.Time) (*profile.Profile, error) {
	builder := psql.Update("profiles").
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID})

	for _, c := range f.Changes() {
		builder = builder.Set(c.Field, c.Value)
	}

	if social := f.SocialChanges(); len(social) > 0 {
		patch := make(map[string]string, len(social))
		for _, c := range social {
			patch[c.Field] = c.Value.(string)
		}
		patchBytes, err := json.Marshal(patch)
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal social patch", err)
		}
		builder = builder.Set("social", sq.Expr("social || ?::jsonb", patchBytes))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build update profile query", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, mapPgError("failed to update profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperror.NewNotFound("Profile not found", "no profile for user "+userID.String())
	}
	return r.FindByUserID(ctx, userID)
}

func (r *postgresProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	query := `
		UPDATE profiles SET
			experience = $2, education = $3, updated_at = $4
		WHERE user_id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, p.User.ID, experienceBytes, educationBytes, p.UpdatedAt)
	if err != nil {
		return mapPgError("failed to save profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("Profile not found", "no profile for user "+p.User.ID.String())
	}
	return nil
}

func (r *postgresProfileRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return mapPgError("failed to delete profile", err)
	}
	return nil
}
