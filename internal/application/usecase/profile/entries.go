package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/application/service"
	"github.com/khoahotran/devconnect/internal/domain/profile"
)

type AddExperienceInput struct {
	UserID     uuid.UUID
	Experience profile.Experience
}

func (uc *ProfileUseCase) ExecuteAddExperience(ctx context.Context, input AddExperienceInput) (*ProfileOutput, error) {
	return uc.editEntries(ctx, "ExecuteAddExperience", input.UserID, func(p *profile.Profile) bool {
		p.AddExperience(input.Experience)
		return true
	})
}

type RemoveEntryInput struct {
	UserID  uuid.UUID
	EntryID string
}

// ExecuteRemoveExperience is a no-op when the id is unknown.
func (uc *ProfileUseCase) ExecuteRemoveExperience(ctx context.Context, input RemoveEntryInput) (*ProfileOutput, error) {
	return uc.editEntries(ctx, "ExecuteRemoveExperience", input.UserID, func(p *profile.Profile) bool {
		return p.RemoveExperience(input.EntryID)
	})
}

type AddEducationInput struct {
	UserID    uuid.UUID
	Education profile.Education
}

func (uc *ProfileUseCase) ExecuteAddEducation(ctx context.Context, input AddEducationInput) (*ProfileOutput, error) {
	return uc.editEntries(ctx, "ExecuteAddEducation", input.UserID, func(p *profile.Profile) bool {
		p.AddEducation(input.Education)
		return true
	})
}

func (uc *ProfileUseCase) ExecuteRemoveEducation(ctx context.Context, input RemoveEntryInput) (*ProfileOutput, error) {
	return uc.editEntries(ctx, "ExecuteRemoveEducation", input.UserID, func(p *profile.Profile) bool {
		return p.RemoveEducation(input.EntryID)
	})
}

// editEntries loads the caller's profile, applies edit and writes the whole
// document back when edit reports a change. Concurrent edits are last write wins.
func (uc *ProfileUseCase) editEntries(ctx context.Context, op string, userID uuid.UUID, edit func(*profile.Profile) bool) (*ProfileOutput, error) {
	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(attribute.String("user_id", userID.String())))
	defer span.End()

	p, err := uc.ownProfile(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if !edit(p) {
		uc.logger.Info("Entry not found, profile left unchanged", zap.String("op", op), zap.String("user_id", userID.String()))
		return &ProfileOutput{Profile: p}, nil
	}

	p.UpdatedAt = uc.now()
	if err := uc.profileRepo.Save(ctx, p); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save profile failed: %w", err)
	}

	uc.publish(ctx, service.ProfileEventUpdated, p)
	return &ProfileOutput{Profile: p}, nil
}
