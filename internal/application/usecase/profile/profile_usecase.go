package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/application/service"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

const (
	MsgNoProfile   = "There is no profile for this user"
	MsgUserRemoved = "User Removed"
	MsgProfileMiss = "Profile not found"
)

var tracer = otel.Tracer("profile_usecase")

const defaultPublishTimeout = 5 * time.Second

type ProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
	now         func() time.Time

	publishTimeout time.Duration
}

func NewProfileUseCase(pRepo profile.Repository, uRepo user.Repository, publisher service.EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: pRepo,
		userRepo:    uRepo,
		publisher:   publisher,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },

		publishTimeout: defaultPublishTimeout,
	}
}

type GetOwnProfileInput struct {
	UserID uuid.UUID
}

type ProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetOwn(ctx context.Context, input GetOwnProfileInput) (*ProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteGetOwn", trace.WithAttributes(attribute.String("user_id", input.UserID.String())))
	defer span.End()

	p, err := uc.ownProfile(ctx, input.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &ProfileOutput{Profile: p}, nil
}

type UpsertProfileInput struct {
	UserID uuid.UUID
	Fields profile.Fields
}

type UpsertProfileOutput struct {
	Profile *profile.Profile
	Created bool
}

// ExecuteUpsert creates the caller's profile or updates the supplied fields of
// the existing one.
func (uc *ProfileUseCase) ExecuteUpsert(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteUpsert", trace.WithAttributes(attribute.String("user_id", input.UserID.String())))
	defer span.End()

	_, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	switch {
	case err == nil:
		out, err := uc.update(ctx, input)
		if err != nil {
			span.RecordError(err)
		}
		return out, err
	case !errors.Is(err, apperror.ErrNotFound):
		span.RecordError(err)
		return nil, fmt.Errorf("load profile failed: %w", err)
	}

	p := profile.New(input.UserID, uc.now())
	input.Fields.Apply(p)

	if err := uc.profileRepo.Create(ctx, p); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			uc.logger.Info("Profile created concurrently, falling back to update", zap.String("user_id", input.UserID.String()))
			out, err := uc.update(ctx, input)
			if err != nil {
				span.RecordError(err)
			}
			return out, err
		}
		span.RecordError(err)
		return nil, fmt.Errorf("create profile failed: %w", err)
	}

	stored, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("reload profile failed: %w", err)
	}

	uc.publish(ctx, service.ProfileEventCreated, stored)
	span.SetAttributes(attribute.Bool("created", true))
	return &UpsertProfileOutput{Profile: stored, Created: true}, nil
}

func (uc *ProfileUseCase) update(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	p, err := uc.profileRepo.UpdateFields(ctx, input.UserID, input.Fields, uc.now())
	if err != nil {
		return nil, fmt.Errorf("update profile failed: %w", err)
	}
	uc.publish(ctx, service.ProfileEventUpdated, p)
	return &UpsertProfileOutput{Profile: p}, nil
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

func (uc *ProfileUseCase) ExecuteList(ctx context.Context) (*ListProfilesOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteList")
	defer span.End()

	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list profiles failed: %w", err)
	}
	span.SetAttributes(attribute.Int("count", len(profiles)))
	return &ListProfilesOutput{Profiles: profiles}, nil
}

type GetByUserInput struct {
	RawUserID string
}

// ExecuteGetByUser answers the same not-found error for an unknown and for a
// malformed id; only the log line tells them apart.
func (uc *ProfileUseCase) ExecuteGetByUser(ctx context.Context, input GetByUserInput) (*ProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteGetByUser", trace.WithAttributes(attribute.String("raw_user_id", input.RawUserID)))
	defer span.End()

	userID, err := user.ParseID(input.RawUserID)
	if err != nil {
		uc.logger.Warn("Profile lookup with malformed user id", zap.String("raw_user_id", input.RawUserID), zap.Error(err))
		span.RecordError(err)
		return nil, err
	}

	p, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			uc.logger.Info("No profile for user", zap.String("user_id", userID.String()))
			return nil, apperror.NewNotFound(MsgProfileMiss, "no profile for user "+userID.String())
		}
		span.RecordError(err)
		return nil, fmt.Errorf("get profile by user failed: %w", err)
	}
	return &ProfileOutput{Profile: p}, nil
}

type DeleteAccountInput struct {
	UserID uuid.UUID
}

type DeleteAccountOutput struct {
	Message string
}

// ExecuteDeleteAccount removes the profile and then the user. The two removals
// are independent; a failure of the second leaves the first in place.
func (uc *ProfileUseCase) ExecuteDeleteAccount(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteDeleteAccount", trace.WithAttributes(attribute.String("user_id", input.UserID.String())))
	defer span.End()

	if err := uc.profileRepo.DeleteByUserID(ctx, input.UserID); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("delete profile failed: %w", err)
	}
	if err := uc.userRepo.DeleteByID(ctx, input.UserID); err != nil {
		uc.logger.Error("Profile removed but user removal failed", err, zap.String("user_id", input.UserID.String()))
		span.RecordError(err)
		return nil, fmt.Errorf("delete user failed: %w", err)
	}

	uc.publish(ctx, service.ProfileEventDeleted, &profile.Profile{User: profile.Owner{ID: input.UserID}})
	return &DeleteAccountOutput{Message: MsgUserRemoved}, nil
}

func (uc *ProfileUseCase) ownProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound(MsgNoProfile, "no profile for user "+userID.String())
		}
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return p, nil
}

// publish sends the event before the request returns, so events of one user
// leave in the order their writes committed. Failures are logged only.
func (uc *ProfileUseCase) publish(ctx context.Context, eventType service.ProfileEventType, p *profile.Profile) {
	evt := service.ProfileEvent{
		EventType:  eventType,
		ProfileID:  p.ID,
		UserID:     p.User.ID,
		OccurredAt: uc.now(),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.publishTimeout)
	defer cancel()
	if err := uc.publisher.PublishProfileEvent(pubCtx, evt); err != nil {
		uc.logger.Error("Failed to publish profile event", err,
			zap.String("event_type", string(evt.EventType)),
			zap.String("user_id", evt.UserID.String()),
		)
	}
}
