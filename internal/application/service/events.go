package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProfileEventType string

const (
	ProfileEventCreated ProfileEventType = "profile.created"
	ProfileEventUpdated ProfileEventType = "profile.updated"
	ProfileEventDeleted ProfileEventType = "profile.deleted"
)

type ProfileEvent struct {
	EventType  ProfileEventType `json:"event_type"`
	ProfileID  uuid.UUID        `json:"profile_id"`
	UserID     uuid.UUID        `json:"user_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, evt ProfileEvent) error
}
