package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/pkg/apperror"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `json:"-"`
	Date         time.Time `json:"date"`
}

// ParseID validates a client supplied user reference.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewMalformed("Profile not found", "malformed user id '"+raw+"'", err)
	}
	return id, nil
}

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// Upsert inserts the user or refreshes name, avatar and password keyed by email.
	Upsert(ctx context.Context, u *User) error
	// DeleteByID succeeds when no user matches.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
