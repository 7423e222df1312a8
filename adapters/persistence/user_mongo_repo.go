package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type mongoUserDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	Avatar       string    `bson:"avatar"`
	PasswordHash string    `bson:"password"`
	Date         time.Time `bson:"date"`
}

type mongoUserRepo struct {
	users  *mongo.Collection
	logger logger.Logger
}

func NewMongoUserRepo(db *mongo.Database, logger logger.Logger) user.Repository {
	return &mongoUserRepo{users: db.Collection(mongoUsersCollection), logger: logger}
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var doc mongoUserDoc
	err := r.users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("User not found", "no user "+id.String())
		}
		return nil, apperror.NewInternal("error when query user", err)
	}
	return &user.User{
		ID:           id,
		Name:         doc.Name,
		Email:        doc.Email,
		Avatar:       doc.Avatar,
		PasswordHash: doc.PasswordHash,
		Date:         doc.Date,
	}, nil
}

func (r *mongoUserRepo) Upsert(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	update := bson.M{
		"$set": bson.M{
			"name":     u.Name,
			"avatar":   u.Avatar,
			"password": u.PasswordHash,
		},
		"$setOnInsert": bson.M{
			"_id":  u.ID.String(),
			"date": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc mongoUserDoc
	if err := r.users.FindOneAndUpdate(ctx, bson.M{"email": u.Email}, update, opts).Decode(&doc); err != nil {
		return apperror.NewInternal("failed to upsert user", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return apperror.NewMalformed("User not found", "stored user id '"+doc.ID+"'", err)
	}
	u.ID = id
	u.Date = doc.Date
	return nil
}

func (r *mongoUserRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := r.users.DeleteOne(ctx, bson.M{"_id": id.String()}); err != nil {
		return apperror.NewInternal("failed to delete user", err)
	}
	return nil
}
