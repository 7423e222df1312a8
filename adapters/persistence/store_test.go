package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

func TestOpenStore_UnknownDriver(t *testing.T) {
	var cfg config.Config
	cfg.Store.Driver = "cassandra"
	_, err := OpenStore(context.Background(), cfg, logger.NewNop())
	assert.ErrorContains(t, err, "cassandra")
}

func TestOpenStore_Memory(t *testing.T) {
	var cfg config.Config
	cfg.Store.Driver = config.StoreDriverMemory
	store, err := OpenStore(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer store.Close()

	runRepositoryContract(t, store.Profiles, store.Users)
}

// runRepositoryContract checks the behaviour every backend shares.
func runRepositoryContract(t *testing.T, profiles profile.Repository, users user.Repository) {
	t.Helper()
	ctx := context.Background()

	u := &user.User{Name: "Ada", Email: "ada-" + uuid.NewString() + "@example.com", Avatar: "//gravatar/ada", PasswordHash: "hash"}
	require.NoError(t, users.Upsert(ctx, u))
	require.NotEqual(t, uuid.Nil, u.ID)

	again := &user.User{Name: "Ada L.", Email: u.Email, Avatar: u.Avatar, PasswordHash: "hash2"}
	require.NoError(t, users.Upsert(ctx, again))
	assert.Equal(t, u.ID, again.ID)

	_, err := profiles.FindByUserID(ctx, u.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	p := profile.New(u.ID, u.Date.UTC())
	p.Status = "Developer"
	p.Skills = []string{"go", "sql"}
	p.Social.YouTube = "yt/ada"
	require.NoError(t, profiles.Create(ctx, p))

	err = profiles.Create(ctx, profile.New(u.ID, u.Date.UTC()))
	assert.ErrorIs(t, err, apperror.ErrConflict)

	got, err := profiles.FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Ada L.", got.User.Name)
	assert.Equal(t, "//gravatar/ada", got.User.Avatar)
	assert.Equal(t, []string{"go", "sql"}, got.Skills)

	company, twitter := "Acme", "tw/ada"
	updated, err := profiles.UpdateFields(ctx, u.ID, profile.Fields{
		Company: &company,
		Social:  profile.SocialFields{Twitter: &twitter},
	}, got.Date.Add(1))
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "Developer", updated.Status)
	assert.Equal(t, "yt/ada", updated.Social.YouTube)
	assert.Equal(t, "tw/ada", updated.Social.Twitter)

	_, err = profiles.UpdateFields(ctx, uuid.New(), profile.Fields{Company: &company}, got.Date)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	updated.AddExperience(profile.Experience{Title: "E1", Company: "A", From: got.Date})
	updated.AddExperience(profile.Experience{Title: "E2", Company: "B", From: got.Date})
	updated.AddEducation(profile.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: got.Date})
	require.NoError(t, profiles.Save(ctx, updated))

	saved, err := profiles.FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, saved.Experience, 2)
	assert.Equal(t, "E2", saved.Experience[0].Title)
	assert.Equal(t, updated.Experience[0].ID, saved.Experience[0].ID)
	require.Len(t, saved.Education, 1)
	assert.Equal(t, "CS", saved.Education[0].FieldOfStudy)

	list, err := profiles.List(ctx)
	require.NoError(t, err)
	var found bool
	for _, lp := range list {
		if lp.User.ID == u.ID {
			found = true
		}
	}
	assert.True(t, found)

	require.NoError(t, profiles.DeleteByUserID(ctx, u.ID))
	require.NoError(t, profiles.DeleteByUserID(ctx, u.ID))
	_, err = profiles.FindByUserID(ctx, u.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, users.DeleteByID(ctx, u.ID))
	_, err = users.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
