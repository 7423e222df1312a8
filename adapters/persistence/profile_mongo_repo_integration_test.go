package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type MongoRepoIntegrationTestSuite struct {
	suite.Suite
	container   *mongodb.MongoDBContainer
	client      *mongo.Client
	profileRepo profile.Repository
	userRepo    user.Repository
}

func (s *MongoRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	log := logger.NewNop()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		s.T().Fatalf("Failed to start mongo container: %s", err)
	}
	s.container = container

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	var cfg config.Config
	cfg.Mongo.URI = uri
	client, err := NewMongoClient(ctx, cfg, log)
	if err != nil {
		s.T().Fatalf("Failed to connect mongo: %s", err)
	}
	s.client = client

	db := client.Database("devconnect_test")
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		s.T().Fatalf("Failed to create indexes: %s", err)
	}

	s.profileRepo = NewMongoProfileRepo(db, log)
	s.userRepo = NewMongoUserRepo(db, log)
}

func (s *MongoRepoIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Disconnect(context.Background())
	}
	if s.container != nil {
		if err := s.container.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate mongo container: %s", err)
		}
	}
}

func TestMongoRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(MongoRepoIntegrationTestSuite))
}

func (s *MongoRepoIntegrationTestSuite) Test_RepositoryContract() {
	runRepositoryContract(s.T(), s.profileRepo, s.userRepo)
}

func (s *MongoRepoIntegrationTestSuite) Test_ProfileOutlivesUser() {
	ctx := context.Background()

	u := &user.User{Name: "Gone", Email: "gone@example.com"}
	s.Require().NoError(s.userRepo.Upsert(ctx, u))

	p := profile.New(u.ID, time.Now().UTC())
	p.Status = "Developer"
	s.Require().NoError(s.profileRepo.Create(ctx, p))
	s.Require().NoError(s.userRepo.DeleteByID(ctx, u.ID))

	got, err := s.profileRepo.FindByUserID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u.ID, got.User.ID)
	s.Equal("", got.User.Name)
	s.Equal([]string{}, got.Skills)
}
