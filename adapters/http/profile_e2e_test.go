package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/devconnect/adapters/event"
	githubAdapter "github.com/khoahotran/devconnect/adapters/github"
	"github.com/khoahotran/devconnect/adapters/persistence"
	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/auth"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type ProfileE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	dbPool   *pgxpool.Pool
	testUser user.User
	token    string
}

func (s *ProfileE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.dbPool = dbPool

	appLogger := logger.NewZapLogger("development")
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)

	hash, err := auth.HashPassword("e2e_test_password_123")
	s.Require().NoError(err)
	s.testUser = user.User{
		Name:         "E2E",
		Email:        "e2e_test@example.com",
		PasswordHash: hash,
	}
	if err := userRepo.Upsert(context.Background(), &s.testUser); err != nil {
		s.T().Fatalf("E2E test failed to seed user: %v", err)
	}
	if err := profileRepo.DeleteByUserID(context.Background(), s.testUser.ID); err != nil {
		s.T().Fatalf("E2E test failed to reset profile: %v", err)
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "e2e-secret"
	}
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	s.token, err = jwtSvc.GenerateToken(s.testUser.ID)
	if err != nil {
		s.T().Fatalf("E2E test failed to sign token: %v", err)
	}

	s.Router = newTestRouter(profileRepo, userRepo, event.NoopPublisher{},
		githubAdapter.NewGithubAdapter(githubAdapter.ConfigFrom(cfg), appLogger), jwtSvc)
}

func (s *ProfileE2ETestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}

func TestProfileE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(ProfileE2ETestSuite))
}

func (s *ProfileE2ETestSuite) send(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAuthToken, s.token)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *ProfileE2ETestSuite) Test_Profile_Flow() {
	rr := s.send(http.MethodPost, "/api/profile", gin.H{"status": "Developer", "skills": "js, node"})
	assert.Equal(s.T(), http.StatusCreated, rr.Code)

	var created ProfileDTO
	json.Unmarshal(rr.Body.Bytes(), &created)
	assert.Equal(s.T(), []string{"js", "node"}, created.Skills)
	assert.Equal(s.T(), "E2E", created.User.Name)

	rr = s.send(http.MethodPut, "/api/profile/experience", gin.H{"title": "Eng", "company": "Acme", "from": "2020-01-01"})
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	var withExp ProfileDTO
	json.Unmarshal(rr.Body.Bytes(), &withExp)
	if assert.Len(s.T(), withExp.Experience, 1) {
		assert.Equal(s.T(), "Eng", withExp.Experience[0].Title)

		rr = s.send(http.MethodDelete, "/api/profile/experience/"+withExp.Experience[0].ID, nil)
		assert.Equal(s.T(), http.StatusOK, rr.Code)

		var after ProfileDTO
		json.Unmarshal(rr.Body.Bytes(), &after)
		assert.Empty(s.T(), after.Experience)
	}

	rr = s.send(http.MethodDelete, "/api/profile", nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)
}
