package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/application/service"
	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

const (
	MsgNoGithubProfile = "No Github Profile found"

	defaultBaseURL = "https://api.github.com"
	userAgent      = "devconnect-api"
	repoLimit      = 5
)

// Config carries the OAuth app credentials sent with every request.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

func ConfigFrom(cfg config.Config) Config {
	return Config{
		ClientID:     cfg.Github.ClientID,
		ClientSecret: cfg.Github.ClientSecret,
		BaseURL:      cfg.Github.BaseURL,
		Timeout:      cfg.Github.Timeout,
	}
}

type GithubAdapter struct {
	cfg    Config
	client *http.Client
	logger logger.Logger
}

var _ service.RepositoryHost = (*GithubAdapter)(nil)

func NewGithubAdapter(cfg Config, log logger.Logger) *GithubAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		log.Warn("Github client credentials are empty, requests will be rate limited")
	}
	return &GithubAdapter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: log,
	}
}

func (a *GithubAdapter) reposURL(username string) string {
	q := url.Values{}
	q.Set("per_page", fmt.Sprint(repoLimit))
	q.Set("sort", "created:asc")
	q.Set("client_id", a.cfg.ClientID)
	q.Set("client_secret", a.cfg.ClientSecret)
	return fmt.Sprintf("%s/users/%s/repos?%s", a.cfg.BaseURL, url.PathEscape(username), q.Encode())
}

// ListRecentRepos fetches up to five repositories of username. Any non-200
// answer is reported as a missing profile, whatever the upstream status was.
func (a *GithubAdapter) ListRecentRepos(ctx context.Context, username string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.reposURL(username), nil)
	if err != nil {
		return nil, apperror.NewInternal("failed to build github request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("Github request failed", err, zap.String("username", username))
		return nil, apperror.NewTransport("github request for "+username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Info("Github answered non-200",
			zap.String("username", username),
			zap.Int("status", resp.StatusCode),
		)
		return nil, apperror.NewUpstreamNotFound(MsgNoGithubProfile, fmt.Sprintf("github status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewTransport("read github body for "+username, err)
	}
	if !json.Valid(body) {
		return nil, apperror.NewTransport("github body for "+username+" is not JSON", nil)
	}
	return json.RawMessage(body), nil
}
