package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

func newTestAdapter(t *testing.T, h http.HandlerFunc) *GithubAdapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGithubAdapter(Config{
		ClientID:     "cid",
		ClientSecret: "csecret",
		BaseURL:      srv.URL + "/",
		Timeout:      2 * time.Second,
	}, logger.NewNop())
}

func TestListRecentRepos_PassesBodyThrough(t *testing.T) {
	body := `[{"name":"one","stargazers_count":3},{"name":"two"}]`
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octo/repos", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "5", q.Get("per_page"))
		assert.Equal(t, "created:asc", q.Get("sort"))
		assert.Equal(t, "cid", q.Get("client_id"))
		assert.Equal(t, "csecret", q.Get("client_secret"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	raw, err := a.ListRecentRepos(context.Background(), "octo")
	require.NoError(t, err)
	assert.JSONEq(t, body, string(raw))
}

func TestListRecentRepos_NonOKIsNoProfile(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := a.ListRecentRepos(context.Background(), "nonexistentuser123456")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrUpstreamGone)
		assert.Equal(t, http.StatusNotFound, apperror.ToHTTPStatus(err))
		assert.Equal(t, MsgNoGithubProfile, apperror.ToJSON(err)["msg"])
	}
}

func TestListRecentRepos_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	a := NewGithubAdapter(Config{BaseURL: srv.URL, Timeout: time.Second}, logger.NewNop())
	_, err := a.ListRecentRepos(context.Background(), "octo")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrTransport)
	assert.Equal(t, http.StatusInternalServerError, apperror.ToHTTPStatus(err))
}

func TestListRecentRepos_RejectsNonJSON(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})
	_, err := a.ListRecentRepos(context.Background(), "octo")
	assert.ErrorIs(t, err, apperror.ErrTransport)
}
