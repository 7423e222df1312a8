package service

import (
	"context"
	"encoding/json"
)

// RepositoryHost lists public repositories of a code hosting account.
type RepositoryHost interface {
	// ListRecentRepos returns the upstream JSON body untouched.
	ListRecentRepos(ctx context.Context, username string) (json.RawMessage, error)
}
