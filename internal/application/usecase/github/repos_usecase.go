package github

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/khoahotran/devconnect/internal/application/service"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

var tracer = otel.Tracer("github_usecase")

type RepositoryUseCase struct {
	host   service.RepositoryHost
	logger logger.Logger
}

func NewRepositoryUseCase(host service.RepositoryHost, log logger.Logger) *RepositoryUseCase {
	return &RepositoryUseCase{host: host, logger: log}
}

type ListReposInput struct {
	Username string
}

type ListReposOutput struct {
	Repos json.RawMessage
}

func (uc *RepositoryUseCase) Execute(ctx context.Context, input ListReposInput) (*ListReposOutput, error) {
	ctx, span := tracer.Start(ctx, "ListRecentRepos", trace.WithAttributes(attribute.String("username", input.Username)))
	defer span.End()

	if input.Username == "" {
		return nil, apperror.NewUpstreamNotFound("No Github Profile found", "empty username")
	}

	repos, err := uc.host.ListRecentRepos(ctx, input.Username)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &ListReposOutput{Repos: repos}, nil
}
