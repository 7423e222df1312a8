package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	githubUC "github.com/khoahotran/devconnect/internal/application/usecase/github"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type GithubHandler struct {
	repoUseCase *githubUC.RepositoryUseCase
	logger      logger.Logger
}

func NewGithubHandler(uc *githubUC.RepositoryUseCase, log logger.Logger) *GithubHandler {
	return &GithubHandler{repoUseCase: uc, logger: log}
}

// ListRepos passes the upstream JSON body through untouched.
func (h *GithubHandler) ListRepos(c *gin.Context) {
	output, err := h.repoUseCase.Execute(c.Request.Context(), githubUC.ListReposInput{
		Username: c.Param("username"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", output.Repos)
}
