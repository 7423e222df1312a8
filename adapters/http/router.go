package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Profile *ProfileHandler
	Github  *GithubHandler
}

// RegisterRoutes mounts the profile API under /api/profile. The profile list,
// lookup by user and the Github proxy are public.
func RegisterRoutes(router *gin.Engine, h Handlers, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		profiles := api.Group("/profile")
		{
			profiles.GET("", h.Profile.List)
			profiles.GET("/user/:user_id", h.Profile.GetByUser)
			profiles.GET("/github/:username", h.Github.ListRepos)

			private := profiles.Group("")
			private.Use(authMiddleware)
			{
				private.GET("/me", h.Profile.GetMe)
				private.POST("", h.Profile.Upsert)
				private.DELETE("", h.Profile.DeleteAccount)

				private.PUT("/experience", h.Profile.AddExperience)
				private.DELETE("/experience/:exp_id", h.Profile.RemoveExperience)

				private.PUT("/education", h.Profile.AddEducation)
				private.DELETE("/education/:edu_id", h.Profile.RemoveEducation)
			}
		}
	}
}
