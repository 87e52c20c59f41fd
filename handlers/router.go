package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gatag/api/middleware"
	"gatag/api/utils"
)

type RouterDeps struct {
	Users          UserRepository
	Profiles       ProfileRepository
	Renders        RenderRecorder
	Stats          RenderStats
	Tokens         *utils.TokenManager
	APIKey         string
	FrontendOrigin string
	Logger         *zap.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	auth := NewAuthHandlers(d.Users, d.Tokens, d.Logger)
	profiles := NewProfileHandlers(d.Profiles, d.Logger)
	snippets := NewSnippetHandlers(d.Profiles, d.Renders, d.Logger)
	stats := NewStatsHandlers(d.Stats, d.Logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORSMiddleware(d.FrontendOrigin))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/signup", auth.Signup)
		api.POST("/login", auth.Login)
		api.POST("/logout", auth.Logout)
		api.POST("/snippets/event", snippets.Event)

		protected := api.Group("/")
		protected.Use(middleware.AuthRequired(d.Tokens, d.APIKey, d.Logger))
		{
			protected.POST("/profiles", profiles.Create)
			protected.GET("/profiles", profiles.List)
			protected.GET("/profiles/:id", profiles.Get)
			protected.POST("/profiles/:id/custom-vars", profiles.AddCustomVar)
			protected.GET("/profiles/:id/init", snippets.BasicInit)
			protected.POST("/profiles/:id/campaign", snippets.Campaign)
			protected.POST("/profiles/:id/pageview", snippets.Pageview)
			protected.POST("/profiles/:id/social", snippets.Social)

			statsGroup := protected.Group("/stats")
			{
				statsGroup.GET("/render-counts", stats.RenderCounts)
				statsGroup.GET("/top-accounts", stats.TopAccounts)
			}
		}
	}

	return r
}
