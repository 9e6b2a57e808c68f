package app

import (
	"lumo_backend/internal/config"
	"lumo_backend/internal/middleware"
	"lumo_backend/internal/model"
	"lumo_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		api.GET("/internships", c.internship.List)
		api.GET("/internships/:id", c.internship.Detail)
		api.GET("/internships/:id/questions", c.internship.Questions)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/profile", c.auth.GetProfile)
		authed.PUT("/user/profile", c.user.UpdateProfile)
		authed.POST("/user/resume/upload", c.user.UploadResume)

		authed.POST("/chat", c.chat.SendMessage)
		authed.GET("/chat/history", c.chat.History)
		authed.POST("/logout", c.chat.Logout)

		authed.POST("/code/run", c.code.Run)
		authed.GET("/analysis/swot", c.analysis.Swot)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/internships/:id/questions/generate", c.internship.GenerateQuestions)
	}
}
