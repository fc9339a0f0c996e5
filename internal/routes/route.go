package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/portfolio/internal/container"
	"github.com/joshua-takyi/portfolio/internal/handlers"
	"github.com/joshua-takyi/portfolio/internal/middleware"
	"github.com/joshua-takyi/portfolio/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{container.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, models.ErrorResponse("route not found"))
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "portfolio-api",
			})
		})

		// public content reads, served from the snapshot
		v1.GET("/content", handlers.GetContent(container.Store))
		v1.GET("/profile", handlers.GetProfile(container.Store))
		v1.GET("/skills", handlers.GetSkills(container.Store))
		v1.GET("/projects", handlers.GetProjects(container.Store))
		v1.GET("/certifications", handlers.GetCertifications(container.Store))
		v1.GET("/timeline", handlers.GetTimeline(container.Store))
		v1.GET("/settings", handlers.GetSettings(container.Store))
		v1.GET("/stats/github", handlers.GetGithubStats(container.StatsService))
		v1.GET("/stats/achievements", handlers.GetAchievements(container.StatsService))

		// public writes
		v1.POST("/contact", handlers.SubmitContact(container.Store))
		v1.POST("/hire-me", handlers.SubmitHireMe(container.Store))

		// auth
		v1.POST("/signup", handlers.SignUp(container.AuthService))
		v1.POST("/login", handlers.SignIn(container.AuthService))
		v1.POST("/logout", handlers.SignOut())
	}

	authed := v1.Group("/")
	authed.Use(middleware.AuthMiddleware(container.AuthService, container.Logger))
	authed.GET("/session", handlers.Session())

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/snapshot", handlers.AdminSnapshot(container.Store))
		admin.GET("/dashboard", handlers.Dashboard(container.Store))

		admin.PUT("/profile", handlers.SaveProfile(container.Store))
		admin.POST("/profile/avatar", handlers.UploadAvatar(container.Cloudinary, container.Store))

		admin.POST("/skills", handlers.CreateSkill(container.Store))
		admin.PATCH("/skills/:ref", handlers.UpdateSkill(container.Store))
		admin.DELETE("/skills/:ref", handlers.DeleteSkill(container.Store))

		admin.POST("/projects", handlers.CreateProject(container.Store))
		admin.PATCH("/projects/:ref", handlers.UpdateProject(container.Store))
		admin.DELETE("/projects/:ref", handlers.DeleteProject(container.Store))

		admin.POST("/certifications", handlers.CreateCertification(container.Store))
		admin.PATCH("/certifications/:ref", handlers.UpdateCertification(container.Store))
		admin.DELETE("/certifications/:ref", handlers.DeleteCertification(container.Store))

		admin.POST("/timeline", handlers.CreateTimelineEvent(container.Store))
		admin.PATCH("/timeline/:ref", handlers.UpdateTimelineEvent(container.Store))
		admin.DELETE("/timeline/:ref", handlers.DeleteTimelineEvent(container.Store))
		admin.POST("/timeline/:ref/move", handlers.MoveTimelineEvent(container.Store))

		admin.GET("/messages", handlers.ListMessages(container.Store))
		admin.PATCH("/messages/:id/status", handlers.SetMessageStatus(container.Store))
		admin.DELETE("/messages/:id", handlers.DeleteMessage(container.Store))

		admin.PUT("/settings/:key", handlers.PutSetting(container.Store))
		admin.DELETE("/settings/:key", handlers.DeleteSetting(container.Store))

		admin.POST("/images", handlers.UploadImage(container.SupabaseClient.Storage))
		admin.POST("/stats/refresh", handlers.RefreshStats(container.StatsService))
	}

	return r
}
