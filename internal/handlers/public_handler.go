package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/portfolio/internal/models"
	"github.com/joshua-takyi/portfolio/internal/services"
	"github.com/joshua-takyi/portfolio/internal/store"
)

// GetContent serves the whole public snapshot in one response. Contact
// messages are admin-only and stripped here.
func GetContent(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := s.Snapshot()
		c.JSON(200, models.SuccessResponse(gin.H{
			"profile":        snap.Profile,
			"skills":         snap.Skills,
			"projects":       snap.Projects,
			"certifications": snap.Certifications,
			"timeline":       snap.Timeline,
			"settings":       snap.Settings,
			"fetched_at":     snap.FetchedAt,
		}, ""))
	}
}

func GetProfile(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, models.SuccessResponse(s.Snapshot().Profile, ""))
	}
}

func GetSkills(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, models.SuccessResponse(s.Snapshot().Skills, ""))
	}
}

func GetProjects(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, models.SuccessResponse(s.Snapshot().Projects, ""))
	}
}

func GetCertifications(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, models.SuccessResponse(s.Snapshot().Certifications, ""))
	}
}

func GetTimeline(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, models.SuccessResponse(s.Snapshot().Timeline, ""))
	}
}

func GetSettings(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, models.SuccessResponse(s.Snapshot().Settings, ""))
	}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact is the one public write: it inserts a contact-message row
// with status unread. Validation happens before any remote call.
func SubmitContact(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		created, err := s.SubmitMessage(c.Request.Context(), &models.ContactMessage{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Body:    req.Message,
		})
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(201, models.SuccessResponse(created, "message received"))
	}
}

// SubmitHireMe is the public lead-capture form; leads land in the same
// message table flagged hire_me.
func SubmitHireMe(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		created, err := s.SubmitMessage(c.Request.Context(), &models.ContactMessage{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Body:    req.Message,
			HireMe:  true,
		})
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(201, models.SuccessResponse(created, "lead received"))
	}
}

func GetGithubStats(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := ss.CachedStats(c.Request.Context())
		if err != nil {
			c.JSON(404, models.ErrorResponse("github stats not synced yet"))
			return
		}
		c.JSON(200, models.SuccessResponse(stats, ""))
	}
}

func GetAchievements(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		achievements, err := ss.Achievements(c.Request.Context())
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}
		if achievements == nil {
			achievements = []*models.Achievement{}
		}
		c.JSON(200, models.SuccessResponse(achievements, ""))
	}
}
