package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/portfolio/internal/models"
	"github.com/joshua-takyi/portfolio/internal/store"
)

// Admin CRUD over the content tables. Row references come from the :ref path
// parameter; a UUID addresses a persisted row, anything else is treated as a
// pending title reference and resolved by title+owner before the write.

func parseRef(c *gin.Context) (models.RowRef, bool) {
	ref, err := models.ParseRowRef(c.Param("ref"))
	if err != nil {
		c.JSON(400, models.ErrorResponse(err.Error()))
		return models.RowRef{}, false
	}
	return ref, true
}

func SaveProfile(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profile models.Profile
		if err := c.ShouldBindJSON(&profile); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		saved, err := s.SaveProfile(c.Request.Context(), &profile)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(saved, "profile saved"))
	}
}

func CreateSkill(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var skill models.Skill
		if err := c.ShouldBindJSON(&skill); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		created, err := s.CreateSkill(c.Request.Context(), &skill)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(201, models.SuccessResponse(created, "skill created"))
	}
}

func UpdateSkill(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := parseRef(c)
		if !ok {
			return
		}

		var changes map[string]interface{}
		if err := c.ShouldBindJSON(&changes); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := s.UpdateSkill(c.Request.Context(), ref, changes)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(updated, "skill updated"))
	}
}

func DeleteSkill(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := parseRef(c)
		if !ok {
			return
		}

		if err := s.DeleteSkill(c.Request.Context(), ref); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(nil, "skill deleted"))
	}
}

func CreateProject(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var project models.Project
		if err := c.ShouldBindJSON(&project); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		created, err := s.CreateProject(c.Request.Context(), &project)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(201, models.SuccessResponse(created, "project created"))
	}
}

func UpdateProject(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := parseRef(c)
		if !ok {
			return
		}

		var changes map[string]interface{}
		if err := c.ShouldBindJSON(&changes); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := s.UpdateProject(c.Request.Context(), ref, changes)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(updated, "project updated"))
	}
}

func DeleteProject(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := parseRef(c)
		if !ok {
			return
		}

		if err := s.DeleteProject(c.Request.Context(), ref); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(nil, "project deleted"))
	}
}

func CreateCertification(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cert models.Certification
		if err := c.ShouldBindJSON(&cert); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		created, err := s.CreateCertification(c.Request.Context(), &cert)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(201, models.SuccessResponse(created, "certification created"))
	}
}

func UpdateCertification(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := parseRef(c)
		if !ok {
			return
		}

		var changes map[string]interface{}
		if err := c.ShouldBindJSON(&changes); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := s.UpdateCertification(c.Request.Context(), ref, changes)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(updated, "certification updated"))
	}
}

func DeleteCertification(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := parseRef(c)
		if !ok {
			return
		}

		if err := s.DeleteCertification(c.Request.Context(), ref); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(nil, "certification deleted"))
	}
}

func CreateTimelineEvent(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event models.TimelineEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		created, err := s.CreateTimelineEvent(c.Request.Context(), &event)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(201, models.SuccessResponse(created, "timeline event created"))
	}
}

func UpdateTimelineEvent(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := parseRef(c)
		if !ok {
			return
		}

		var changes map[string]interface{}
		if err := c.ShouldBindJSON(&changes); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := s.UpdateTimelineEvent(c.Request.Context(), ref, changes)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(updated, "timeline event updated"))
	}
}

func DeleteTimelineEvent(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := parseRef(c)
		if !ok {
			return
		}

		if err := s.DeleteTimelineEvent(c.Request.Context(), ref); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(nil, "timeline event deleted"))
	}
}

// MoveTimelineEvent handles the manual up/down reordering in the admin list.
func MoveTimelineEvent(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := parseRef(c)
		if !ok {
			return
		}

		var req struct {
			Direction string `json:"direction" binding:"required,oneof=up down"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		if err := s.MoveTimelineEvent(c.Request.Context(), ref, req.Direction); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(nil, "timeline reordered"))
	}
}
