package handlers

import (
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/portfolio/internal/helpers"
	"github.com/joshua-takyi/portfolio/internal/models"
	"github.com/joshua-takyi/portfolio/internal/services"
	"github.com/joshua-takyi/portfolio/internal/store"
	storage_go "github.com/supabase-community/storage-go"
)

// AdminSnapshot returns the full snapshot including contact messages,
// which the public content endpoint strips.
func AdminSnapshot(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, models.SuccessResponse(s.Snapshot(), ""))
	}
}

// Dashboard serves the per-table row counts behind the admin overview.
func Dashboard(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, models.SuccessResponse(s.DashboardCounts(c.Request.Context()), ""))
	}
}

// pageOf slices one page out of the message list; page is 1-based and an
// out-of-range page comes back empty rather than erroring.
func pageOf(messages []*models.ContactMessage, page, limit int) []*models.ContactMessage {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	start := (page - 1) * limit
	if start >= len(messages) {
		return []*models.ContactMessage{}
	}
	end := start + limit
	if end > len(messages) {
		end = len(messages)
	}
	return messages[start:end]
}

const defaultPageSize = 20

func ListMessages(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages := s.Snapshot().Messages
		if status := c.Query("status"); status != "" {
			filtered := make([]*models.ContactMessage, 0, len(messages))
			for _, msg := range messages {
				if string(msg.Status) == status {
					filtered = append(filtered, msg)
				}
			}
			messages = filtered
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = defaultPageSize
		}

		c.JSON(200, models.PaginatedResponse(pageOf(messages, page, limit), page, limit, len(messages)))
	}
}

func SetMessageStatus(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, models.ErrorResponse("invalid message ID format"))
			return
		}

		var req struct {
			Status models.MessageStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		if err := s.SetMessageStatus(c.Request.Context(), id, req.Status); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(nil, "message status updated"))
	}
}

func DeleteMessage(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, models.ErrorResponse("invalid message ID format"))
			return
		}

		if err := s.DeleteMessage(c.Request.Context(), id); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(nil, "message deleted"))
	}
}

func PutSetting(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var setting models.SiteSetting
		if err := c.ShouldBindJSON(&setting); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}
		setting.Key = c.Param("key")

		if err := s.PutSetting(c.Request.Context(), &setting); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(&setting, "setting saved"))
	}
}

func DeleteSetting(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.DeleteSetting(c.Request.Context(), c.Param("key")); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(nil, "setting deleted"))
	}
}

// UploadImage stores a multipart file in the Supabase images bucket and
// returns its public URL for use in content rows.
func UploadImage(storage *storage_go.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(400, models.ErrorResponse("file is required"))
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}
		defer src.Close()

		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		uploadPath := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), path.Base(file.Filename))
		url, err := helpers.UploadImage(storage, uploadPath, contentType, src)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(201, models.SuccessResponse(gin.H{"url": url}, "image uploaded"))
	}
}

// UploadAvatar runs the profile photo through Cloudinary and saves the served
// URL onto the profile row.
func UploadAvatar(cld *cloudinary.Cloudinary, s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Image string `json:"image" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, models.ErrorResponse(err.Error()))
			return
		}

		url, err := helpers.UploadAvatar(c.Request.Context(), cld, req.Image)
		if err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		profile := s.Snapshot().Profile
		profile.AvatarURL = url
		if _, err := s.SaveProfile(c.Request.Context(), profile); err != nil {
			c.JSON(500, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(gin.H{"url": url}, "avatar updated"))
	}
}

// RefreshStats is the manual trigger for the GitHub stats sync.
func RefreshStats(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := ss.Refresh(c.Request.Context())
		if err != nil {
			c.JSON(502, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(200, models.SuccessResponse(stats, "github stats refreshed"))
	}
}
