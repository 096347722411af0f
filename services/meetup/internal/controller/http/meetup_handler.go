package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"meetapp/pkg/logger"
	"meetapp/services/meetup/internal/entity"
	"meetapp/services/meetup/internal/usecase"

	"github.com/gin-gonic/gin"
)

type MeetupHandler struct {
	meetupUseCase usecase.MeetupUseCase
	logger        *logger.Logger
}

func NewMeetupHandler(meetupUseCase usecase.MeetupUseCase, logger *logger.Logger) *MeetupHandler {
	return &MeetupHandler{
		meetupUseCase: meetupUseCase,
		logger:        logger,
	}
}

type CreateMeetupRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	BannerURL   string    `json:"banner_url"`
}

type UpdateMeetupRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	BannerURL   *string    `json:"banner_url"`
}

// CreateMeetup godoc
// @Summary      Create a meetup
// @Description  Create a meetup organized by the authenticated user. The date must be in the future.
// @Tags         meetups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        meetup body CreateMeetupRequest true "Meetup data"
// @Success      201  {object}  entity.Meetup
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /meetups [post]
func (h *MeetupHandler) CreateMeetup(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateMeetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meetup, err := h.meetupUseCase.CreateMeetup(userID, req.Title, req.Description, req.Location, req.Date, req.BannerURL)
	if err != nil {
		if errors.Is(err, usecase.ErrPastDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create meetup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meetup"})
		return
	}

	c.JSON(http.StatusCreated, meetup)
}

// GetMeetup godoc
// @Summary      Get meetup by ID
// @Tags         meetups
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meetup ID"
// @Success      200  {object}  entity.Meetup
// @Failure      404  {object}  map[string]string
// @Router       /meetups/{id} [get]
func (h *MeetupHandler) GetMeetup(c *gin.Context) {
	meetupID := c.Param("id")

	meetup, err := h.meetupUseCase.GetMeetup(meetupID)
	if err != nil {
		if errors.Is(err, usecase.ErrMeetupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get meetup %s: %v", meetupID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meetup"})
		return
	}

	c.JSON(http.StatusOK, meetup)
}

// ListMeetups godoc
// @Summary      Browse meetups by day
// @Description  List meetups happening on the given day, 10 per page, ordered by date
// @Tags         meetups
// @Produce      json
// @Security     BearerAuth
// @Param        date query string true "Day (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Success      200  {array}   entity.Meetup
// @Failure      400  {object}  map[string]string
// @Router       /meetups [get]
func (h *MeetupHandler) ListMeetups(c *gin.Context) {
	dateParam := c.Query("date")
	if dateParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	day, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	page := 1
	if pageParam := c.Query("page"); pageParam != "" {
		if parsed, err := strconv.Atoi(pageParam); err == nil && parsed > 0 {
			page = parsed
		}
	}

	meetups, err := h.meetupUseCase.ListByDay(day, page)
	if err != nil {
		h.logger.Error("Failed to list meetups: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meetups"})
		return
	}

	if meetups == nil {
		meetups = []*entity.Meetup{}
	}
	c.JSON(http.StatusOK, meetups)
}

// ListOrganized godoc
// @Summary      List meetups I organize
// @Tags         meetups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.Meetup
// @Router       /meetups/organized [get]
func (h *MeetupHandler) ListOrganized(c *gin.Context) {
	userID := c.GetString("user_id")

	meetups, err := h.meetupUseCase.ListOrganized(userID)
	if err != nil {
		h.logger.Error("Failed to list organized meetups for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meetups"})
		return
	}

	if meetups == nil {
		meetups = []*entity.Meetup{}
	}
	c.JSON(http.StatusOK, meetups)
}

// UpdateMeetup godoc
// @Summary      Update a meetup
// @Description  Update a meetup. Only the organizer can update, and only before it happens.
// @Tags         meetups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meetup ID"
// @Param        meetup body UpdateMeetupRequest true "Fields to update"
// @Success      200  {object}  entity.Meetup
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /meetups/{id} [put]
func (h *MeetupHandler) UpdateMeetup(c *gin.Context) {
	userID := c.GetString("user_id")
	meetupID := c.Param("id")

	var req UpdateMeetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meetup, err := h.meetupUseCase.UpdateMeetup(meetupID, userID, req.Title, req.Description, req.Location, req.Date, req.BannerURL)
	if err != nil {
		h.respondMeetupError(c, meetupID, err)
		return
	}

	c.JSON(http.StatusOK, meetup)
}

// CancelMeetup godoc
// @Summary      Cancel a meetup
// @Description  Cancel a meetup. Only the organizer can cancel, and only before it happens.
// @Tags         meetups
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meetup ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /meetups/{id} [delete]
func (h *MeetupHandler) CancelMeetup(c *gin.Context) {
	userID := c.GetString("user_id")
	meetupID := c.Param("id")

	if err := h.meetupUseCase.CancelMeetup(meetupID, userID); err != nil {
		h.respondMeetupError(c, meetupID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// UploadBanner godoc
// @Summary      Upload a meetup banner
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Banner image (jpg/jpeg/png)"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /files [post]
func (h *MeetupHandler) UploadBanner(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Banner file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
		return
	}
	defer src.Close()

	bannerURL, err := h.meetupUseCase.UploadBanner(userID, src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("Failed to upload banner: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload banner"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"banner_url": bannerURL})
}

func (h *MeetupHandler) respondMeetupError(c *gin.Context, meetupID string, err error) {
	switch {
	case errors.Is(err, usecase.ErrMeetupNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotOrganizer):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrPastMeetup), errors.Is(err, usecase.ErrPastDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Meetup operation failed for %s: %v", meetupID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
