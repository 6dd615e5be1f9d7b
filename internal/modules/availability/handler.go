package availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillflip/internal/domain"
	"skillflip/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/creators/:id/availability", h.GetAvailability)
	rg.GET("/creators/:id/slots", h.GetAvailableSlots)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PUT("/creators/:id/availability", h.SetAvailability)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	windows, err := h.service.GetAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"windows": windows})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	creatorID := c.Param("id")
	if !canEditCreator(c, creatorID) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only edit your own availability")
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	windows, err := h.service.SetAvailability(c.Request.Context(), creatorID, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"windows": windows})
}

// GetAvailableSlots serves GET /creators/:id/slots?date=2026-03-02&tz=America/New_York&duration=60
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	duration := 0
	if raw := c.Query("duration"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "duration must be an integer number of minutes")
			return
		}
		duration = v
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), c.Param("id"), c.Query("date"), c.Query("tz"), duration)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDuration):
			response.Error(c, http.StatusBadRequest, "INVALID_DURATION", "Supported durations are 30, 60, 90 and 120 minutes")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute slots")
		}
		return
	}

	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			Start:           s.Start.Format("2006-01-02T15:04:05-07:00"),
			End:             s.End().Format("2006-01-02T15:04:05-07:00"),
			DurationMinutes: int(s.Duration.Minutes()),
		})
	}

	response.Success(c, http.StatusOK, gin.H{"slots": out})
}

func canEditCreator(c *gin.Context, creatorID string) bool {
	userID := c.GetString("user_id")
	role := c.GetString("role")
	return userID == creatorID || role == string(domain.RoleAdmin)
}
