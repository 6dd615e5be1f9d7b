package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillflip/internal/domain"
	"skillflip/internal/modules/pricing"
	"skillflip/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
}

// RegisterInternalRoutes mounts the webhook-only surface.
func (h *Handler) RegisterInternalRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/bookings/:id/payment-status", h.UpdatePaymentStatus)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSkillNotFound):
			response.Error(c, http.StatusNotFound, "SKILL_NOT_FOUND", "Skill does not exist")
		case errors.Is(err, ErrSkillUnavailable):
			response.Error(c, http.StatusConflict, "SKILL_UNAVAILABLE", "Skill is not accepting bookings")
		case errors.Is(err, ErrUnsupportedSessionType):
			response.Error(c, http.StatusBadRequest, "UNSUPPORTED_SESSION_TYPE", "Skill does not offer this session type")
		case errors.Is(err, pricing.ErrInvalidDuration):
			response.Error(c, http.StatusBadRequest, "INVALID_DURATION", "Supported durations are 30, 60, 90 and 120 minutes")
		case errors.Is(err, pricing.ErrInvalidRate):
			response.Error(c, http.StatusUnprocessableEntity, "INVALID_RATE", "Skill has an invalid hourly rate")
		case errors.Is(err, ErrSlotUnavailable):
			response.Error(c, http.StatusConflict, "SLOT_UNAVAILABLE", "The selected time slot is not available")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

// ListBookings serves GET /bookings?as=learner|creator (default learner).
func (h *Handler) ListBookings(c *gin.Context) {
	userID := c.GetString("user_id")

	var (
		bookings []domain.Booking
		err      error
	)
	if c.DefaultQuery("as", "learner") == "creator" {
		bookings, err = h.service.ListAsCreator(c.Request.Context(), userID)
	} else {
		bookings, err = h.service.ListAsLearner(c.Request.Context(), userID)
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), c.GetString("user_id"), domain.Role(c.GetString("role")), id)
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(
		c.Request.Context(),
		c.GetString("user_id"),
		domain.Role(c.GetString("role")),
		id,
		domain.BookingStatus(req.Status),
	)
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdatePaymentStatus(c.Request.Context(), id, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this booking")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "This status change is not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
	}
}
