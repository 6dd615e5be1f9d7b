package pricing

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillflip/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pricing/quote", h.GetQuote)
}

// GetQuote prices a hypothetical booking: GET /pricing/quote?rate=45&duration=60
func (h *Handler) GetQuote(c *gin.Context) {
	rate, err := strconv.ParseFloat(c.Query("rate"), 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "rate must be a number")
		return
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "duration must be an integer number of minutes")
		return
	}

	quote, err := h.service.Quote(rate, duration)
	if err != nil {
		switch err {
		case ErrInvalidRate:
			response.Error(c, http.StatusBadRequest, "INVALID_RATE", "Hourly rate must be positive")
		case ErrInvalidDuration:
			response.Error(c, http.StatusBadRequest, "INVALID_DURATION", "Supported durations are 30, 60, 90 and 120 minutes")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute quote")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quote": quote})
}
