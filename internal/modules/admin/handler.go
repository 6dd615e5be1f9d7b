package admin

import (
	"context"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/stats", h.GetStats)
	rg.GET("/admin/skills/pending", h.GetPendingSkills)
	rg.PATCH("/admin/skills/:id/approve", h.ApproveSkill)
	rg.PATCH("/admin/skills/:id/feature", h.FeatureSkill)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) GetPendingSkills(c *gin.Context) {
	skills, err := h.service.GetPendingSkills(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list pending skills")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"skills": skills})
}

type flagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

func (h *Handler) ApproveSkill(c *gin.Context) {
	h.setFlag(c, h.service.ApproveSkill)
}

func (h *Handler) FeatureSkill(c *gin.Context) {
	h.setFlag(c, h.service.FeatureSkill)
}

func (h *Handler) setFlag(c *gin.Context, apply func(ctx context.Context, id int64, v bool) (*domain.Skill, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid skill id")
		return
	}

	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	s, err := apply(c.Request.Context(), id, *req.Value)
	if err != nil {
		if errors.Is(err, ErrSkillNotFound) {
			response.Error(c, http.StatusNotFound, "SKILL_NOT_FOUND", "Skill does not exist")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update skill")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"skill": s})
}
