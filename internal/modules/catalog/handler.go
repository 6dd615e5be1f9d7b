package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillflip/internal/domain"
	"skillflip/internal/pkg/response"
	"skillflip/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/skills", h.ListSkills)
	rg.GET("/skills/:id", h.GetSkill)
	rg.GET("/creators/:id/skills", h.ListCreatorSkills)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/skills", h.CreateSkill)
	rg.PATCH("/skills/:id", h.UpdateSkill)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/categories", h.CreateCategory)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlugTaken):
			response.Error(c, http.StatusConflict, "SLUG_TAKEN", "A category with this slug already exists")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create category")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"category": category})
}

// ListSkills serves the public browse page:
// GET /skills?category=3&search=baking&session_type=virtual&max_price=50&featured=true&limit=20&offset=0
func (h *Handler) ListSkills(c *gin.Context) {
	var f repository.SkillFilter
	if v := c.Query("category"); v != "" {
		f.CategoryID, _ = strconv.ParseInt(v, 10, 64)
	}
	f.Search = c.Query("search")
	f.SessionType = c.Query("session_type")
	if v := c.Query("max_price"); v != "" {
		f.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}
	f.FeaturedOnly = c.Query("featured") == "true"
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))

	skills, err := h.service.ListSkills(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list skills")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"skills": skills})
}

func (h *Handler) GetSkill(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid skill id")
		return
	}

	skill, err := h.service.GetSkill(c.Request.Context(), c.GetString("user_id"), domain.Role(c.GetString("role")), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "SKILL_NOT_FOUND", "Skill does not exist")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load skill")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"skill": skill})
}

func (h *Handler) ListCreatorSkills(c *gin.Context) {
	skills, err := h.service.ListCreatorSkills(
		c.Request.Context(),
		c.GetString("user_id"),
		domain.Role(c.GetString("role")),
		c.Param("id"),
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list skills")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"skills": skills})
}

func (h *Handler) CreateSkill(c *gin.Context) {
	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	skill, err := h.service.CreateSkill(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.respondSkillError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"skill": skill})
}

func (h *Handler) UpdateSkill(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid skill id")
		return
	}

	var req UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	skill, err := h.service.UpdateSkill(c.Request.Context(), c.GetString("user_id"), domain.Role(c.GetString("role")), id, req)
	if err != nil {
		h.respondSkillError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"skill": skill})
}

func (h *Handler) respondSkillError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "SKILL_NOT_FOUND", "Skill does not exist")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only edit your own skills")
	case errors.Is(err, ErrCategoryNotFound):
		response.Error(c, http.StatusBadRequest, "CATEGORY_NOT_FOUND", "Category does not exist")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save skill")
	}
}
