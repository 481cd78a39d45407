package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scanvault/internal/domain"
	"scanvault/internal/service"
)

// CategoryHandler handles category management endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type updatePrioritiesRequest struct {
	FieldPriorities []string `json:"field_priorities" binding:"required"`
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, category)
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	RespondOK(c, categories)
}

// GetByID handles GET /api/v1/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "category id must be a UUID")
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), ownerID, categoryID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, category)
}

// UpdateFieldPriorities handles PUT /api/v1/categories/:id/priorities
func (h *CategoryHandler) UpdateFieldPriorities(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "category id must be a UUID")
		return
	}

	var req updatePrioritiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "field_priorities is required")
		return
	}

	if err := h.categoryService.UpdateFieldPriorities(c.Request.Context(), ownerID, categoryID, req.FieldPriorities); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}
