package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scanvault/internal/domain"
	"scanvault/internal/service"
)

// OwnerHandler handles owner registration and settings endpoints.
type OwnerHandler struct {
	ownerService service.OwnerService
}

// NewOwnerHandler creates a new OwnerHandler.
func NewOwnerHandler(ownerService service.OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

type registerOwnerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name"`
}

type updateSettingsRequest struct {
	DisplayName   string `json:"display_name"`
	Mode          string `json:"extraction_mode" binding:"required"`
	Provider      string `json:"provider"`
	CredentialRef string `json:"credential_ref"`
}

type storeCredentialRequest struct {
	Ref    string `json:"ref" binding:"required"`
	APIKey string `json:"api_key" binding:"required"`
}

// Register handles POST /api/v1/owners
func (h *OwnerHandler) Register(c *gin.Context) {
	var req registerOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "a valid email is required")
		return
	}

	owner, err := h.ownerService.Register(c.Request.Context(), req.Email, req.DisplayName)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, owner)
}

// Me handles GET /api/v1/owners/me
func (h *OwnerHandler) Me(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	owner, err := h.ownerService.GetByID(c.Request.Context(), ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, owner)
}

// UpdateSettings handles PUT /api/v1/owners/me/settings
func (h *OwnerHandler) UpdateSettings(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "extraction_mode is required")
		return
	}

	owner, err := h.ownerService.UpdateSettings(c.Request.Context(), &service.UpdateOwnerSettingsInput{
		OwnerID:       ownerID,
		DisplayName:   req.DisplayName,
		Mode:          domain.ExtractionMode(req.Mode),
		Provider:      req.Provider,
		CredentialRef: req.CredentialRef,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, owner)
}

// StoreCredential handles PUT /api/v1/owners/me/credentials
func (h *OwnerHandler) StoreCredential(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req storeCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "ref and api_key are required")
		return
	}

	if err := h.ownerService.StoreCredential(c.Request.Context(), ownerID, req.Ref, req.APIKey); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"ref": req.Ref})
}
