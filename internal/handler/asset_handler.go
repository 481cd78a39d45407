package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scanvault/internal/domain"
	"scanvault/internal/service"
)

const maxUploadBytes = 50 << 20 // 50MB across all pages

// AssetHandler handles asset ingestion and retrieval endpoints.
type AssetHandler struct {
	assetService service.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Upload handles POST /api/v1/assets. Pages arrive as one or more "pages"
// form files; the first file's name and content type describe the document.
func (h *AssetHandler) Upload(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form is required")
		return
	}

	files := form.File["pages"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "pages field is required")
		return
	}

	pages := make([][]byte, 0, len(files))
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FORM", "could not read uploaded page")
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FORM", "could not read uploaded page")
			return
		}
		pages = append(pages, data)
	}

	asset, err := h.assetService.Upload(c.Request.Context(), &service.UploadAssetInput{
		OwnerID:  ownerID,
		FileName: files[0].Filename,
		MimeType: files[0].Header.Get("Content-Type"),
		Pages:    pages,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, asset)
}

// List handles GET /api/v1/assets
func (h *AssetHandler) List(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_CATEGORY_ID", "category_id must be a UUID")
			return
		}
		categoryID = &id
	}

	assets, total, err := h.assetService.List(c.Request.Context(), ownerID, categoryID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if assets == nil {
		assets = []domain.Asset{}
	}

	RespondPaginated(c, assets, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/assets/:id
func (h *AssetHandler) GetByID(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "asset id must be a UUID")
		return
	}

	asset, err := h.assetService.GetByID(c.Request.Context(), ownerID, assetID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, asset)
}

// Retry handles POST /api/v1/assets/:id/retry
func (h *AssetHandler) Retry(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "asset id must be a UUID")
		return
	}

	asset, err := h.assetService.Retry(c.Request.Context(), ownerID, assetID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, asset)
}

// Delete handles DELETE /api/v1/assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "asset id must be a UUID")
		return
	}

	if err := h.assetService.Delete(c.Request.Context(), ownerID, assetID); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PageURLs handles GET /api/v1/assets/:id/pages
func (h *AssetHandler) PageURLs(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "asset id must be a UUID")
		return
	}

	urls, err := h.assetService.PageURLs(c.Request.Context(), ownerID, assetID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"urls": urls})
}

// Export handles GET /api/v1/assets/export
func (h *AssetHandler) Export(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	data, err := h.assetService.ExportXLSX(c.Request.Context(), ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="assets.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
