package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"millgate/internal/domain"
	"millgate/internal/service"
)

// LocationHandler handles the geographic hierarchy endpoints, including the
// village bulk upload.
type LocationHandler struct {
	locationService service.LocationService
	villageImport   service.VillageImportService
	maxUploadBytes  int64
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService service.LocationService, villageImport service.VillageImportService, maxUploadMB int64) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		villageImport:   villageImport,
		maxUploadBytes:  maxUploadMB * 1024 * 1024,
	}
}

// Create handles POST /api/v1/admin/locations
// @Summary Create a location
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var input service.CreateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	loc, err := h.locationService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, loc)
}

// List handles GET /api/v1/admin/locations
// @Summary List locations of one level, optionally under a parent
// @Produce json
// @Security BearerAuth
// @Router /admin/locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	level := domain.LocationLevel(c.Query("level"))
	switch level {
	case domain.LevelState, domain.LevelDistrict, domain.LevelMandal, domain.LevelVillage:
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_LEVEL", "level must be state, district, mandal, or village")
		return
	}

	var parentID *uuid.UUID
	if raw := c.Query("parent_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid parent ID")
			return
		}
		parentID = &id
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	locs, total, err := h.locationService.ListByLevel(c.Request.Context(), level, parentID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, locs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/admin/locations/:id
// @Summary Update a location
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid location ID")
		return
	}

	var input service.UpdateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	loc, err := h.locationService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, loc)
}

// Delete handles DELETE /api/v1/admin/locations/:id
// @Summary Delete a location without children
// @Produce json
// @Security BearerAuth
// @Router /admin/locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid location ID")
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// ImportVillages handles POST /api/v1/admin/locations/villages/import
// @Summary Bulk-upload villages from a CSV file
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Router /admin/locations/villages/import [post]
func (h *LocationHandler) ImportVillages(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		HandleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.villageImport.Import(c.Request.Context(), orgID, fileHeader.Filename, file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
