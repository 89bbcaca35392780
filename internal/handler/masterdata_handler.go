package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"millgate/internal/service"
)

// MasterDataHandler handles crop-year, rice-type, variety, and by-product
// endpoints.
type MasterDataHandler struct {
	masterData service.MasterDataService
}

// NewMasterDataHandler creates a new MasterDataHandler.
func NewMasterDataHandler(masterData service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{masterData: masterData}
}

// CreateCropYear handles POST /api/v1/admin/crop-years
// @Summary Create a crop year
// @Tags master-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/crop-years [post]
func (h *MasterDataHandler) CreateCropYear(c *gin.Context) {
	var input service.CreateCropYearInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	year, err := h.masterData.CreateCropYear(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, year)
}

// ListCropYears handles GET /api/v1/admin/crop-years
// @Summary List crop years, newest first
// @Produce json
// @Security BearerAuth
// @Router /admin/crop-years [get]
func (h *MasterDataHandler) ListCropYears(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	years, total, err := h.masterData.ListCropYears(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, years, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// CreateRiceType handles POST /api/v1/admin/rice-types
// @Summary Create a rice type
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/rice-types [post]
func (h *MasterDataHandler) CreateRiceType(c *gin.Context) {
	var input service.CreateRiceTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rt, err := h.masterData.CreateRiceType(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rt)
}

// ListRiceTypes handles GET /api/v1/admin/rice-types
// @Summary List rice types
// @Produce json
// @Security BearerAuth
// @Router /admin/rice-types [get]
func (h *MasterDataHandler) ListRiceTypes(c *gin.Context) {
	includeInactive := c.DefaultQuery("include_inactive", "false") == "true"

	types, err := h.masterData.ListRiceTypes(c.Request.Context(), includeInactive)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, types)
}

// UpdateRiceType handles PUT /api/v1/admin/rice-types/:id
// @Summary Update a rice type
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/rice-types/{id} [put]
func (h *MasterDataHandler) UpdateRiceType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rice type ID")
		return
	}

	var input service.UpdateRiceTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rt, err := h.masterData.UpdateRiceType(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rt)
}

// DeleteRiceType handles DELETE /api/v1/admin/rice-types/:id
// @Summary Delete a rice type
// @Produce json
// @Security BearerAuth
// @Router /admin/rice-types/{id} [delete]
func (h *MasterDataHandler) DeleteRiceType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rice type ID")
		return
	}

	if err := h.masterData.DeleteRiceType(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// CreateRiceVariety handles POST /api/v1/admin/rice-varieties
// @Summary Create a rice variety
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/rice-varieties [post]
func (h *MasterDataHandler) CreateRiceVariety(c *gin.Context) {
	var input service.CreateRiceVarietyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	v, err := h.masterData.CreateRiceVariety(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, v)
}

// ListRiceVarieties handles GET /api/v1/admin/rice-types/:id/varieties
// @Summary List varieties of a rice type
// @Produce json
// @Security BearerAuth
// @Router /admin/rice-types/{id}/varieties [get]
func (h *MasterDataHandler) ListRiceVarieties(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rice type ID")
		return
	}

	varieties, err := h.masterData.ListRiceVarieties(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, varieties)
}

// DeleteRiceVariety handles DELETE /api/v1/admin/rice-varieties/:id
// @Summary Delete a rice variety
// @Produce json
// @Security BearerAuth
// @Router /admin/rice-varieties/{id} [delete]
func (h *MasterDataHandler) DeleteRiceVariety(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rice variety ID")
		return
	}

	if err := h.masterData.DeleteRiceVariety(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// CreateByProduct handles POST /api/v1/admin/by-products
// @Summary Create a by-product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/by-products [post]
func (h *MasterDataHandler) CreateByProduct(c *gin.Context) {
	var input service.CreateByProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bp, err := h.masterData.CreateByProduct(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bp)
}

// ListByProducts handles GET /api/v1/admin/by-products
// @Summary List by-products
// @Produce json
// @Security BearerAuth
// @Router /admin/by-products [get]
func (h *MasterDataHandler) ListByProducts(c *gin.Context) {
	includeInactive := c.DefaultQuery("include_inactive", "false") == "true"

	products, err := h.masterData.ListByProducts(c.Request.Context(), includeInactive)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, products)
}

// UpdateByProduct handles PUT /api/v1/admin/by-products/:id
// @Summary Update a by-product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/by-products/{id} [put]
func (h *MasterDataHandler) UpdateByProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid by-product ID")
		return
	}

	var input service.UpdateByProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	bp, err := h.masterData.UpdateByProduct(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bp)
}

// DeleteByProduct handles DELETE /api/v1/admin/by-products/:id
// @Summary Delete a by-product
// @Produce json
// @Security BearerAuth
// @Router /admin/by-products/{id} [delete]
func (h *MasterDataHandler) DeleteByProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid by-product ID")
		return
	}

	if err := h.masterData.DeleteByProduct(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
