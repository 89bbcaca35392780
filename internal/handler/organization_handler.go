package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"millgate/internal/service"
)

// OrganizationHandler handles organization management endpoints.
type OrganizationHandler struct {
	orgService service.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// Create handles POST /api/v1/admin/organizations
// @Summary Create an organization
// @Description Create a new organization with its first admin user
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var input service.CreateOrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, org)
}

// List handles GET /api/v1/admin/organizations
// @Summary List organizations
// @Produce json
// @Security BearerAuth
// @Router /admin/organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orgs, total, err := h.orgService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, orgs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/admin/organizations/:id
// @Summary Get organization by ID
// @Produce json
// @Security BearerAuth
// @Router /admin/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}

	org, err := h.orgService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, org)
}

// Update handles PUT /api/v1/admin/organizations/:id
// @Summary Update an organization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/organizations/{id} [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}

	var input service.UpdateOrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, org)
}
