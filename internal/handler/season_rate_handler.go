package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"millgate/internal/csvexport"
	"millgate/internal/domain"
	"millgate/internal/export"
	"millgate/internal/service"
	"millgate/internal/wire"
)

// SeasonRateHandler handles the season bag-rate endpoints. The upsert
// endpoint accepts both the grouped write shape and the legacy flat shape, so
// older console builds keep working.
type SeasonRateHandler struct {
	rateService service.SeasonRateService
}

// NewSeasonRateHandler creates a new SeasonRateHandler.
func NewSeasonRateHandler(rateService service.SeasonRateService) *SeasonRateHandler {
	return &SeasonRateHandler{rateService: rateService}
}

func seasonQuery(c *gin.Context) (int, domain.SeasonCode, bool) {
	startYear, err := strconv.Atoi(c.Query("cropYearStartYear"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "cropYearStartYear must be an integer")
		return 0, "", false
	}
	season := domain.SeasonCode(c.Query("seasonCode"))
	if !season.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_SEASON_CODE", "season code must be KHARIF or RABI")
		return 0, "", false
	}
	return startYear, season, true
}

// List handles GET /api/v1/admin/season-bag-rates
// @Summary List season bag rates
// @Description One grouped entry per active rice type for the crop year and season
// @Tags season-bag-rates
// @Produce json
// @Security BearerAuth
// @Router /admin/season-bag-rates [get]
func (h *SeasonRateHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startYear, season, ok := seasonQuery(c)
	if !ok {
		return
	}

	items, err := h.rateService.List(c.Request.Context(), orgID, startYear, season)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, wire.GroupedList{Items: items})
}

// Upsert handles POST /api/v1/admin/season-bag-rates
// @Summary Save season bag rates
// @Description Accepts the grouped write shape or the legacy flat shape. Only the 100kg rate is trusted; dependent rates are re-derived server side.
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/season-bag-rates [post]
func (h *SeasonRateHandler) Upsert(c *gin.Context) {
	orgID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable request body")
		return
	}

	var items []domain.SeasonBagRate
	if modern, ok := parseModernUpsert(raw); ok {
		items, err = h.rateService.Save(c.Request.Context(), orgID, userID, modern)
	} else if legacy, ok := parseLegacyUpsert(raw); ok {
		items, err = h.rateService.SaveLegacy(c.Request.Context(), orgID, userID, legacy)
	} else {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "body matches neither rate payload shape")
		return
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOKWithMessage(c, wire.GroupedList{Items: items}, "Rates saved.")
}

// parseModernUpsert accepts the payload only when every row carries a rates
// map, the marker that distinguishes the grouped shape from the flat one.
func parseModernUpsert(raw []byte) (wire.UpsertRequest, bool) {
	var req wire.UpsertRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return wire.UpsertRequest{}, false
	}
	if len(req.Rates) == 0 {
		return wire.UpsertRequest{}, false
	}
	for _, row := range req.Rates {
		if row.RiceTypeCode == "" || row.Rates == nil {
			return wire.UpsertRequest{}, false
		}
	}
	return req, true
}

func parseLegacyUpsert(raw []byte) (wire.LegacyUpsertRequest, bool) {
	var req wire.LegacyUpsertRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return wire.LegacyUpsertRequest{}, false
	}
	if len(req.Rates) == 0 {
		return wire.LegacyUpsertRequest{}, false
	}
	for _, rec := range req.Rates {
		if rec.RiceTypeCode == "" || !rec.BagSize.Valid() {
			return wire.LegacyUpsertRequest{}, false
		}
	}
	return req, true
}

// Reset handles POST /api/v1/admin/season-bag-rates/reset
// @Summary Reset season bag rates to zero
// @Description Requires the exact confirmation text. Zeroes every stored row for the season, including deactivated rice types.
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /admin/season-bag-rates/reset [post]
func (h *SeasonRateHandler) Reset(c *gin.Context) {
	orgID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.ResetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.rateService.Reset(c.Request.Context(), orgID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	msg := fmt.Sprintf("Rates reset. %d rows zeroed.", result.RowsZeroed)
	RespondOKWithMessage(c, wire.GroupedList{Items: result.Items}, msg)
}

// Export handles GET /api/v1/admin/season-bag-rates/export
// @Summary Download the season's rate sheet
// @Description Returns xlsx by default; pass format=csv for a CSV download.
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Router /admin/season-bag-rates/export [get]
func (h *SeasonRateHandler) Export(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startYear, season, ok := seasonQuery(c)
	if !ok {
		return
	}

	items, err := h.rateService.List(c.Request.Context(), orgID, startYear, season)
	if err != nil {
		HandleError(c, err)
		return
	}

	label := service.CropYearLabel(startYear)

	if c.Query("format") == "csv" {
		h.exportCSV(c, label, season, items)
		return
	}

	data, err := export.RateSheet(label, season, items)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("season-bag-rates_%s_%s.xlsx", label, season)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *SeasonRateHandler) exportCSV(c *gin.Context, label string, season domain.SeasonCode, items []domain.SeasonBagRate) {
	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf, label, season)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteEntries(items); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvexport.BuildFilename(label, season)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
