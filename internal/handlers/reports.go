package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"molten_balance/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	reportFileName  = "balance_report.csv"
	csvContentType  = "text/csv; charset=utf-8"
	errLoadReports  = "failed to load reports"
	errExportReport = "failed to export reports"
)

// reportFilter parses from/to/status. Writes a 400 and returns false on bad input.
func reportFilter(c *gin.Context) (service.ReportFilter, bool) {
	from, to, ok := parseRange(c)
	if !ok {
		return service.ReportFilter{}, false
	}
	return service.ReportFilter{From: from, To: to, Status: c.Query("status")}, true
}

func isFilterError(err error) bool {
	return errors.Is(err, service.ErrInvalidStatus) ||
		errors.Is(err, service.ErrInvalidEventType) ||
		errors.Is(err, service.ErrInvalidTimeRange)
}

// @Summary      List balance records
// @Tags         reports
// @Produce      json
// @Param        from    query   string  false  "Start of range"  example(2026-03-04)
// @Param        to      query   string  false  "End of range; date-only means end of day"  example(2026-03-04)
// @Param        status  query   string  false  "Alarm status"  Enums(normal,caution,critical,advisory,excess-accumulation,emergency)
// @Success      200     {object}  map[string]interface{}  "count, records"
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/reports [get]
// @Security     BearerAuth
func (h *Handler) getReports(c *gin.Context) {
	f, ok := reportFilter(c)
	if !ok {
		return
	}
	recs, err := h.services.Reports.ListReports(c.Request.Context(), f)
	if err != nil {
		if isFilterError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadReports, "reports_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(recs),
		"records": recs,
	})
}

// @Summary      Export balance records as CSV
// @Description  UTF-8 CSV with byte-order mark, one row per record.
// @Tags         reports
// @Produce      text/csv
// @Param        from    query   string  false  "Start of range"
// @Param        to      query   string  false  "End of range"
// @Param        status  query   string  false  "Alarm status"
// @Success      200     {file}  file
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/reports/export [get]
// @Security     BearerAuth
func (h *Handler) exportReports(c *gin.Context) {
	f, ok := reportFilter(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.services.Reports.ExportCSV(c.Request.Context(), f, &buf); err != nil {
		if isFilterError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errExportReport, "reports_export_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+reportFileName+`"`)
	c.Data(http.StatusOK, csvContentType, buf.Bytes())
}
