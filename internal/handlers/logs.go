package handlers

import (
	"net/http"
	"strings"

	"molten_balance/internal/service"

	"github.com/gin-gonic/gin"
)

const errLoadLogs = "failed to load logs"

// @Summary      List balance events
// @Description  Parameter changes, rejections, alarm transitions and recompute failures, oldest first. Bounds accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers that whole day.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2026-03-01)
// @Param        to    query   string  false  "End of range"    example(2026-03-31)
// @Param        type  query   string  false  "Event type"  Enums(PARAMS_CHANGED,PARAMS_REJECTED,ALARM_CHANGED,RECOMPUTE_FAILED)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	f := service.LogFilter{From: from, To: to, Type: strings.ToUpper(strings.TrimSpace(c.Query("type")))}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
	case isFilterError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadLogs, "logs_list_failed", err,
			"from", f.From, "to", f.To, "type", f.Type)
	}
}
