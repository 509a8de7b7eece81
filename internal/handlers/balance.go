package handlers

import (
	"errors"
	"net/http"

	"molten_balance/internal/engine"
	"molten_balance/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errLoadBalance      = "failed to load balance"
	errRecomputeBalance = "failed to recompute balance"
	errInvalidBodyPref  = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondEngineError maps a rejected parameter snapshot to 400 with every
// problem listed, and anything else to 500.
func (h *Handler) respondEngineError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		if h.log != nil {
			h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    engine.ErrInvalidParams.Error(),
			"problems": verr.Problems,
		})
		return
	}
	if errors.Is(err, engine.ErrInvalidParams) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Latest balance record
// @Description  Returns the newest record of the report log, computing one if the log is empty.
// @Tags         balance
// @Produce      json
// @Success      200  {object}  models.BalanceRecord
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/balance [get]
// @Security     BearerAuth
func (h *Handler) getBalance(c *gin.Context) {
	rec, err := h.services.Balance.Latest(c.Request.Context())
	if err != nil {
		h.respondEngineError(c, errLoadBalance, "balance_latest_failed", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Recompute balance now
// @Tags         balance
// @Produce      json
// @Success      200  {object}  models.BalanceRecord
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/balance/recompute [post]
// @Security     BearerAuth
func (h *Handler) recomputeBalance(c *gin.Context) {
	rec, err := h.services.Balance.Recompute(c.Request.Context())
	if err != nil {
		h.respondEngineError(c, errRecomputeBalance, "balance_recompute_failed", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Preview balance
// @Description  Computes a record for the posted parameters without saving or publishing it.
// @Tags         balance
// @Accept       json
// @Produce      json
// @Param        body  body      models.OperatingParams  true  "Operating parameters"
// @Success      200   {object}  models.BalanceRecord
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/balance/preview [post]
// @Security     BearerAuth
func (h *Handler) previewBalance(c *gin.Context) {
	var p models.OperatingParams
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	rec, err := h.services.Balance.Preview(c.Request.Context(), p)
	if err != nil {
		h.respondEngineError(c, errRecomputeBalance, "balance_preview_failed", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
