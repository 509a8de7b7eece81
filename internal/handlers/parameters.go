package handlers

import (
	"net/http"

	"molten_balance/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errLoadParams   = "failed to load parameters"
	errUpdateParams = "failed to update parameters"
)

// @Summary      Operating parameters in effect
// @Tags         parameters
// @Produce      json
// @Success      200  {object}  models.OperatingParams
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/parameters [get]
// @Security     BearerAuth
func (h *Handler) getParameters(c *gin.Context) {
	p, err := h.services.Parameters.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadParams, "params_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Replace operating parameters
// @Description  Validates and stores the snapshot, then returns the freshly recomputed record.
// @Tags         parameters
// @Accept       json
// @Produce      json
// @Param        body  body      models.OperatingParams  true  "Operating parameters"
// @Success      200   {object}  models.BalanceRecord
// @Failure      400   {object}  map[string]interface{}  "error, problems"
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/parameters [put]
// @Security     BearerAuth
func (h *Handler) putParameters(c *gin.Context) {
	var p models.OperatingParams
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	rec, err := h.services.Parameters.Update(c.Request.Context(), p)
	if err != nil {
		h.respondEngineError(c, errUpdateParams, "params_update_failed", err, "operator_id", operatorID(c))
		return
	}
	c.JSON(http.StatusOK, rec)
}
