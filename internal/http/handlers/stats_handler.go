// Statistics HTTP handlers.
//
// This file exposes the reporting endpoints:
//   - GET /stats/operators-load         (per-operator load figures)
//   - GET /stats/requests-distribution  (request breakdowns and totals)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OperatorsLoad godoc
// @ID          operatorsLoad
// @Summary     Operator load report
// @Description Returns every operator with its current load, capacity, and load percentage.
// @Tags        Stats
// @Produce     json
//
// @Success     200  {array}   services.OperatorLoadStats
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /stats/operators-load [get]
func (h *Handlers) OperatorsLoad(c *gin.Context) {
	stats, err := h.statsSvc.OperatorLoad(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeStatsFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}

// RequestsDistribution godoc
// @ID          requestsDistribution
// @Summary     Request distribution report
// @Description Returns request counts broken down by operator and by source, plus totals. Unassigned requests appear as a bucket with a null operator id.
// @Tags        Stats
// @Produce     json
//
// @Success     200  {object}  services.DistributionStats
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /stats/requests-distribution [get]
func (h *Handlers) RequestsDistribution(c *gin.Context) {
	stats, err := h.statsSvc.Distribution(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeStatsFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}
