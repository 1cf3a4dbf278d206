// Source HTTP handlers.
//
// This file exposes REST endpoints for source resources and their operator
// weight configuration:
//   - POST   /sources                (create)
//   - GET    /sources                (list)
//   - POST   /sources/{id}/operators (configure weights, upsert)
//   - GET    /sources/{id}/operators (list weights)
//   - DELETE /sources/{id}           (delete)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-crm-backend/internal/services"
)

//
// DTOs
//

// CreateSourceRequest is the JSON payload for creating a source.
type CreateSourceRequest struct {
	// Name is the source's display name (1–255 chars).
	Name string `json:"name" binding:"required,min=1,max=255" example:"Telegram"`
	// Identifier is the globally unique source key (1–255 chars).
	Identifier string `json:"identifier" binding:"required,min=1,max=255" example:"telegram-main"`
}

// WeightEntry is one operator weight in a configuration payload.
type WeightEntry struct {
	// OperatorID references an existing operator.
	OperatorID uint `json:"operator_id" binding:"required" example:"1"`
	// Weight is the relative selection weight (1–100).
	Weight int `json:"weight" binding:"required,min=1,max=100" example:"50"`
}

// ConfigureWeightsRequest is the JSON payload for configuring operator
// weights on a source.
type ConfigureWeightsRequest struct {
	// Weights holds at least one operator weight entry.
	Weights []WeightEntry `json:"weights" binding:"required,min=1,dive"`
}

//
// Handlers
//

// CreateSource godoc
// @ID          createSource
// @Summary     Create a new source
// @Description Registers a message source with a globally unique identifier.
// @Tags        Sources
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateSourceRequest  true  "Create source payload"
//
// @Success     201  {object}  domain.Source
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Identifier already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /sources [post]
func (h *Handlers) CreateSource(c *gin.Context) {
	var req CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and identifier (1–255 chars) required")
		return
	}

	src, err := h.srcSvc.Create(c.Request.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Identifier))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, src)
}

// ListSources godoc
// @ID          listSources
// @Summary     List sources
// @Description Returns every registered source.
// @Tags        Sources
// @Produce     json
//
// @Success     200  {array}   domain.Source
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /sources [get]
func (h *Handlers) ListSources(c *gin.Context) {
	sources, err := h.srcSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, sources)
}

// ConfigureSourceWeights godoc
// @ID          configureSourceWeights
// @Summary     Configure operator weights for a source
// @Description Upserts the relative selection weights of operators on this source. Re-submitting a pair overwrites the previous weight; pairs not mentioned are left untouched.
// @Tags        Sources
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                               true  "Source ID"  example(1)
// @Param       body  body  handlers.ConfigureWeightsRequest  true  "Weight entries"
//
// @Success     200  {array}   repo.SourceWeight
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Source or operator not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /sources/{id}/operators [post]
func (h *Handlers) ConfigureSourceWeights(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "source id must be a positive integer")
		return
	}

	var req ConfigureWeightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "weights required: non-empty list of {operator_id, weight 1–100}")
		return
	}

	entries := make([]services.WeightConfig, 0, len(req.Weights))
	for _, w := range req.Weights {
		entries = append(entries, services.WeightConfig{OperatorID: w.OperatorID, Weight: w.Weight})
	}

	weights, err := h.srcSvc.ConfigureWeights(c.Request.Context(), id, entries)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, weights)
}

// ListSourceWeights godoc
// @ID          listSourceWeights
// @Summary     List operator weights for a source
// @Description Returns the operators configured on this source together with their weights.
// @Tags        Sources
// @Produce     json
//
// @Param       id  path  int  true  "Source ID"  example(1)
//
// @Success     200  {array}   repo.SourceWeight
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Source not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /sources/{id}/operators [get]
func (h *Handlers) ListSourceWeights(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "source id must be a positive integer")
		return
	}

	weights, err := h.srcSvc.ListWeights(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, weights)
}

// DeleteSource godoc
// @ID          deleteSource
// @Summary     Delete a source
// @Description Removes a source and its weight configuration. Sources referenced by any request cannot be deleted and return 409.
// @Tags        Sources
// @Produce     json
//
// @Param       id  path  int  true  "Source ID"  example(1)
//
// @Success     204  {string}  string                  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Source not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Source still referenced by requests"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /sources/{id} [delete]
func (h *Handlers) DeleteSource(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "source id must be a positive integer")
		return
	}

	if err := h.srcSvc.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
