// Operator HTTP handlers.
//
// This file exposes REST endpoints for operator resources:
//   - POST   /operators                    (create)
//   - GET    /operators                    (list)
//   - PUT    /operators/{id}               (update capacity)
//   - PUT    /operators/{id}/toggle-active (flip availability)
//   - DELETE /operators/{id}               (delete)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//
// DTOs
//

// CreateOperatorRequest is the JSON payload for creating an operator.
type CreateOperatorRequest struct {
	// Name is the operator's display name (1–255 chars).
	Name string `json:"name" binding:"required,min=1,max=255" example:"Alice"`
	// MaxLoadLimit is the maximum number of concurrent requests (>= 1).
	MaxLoadLimit int `json:"max_load_limit" binding:"required,min=1" example:"5"`
}

// UpdateOperatorRequest is the JSON payload for changing operator capacity.
type UpdateOperatorRequest struct {
	// MaxLoadLimit is the new capacity (>= 1).
	MaxLoadLimit int `json:"max_load_limit" binding:"required,min=1" example:"10"`
}

//
// Handlers
//

// CreateOperator godoc
// @ID          createOperator
// @Summary     Create a new operator
// @Description Registers an operator with the given capacity. New operators start active with zero load.
// @Tags        Operators
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateOperatorRequest  true  "Create operator payload"
//
// @Success     201  {object}  domain.Operator
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /operators [post]
func (h *Handlers) CreateOperator(c *gin.Context) {
	var req CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name (1–255 chars) and max_load_limit (>= 1) required")
		return
	}

	op, err := h.opSvc.Create(c.Request.Context(), strings.TrimSpace(req.Name), req.MaxLoadLimit)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, op)
}

// ListOperators godoc
// @ID          listOperators
// @Summary     List operators
// @Description Returns every operator with its status and current load.
// @Tags        Operators
// @Produce     json
//
// @Success     200  {array}   domain.Operator
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /operators [get]
func (h *Handlers) ListOperators(c *gin.Context) {
	operators, err := h.opSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, operators)
}

// UpdateOperator godoc
// @ID          updateOperator
// @Summary     Update operator capacity
// @Description Changes the operator's maximum concurrent load. Lowering the limit below the current load stops new assignments but never revokes existing ones.
// @Tags        Operators
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                             true  "Operator ID"  example(1)
// @Param       body  body  handlers.UpdateOperatorRequest  true  "New capacity"
//
// @Success     200  {object}  domain.Operator
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Operator not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /operators/{id} [put]
func (h *Handlers) UpdateOperator(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "operator id must be a positive integer")
		return
	}

	var req UpdateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "max_load_limit (>= 1) required")
		return
	}

	op, err := h.opSvc.UpdateMaxLoad(c.Request.Context(), id, req.MaxLoadLimit)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, op)
}

// ToggleOperatorActive godoc
// @ID          toggleOperatorActive
// @Summary     Toggle operator availability
// @Description Flips the operator's active flag. Deactivation excludes the operator from new assignments but keeps its current ones.
// @Tags        Operators
// @Produce     json
//
// @Param       id  path  int  true  "Operator ID"  example(1)
//
// @Success     200  {object}  domain.Operator
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Operator not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /operators/{id}/toggle-active [put]
func (h *Handlers) ToggleOperatorActive(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "operator id must be a positive integer")
		return
	}

	op, err := h.opSvc.ToggleActive(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, op)
}

// DeleteOperator godoc
// @ID          deleteOperator
// @Summary     Delete an operator
// @Description Removes an operator. Operators referenced by any request (including historical ones) cannot be deleted and return 409.
// @Tags        Operators
// @Produce     json
//
// @Param       id  path  int  true  "Operator ID"  example(1)
//
// @Success     204  {string}  string                  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Operator not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Operator still referenced by requests"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /operators/{id} [delete]
func (h *Handlers) DeleteOperator(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "operator id must be a positive integer")
		return
	}

	if err := h.opSvc.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
