// Request HTTP handlers.
//
// This file exposes REST endpoints for the request lifecycle:
//   - POST /requests              (create + distribute)
//   - GET  /requests              (list, paginated)
//   - GET  /requests/{id}         (detail with joined names)
//   - POST /requests/{id}/release (complete and free capacity)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-crm-backend/internal/domain"
)

//
// DTOs
//

// CreateRequestRequest is the JSON payload for submitting an inbound request.
type CreateRequestRequest struct {
	// UserIdentifier is the external user key; an unseen identifier
	// creates a user record on the fly.
	UserIdentifier string `json:"user_identifier" binding:"required,min=1,max=255" example:"tg-774411"`
	// SourceID references the source the message arrived through.
	SourceID uint `json:"source_id" binding:"required" example:"1"`
	// Message is the request text.
	Message string `json:"message" binding:"required,min=1" example:"My order has not arrived"`
}

// ListRequestsResponse wraps a page of requests and pagination information.
type ListRequestsResponse struct {
	Requests   []domain.Request `json:"requests"`
	Pagination Pagination       `json:"pagination"`
}

//
// Handlers
//

// CreateRequest godoc
// @ID          createRequest
// @Summary     Submit a new request
// @Description Persists an inbound user message and immediately distributes it. The response carries the final state: assigned with an operator id, or waiting when no operator had spare capacity.
// @Tags        Requests
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateRequestRequest  true  "Create request payload"
//
// @Success     201  {object}  domain.Request
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Source not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /requests [post]
func (h *Handlers) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_identifier, source_id, and message required")
		return
	}

	r, err := h.reqSvc.Create(c.Request.Context(), strings.TrimSpace(req.UserIdentifier), req.SourceID, req.Message)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, r)
}

// ListRequests godoc
// @ID          listRequests
// @Summary     List requests (paginated)
// @Description Returns a page of requests, newest first.
// @Tags        Requests
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListRequestsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /requests [get]
func (h *Handlers) ListRequests(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.reqSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListRequestsResponse{
		Requests: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}

// GetRequest godoc
// @ID          getRequest
// @Summary     Get a request
// @Description Returns a single request joined with the user, source, and operator names.
// @Tags        Requests
// @Produce     json
//
// @Param       id  path  int  true  "Request ID"  example(1)
//
// @Success     200  {object}  repo.RequestDetail
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /requests/{id} [get]
func (h *Handlers) GetRequest(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "request id must be a positive integer")
		return
	}

	detail, err := h.reqSvc.GetDetail(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, detail)
}

// ReleaseRequest godoc
// @ID          releaseRequest
// @Summary     Release an assigned request
// @Description Marks an assigned request as completed and decrements the operator's load, freeing one slot. Requests that are pending, waiting, or already completed return 409.
// @Tags        Requests
// @Produce     json
//
// @Param       id  path  int  true  "Request ID"  example(1)
//
// @Success     204  {string}  string                  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Request not currently assigned"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /requests/{id}/release [post]
func (h *Handlers) ReleaseRequest(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "request id must be a positive integer")
		return
	}

	if err := h.reqSvc.Release(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
