// Handler wiring.
//
// Handlers are transport-thin: they bind and sanity-check input, call
// application services, and translate results into HTTP responses. They
// depend on abstract service interfaces to keep transport concerns separate
// from business logic.
package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-crm-backend/internal/domain"
	"github.com/tbourn/go-crm-backend/internal/repo"
	"github.com/tbourn/go-crm-backend/internal/services"
	"github.com/tbourn/go-crm-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// OperatorService defines operator lifecycle operations consumed by HTTP
// handlers. Implementations should be safe for concurrent use and must
// honor the provided context for cancellation and timeouts.
type OperatorService interface {
	// Create registers a new active operator with the given capacity.
	Create(ctx context.Context, name string, maxLoadLimit int) (*domain.Operator, error)
	// List returns all operators with status and load figures.
	List(ctx context.Context) ([]domain.Operator, error)
	// UpdateMaxLoad changes an operator's capacity.
	UpdateMaxLoad(ctx context.Context, id uint, maxLoadLimit int) (*domain.Operator, error)
	// ToggleActive flips the operator's availability for new assignments.
	ToggleActive(ctx context.Context, id uint) (*domain.Operator, error)
	// Delete removes an operator not referenced by any request.
	Delete(ctx context.Context, id uint) error
}

// SourceService defines source and weight configuration operations.
type SourceService interface {
	// Create registers a new source with a unique identifier.
	Create(ctx context.Context, name, identifier string) (*domain.Source, error)
	// List returns all registered sources.
	List(ctx context.Context) ([]domain.Source, error)
	// ConfigureWeights upserts a batch of operator weights for the source.
	ConfigureWeights(ctx context.Context, sourceID uint, entries []services.WeightConfig) ([]repo.SourceWeight, error)
	// ListWeights returns the configured weights for the source.
	ListWeights(ctx context.Context, sourceID uint) ([]repo.SourceWeight, error)
	// Delete removes a source not referenced by any request.
	Delete(ctx context.Context, id uint) error
}

// RequestService defines request lifecycle operations.
type RequestService interface {
	// Create persists a new request and distributes it to an operator.
	Create(ctx context.Context, userIdentifier string, sourceID uint, message string) (*domain.Request, error)
	// ListPage returns a page of requests and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Request, int64, error)
	// GetDetail returns a request joined with user/source/operator names.
	GetDetail(ctx context.Context, id uint) (*repo.RequestDetail, error)
	// Release completes an assigned request and frees operator capacity.
	Release(ctx context.Context, id uint) error
}

// StatsService defines the statistics aggregations.
type StatsService interface {
	// OperatorLoad returns per-operator load statistics.
	OperatorLoad(ctx context.Context) ([]services.OperatorLoadStats, error)
	// Distribution returns request distribution breakdowns and totals.
	Distribution(ctx context.Context) (*services.DistributionStats, error)
}

// Handlers groups the HTTP endpoints for operators, sources, requests, and
// statistics.
type Handlers struct {
	opSvc    OperatorService
	srcSvc   SourceService
	reqSvc   RequestService
	statsSvc StatsService
}

// New constructs a Handlers instance bound to the given services.
func New(opSvc OperatorService, srcSvc SourceService, reqSvc RequestService, statsSvc StatsService) *Handlers {
	return &Handlers{opSvc: opSvc, srcSvc: srcSvc, reqSvc: reqSvc, statsSvc: statsSvc}
}

//
// Helpers
//

// idParam parses the named path parameter as an unsigned integer id.
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
