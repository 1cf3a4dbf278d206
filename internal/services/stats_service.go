// Package services – StatsService
//
// This file implements the statistics aggregations: per-operator load
// figures and the request distribution breakdowns. Everything here is pure
// counting over the repository layer; the only subtlety is the division
// guard on the load percentage and the synthetic "unassigned" bucket.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/repo"
)

// OperatorLoadStats is one row of the operator load report.
type OperatorLoadStats struct {
	OperatorID     uint    `json:"operator_id"`
	OperatorName   string  `json:"operator_name"`
	IsActive       bool    `json:"is_active"`
	CurrentLoad    int     `json:"current_load"`
	MaxLoadLimit   int     `json:"max_load_limit"`
	LoadPercentage float64 `json:"load_percentage"`
}

// OperatorDistribution is one row of the by-operator request breakdown.
// OperatorID and OperatorName are nil for the synthetic unassigned bucket.
type OperatorDistribution struct {
	OperatorID   *uint   `json:"operator_id"`
	OperatorName *string `json:"operator_name"`
	RequestCount int64   `json:"request_count"`
}

// SourceDistribution is one row of the by-source request breakdown.
type SourceDistribution struct {
	SourceID     uint   `json:"source_id"`
	SourceName   string `json:"source_name"`
	RequestCount int64  `json:"request_count"`
}

// DistributionStats aggregates the request distribution report.
type DistributionStats struct {
	ByOperator         []OperatorDistribution `json:"by_operator"`
	BySource           []SourceDistribution   `json:"by_source"`
	TotalRequests      int64                  `json:"total_requests"`
	UnassignedRequests int64                  `json:"unassigned_requests"`
}

// StatsService computes statistics over operators and requests.
type StatsService struct {
	DB *gorm.DB
}

// NewStatsService constructs a StatsService.
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// OperatorLoad returns load statistics for every operator, active or not.
// The load percentage is current_load / max_load_limit * 100, and 0 when
// the limit is not positive (the invariant forbids that, but the report
// must never divide by zero).
func (s *StatsService) OperatorLoad(ctx context.Context) ([]OperatorLoadStats, error) {
	operators, err := repo.ListOperators(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	stats := make([]OperatorLoadStats, 0, len(operators))
	for _, op := range operators {
		pct := 0.0
		if op.MaxLoadLimit > 0 {
			pct = float64(op.CurrentLoad) / float64(op.MaxLoadLimit) * 100
		}
		stats = append(stats, OperatorLoadStats{
			OperatorID:     op.ID,
			OperatorName:   op.Name,
			IsActive:       op.IsActive,
			CurrentLoad:    op.CurrentLoad,
			MaxLoadLimit:   op.MaxLoadLimit,
			LoadPercentage: pct,
		})
	}
	return stats, nil
}

// Distribution returns the request breakdowns by operator and by source,
// plus total and unassigned counts. A synthetic bucket with a nil operator
// id is appended to the by-operator breakdown when unassigned requests
// exist.
func (s *StatsService) Distribution(ctx context.Context) (*DistributionStats, error) {
	byOperatorRows, err := repo.DistributionByOperator(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	bySourceRows, err := repo.DistributionBySource(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	total, err := repo.CountRequests(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	unassigned, err := repo.CountUnassignedRequests(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	byOperator := make([]OperatorDistribution, 0, len(byOperatorRows)+1)
	for _, row := range byOperatorRows {
		id, name := row.OperatorID, row.OperatorName
		byOperator = append(byOperator, OperatorDistribution{
			OperatorID:   &id,
			OperatorName: &name,
			RequestCount: row.RequestCount,
		})
	}
	if unassigned > 0 {
		byOperator = append(byOperator, OperatorDistribution{RequestCount: unassigned})
	}

	bySource := make([]SourceDistribution, 0, len(bySourceRows))
	for _, row := range bySourceRows {
		bySource = append(bySource, SourceDistribution{
			SourceID:     row.SourceID,
			SourceName:   row.SourceName,
			RequestCount: row.RequestCount,
		})
	}

	return &DistributionStats{
		ByOperator:         byOperator,
		BySource:           bySource,
		TotalRequests:      total,
		UnassignedRequests: unassigned,
	}, nil
}
