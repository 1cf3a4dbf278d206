// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the counting aggregations behind the
// statistics endpoints. Each function is context-aware and safe to call from
// services or handlers.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/domain"
)

// OperatorRequestCount is one row of the by-operator distribution breakdown.
type OperatorRequestCount struct {
	OperatorID   uint   `json:"operator_id"`
	OperatorName string `json:"operator_name"`
	RequestCount int64  `json:"request_count"`
}

// SourceRequestCount is one row of the by-source distribution breakdown.
type SourceRequestCount struct {
	SourceID     uint   `json:"source_id"`
	SourceName   string `json:"source_name"`
	RequestCount int64  `json:"request_count"`
}

// DistributionByOperator counts assigned requests grouped by operator.
// Unassigned requests are excluded here; callers obtain their count with
// CountUnassignedRequests and append a synthetic bucket when needed.
func DistributionByOperator(ctx context.Context, db *gorm.DB) ([]OperatorRequestCount, error) {
	var out []OperatorRequestCount
	err := db.WithContext(ctx).
		Table("requests AS r").
		Select("r.operator_id, o.name AS operator_name, COUNT(r.id) AS request_count").
		Joins("JOIN operators o ON o.id = r.operator_id").
		Group("r.operator_id, o.name").
		Order("r.operator_id").
		Scan(&out).Error
	return out, err
}

// DistributionBySource counts all requests grouped by source.
func DistributionBySource(ctx context.Context, db *gorm.DB) ([]SourceRequestCount, error) {
	var out []SourceRequestCount
	err := db.WithContext(ctx).
		Table("requests AS r").
		Select("r.source_id, s.name AS source_name, COUNT(r.id) AS request_count").
		Joins("JOIN sources s ON s.id = r.source_id").
		Group("r.source_id, s.name").
		Order("r.source_id").
		Scan(&out).Error
	return out, err
}

// CountUnassignedRequests counts requests with no operator assigned.
func CountUnassignedRequests(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("operator_id IS NULL").
		Count(&total).Error
	return total, err
}
