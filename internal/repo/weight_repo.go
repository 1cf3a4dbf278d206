// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for per-(operator,
// source) weight configuration and the availability filter query consumed by
// the distribution engine.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-crm-backend/internal/domain"
)

// AvailableOperator pairs an operator eligible for assignment with its
// configured weight for the queried source.
type AvailableOperator struct {
	Operator domain.Operator
	Weight   int
}

// SourceWeight is a weight row joined with the operator's name, as exposed
// by the weight listing endpoint.
type SourceWeight struct {
	OperatorID   uint   `json:"operator_id"`
	OperatorName string `json:"operator_name"`
	Weight       int    `json:"weight"`
}

// UpsertWeight inserts or updates the weight for an (operator, source) pair.
// The unique index on the pair guarantees at most one row; a second
// configuration updates it in place instead of duplicating it.
func UpsertWeight(ctx context.Context, db *gorm.DB, operatorID, sourceID uint, weight int) error {
	w := &domain.Weight{
		OperatorID: operatorID,
		SourceID:   sourceID,
		Weight:     weight,
		CreatedAt:  time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "operator_id"}, {Name: "source_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"weight": weight}),
		}).
		Create(w).Error
}

// ListSourceWeights returns every configured weight for the source together
// with the operator's name, ordered by operator id.
func ListSourceWeights(ctx context.Context, db *gorm.DB, sourceID uint) ([]SourceWeight, error) {
	var out []SourceWeight
	err := db.WithContext(ctx).
		Table("operator_source_weights AS w").
		Select("w.operator_id, o.name AS operator_name, w.weight").
		Joins("JOIN operators o ON o.id = w.operator_id").
		Where("w.source_id = ?", sourceID).
		Order("w.operator_id").
		Scan(&out).Error
	return out, err
}

// AvailableOperators returns the operators eligible to receive a new request
// from the source: active, under capacity, and weighted for that source.
// A non-existent source simply yields zero rows; the join produces nothing.
//
// Rows are ordered by operator id so the cumulative weight ranges seen by
// the selector are stable for a given operator set.
func AvailableOperators(ctx context.Context, db *gorm.DB, sourceID uint) ([]AvailableOperator, error) {
	var rows []struct {
		ID           uint
		Name         string
		IsActive     bool
		MaxLoadLimit int
		CurrentLoad  int
		CreatedAt    time.Time
		Weight       int
	}
	err := db.WithContext(ctx).
		Table("operator_source_weights AS w").
		Select("o.id, o.name, o.is_active, o.max_load_limit, o.current_load, o.created_at, w.weight").
		Joins("JOIN operators o ON o.id = w.operator_id").
		Where("w.source_id = ? AND o.is_active = ? AND o.current_load < o.max_load_limit", sourceID, true).
		Order("w.operator_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]AvailableOperator, 0, len(rows))
	for _, r := range rows {
		out = append(out, AvailableOperator{
			Operator: domain.Operator{
				ID:           r.ID,
				Name:         r.Name,
				IsActive:     r.IsActive,
				MaxLoadLimit: r.MaxLoadLimit,
				CurrentLoad:  r.CurrentLoad,
				CreatedAt:    r.CreatedAt,
			},
			Weight: r.Weight,
		})
	}
	return out, nil
}
