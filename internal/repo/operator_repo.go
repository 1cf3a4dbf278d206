// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Operator
// model, including the load counter mutations used by the distribution
// engine.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an operator is not found, functions return ErrNotFound.
//   - On other DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/domain"
)

// CreateOperator inserts a new active operator with zero current load.
func CreateOperator(ctx context.Context, db *gorm.DB, name string, maxLoadLimit int) (*domain.Operator, error) {
	op := &domain.Operator{
		Name:         name,
		IsActive:     true,
		MaxLoadLimit: maxLoadLimit,
		CurrentLoad:  0,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(op).Error; err != nil {
		return nil, err
	}
	return op, nil
}

// ListOperators returns all operators ordered by id ascending. It returns an
// empty slice when none exist.
func ListOperators(ctx context.Context, db *gorm.DB) ([]domain.Operator, error) {
	var out []domain.Operator
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// GetOperator fetches a single operator by id, or ErrNotFound.
func GetOperator(ctx context.Context, db *gorm.DB, id uint) (*domain.Operator, error) {
	var op domain.Operator
	if err := db.WithContext(ctx).First(&op, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

// UpdateOperatorMaxLoad sets a new max_load_limit for the operator. If no
// rows are affected, it returns ErrNotFound.
func UpdateOperatorMaxLoad(ctx context.Context, db *gorm.DB, id uint, maxLoadLimit int) error {
	res := db.WithContext(ctx).
		Model(&domain.Operator{}).
		Where("id = ?", id).
		Update("max_load_limit", maxLoadLimit)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOperatorActive sets the is_active flag. If no rows are affected, it
// returns ErrNotFound.
func SetOperatorActive(ctx context.Context, db *gorm.DB, id uint, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Operator{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementOperatorLoad adds 1 to the operator's current_load. No capacity
// check happens here: the availability filter must run before assignment,
// and the accepted race near the capacity boundary is documented on
// services.DistributionService.
func IncrementOperatorLoad(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).
		Model(&domain.Operator{}).
		Where("id = ?", id).
		Update("current_load", gorm.Expr("current_load + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementOperatorLoad subtracts 1 from the operator's current_load,
// floor-clamped at zero so a double release can never drive the counter
// negative.
func DecrementOperatorLoad(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).
		Model(&domain.Operator{}).
		Where("id = ?", id).
		Update("current_load", gorm.Expr("CASE WHEN current_load > 0 THEN current_load - 1 ELSE 0 END"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOperator removes an operator row. The requests foreign key is
// RESTRICT, so the delete fails with a foreign key violation while any
// request references the operator; callers classify that error with
// IsForeignKeyViolation. Weight rows for the operator are removed by the
// cascade on operator_source_weights.
func DeleteOperator(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Operator{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
