// Package services – OperatorService
//
// This file implements the operator lifecycle: creation, capacity updates,
// activation toggling, and deletion. Operators are never hard-deleted while
// any request references them; the storage layer enforces that with a
// RESTRICT foreign key and this service translates the violation into
// ErrOperatorInUse.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/domain"
	"github.com/tbourn/go-crm-backend/internal/repo"
)

// OperatorService provides operator-level operations and enforces the
// validation rules for operator input.
type OperatorService struct {
	DB *gorm.DB
}

// NewOperatorService constructs an OperatorService.
func NewOperatorService(db *gorm.DB) *OperatorService {
	return &OperatorService{DB: db}
}

// Create inserts a new active operator with the given name and capacity.
// The name must contain non-whitespace characters and the capacity must be
// positive; violations are rejected before any write.
func (s *OperatorService) Create(ctx context.Context, name string, maxLoadLimit int) (*domain.Operator, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if maxLoadLimit <= 0 {
		return nil, ErrInvalidMaxLoad
	}
	return repo.CreateOperator(ctx, s.DB, name, maxLoadLimit)
}

// List returns all operators with their current status and load figures.
func (s *OperatorService) List(ctx context.Context) ([]domain.Operator, error) {
	return repo.ListOperators(ctx, s.DB)
}

// UpdateMaxLoad changes an operator's capacity and returns the updated row.
func (s *OperatorService) UpdateMaxLoad(ctx context.Context, id uint, maxLoadLimit int) (*domain.Operator, error) {
	if maxLoadLimit <= 0 {
		return nil, ErrInvalidMaxLoad
	}
	if err := repo.UpdateOperatorMaxLoad(ctx, s.DB, id, maxLoadLimit); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}
	return repo.GetOperator(ctx, s.DB, id)
}

// ToggleActive flips the operator's is_active flag and returns the updated
// row. Deactivated operators keep their current assignments but receive no
// new ones.
func (s *OperatorService) ToggleActive(ctx context.Context, id uint) (*domain.Operator, error) {
	op, err := repo.GetOperator(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}
	if err := repo.SetOperatorActive(ctx, s.DB, id, !op.IsActive); err != nil {
		return nil, err
	}
	op.IsActive = !op.IsActive
	return op, nil
}

// Delete removes an operator. The delete is refused with ErrOperatorInUse
// while any request references the operator; weight rows are removed by
// cascade.
func (s *OperatorService) Delete(ctx context.Context, id uint) error {
	err := repo.DeleteOperator(ctx, s.DB, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrOperatorNotFound
	case repo.IsForeignKeyViolation(err):
		return ErrOperatorInUse
	default:
		return err
	}
}
