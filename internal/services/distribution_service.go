// Package services – DistributionService
//
// This file implements the distribution engine: the component that selects
// an available operator for a freshly created request using weighted random
// choice and commits the resulting state transition.
//
// State machine per request:
//
//	pending --(operator found)--> assigned
//	pending --(no operator)-----> waiting
//
// Both transitions are performed exactly once, inside the transaction the
// caller provides, so the request update and the operator load increment
// commit together or not at all.
//
// Observability: Distribute is OpenTelemetry-instrumented; spans carry the
// request and source ids and the assignment outcome.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/repo"
	"github.com/tbourn/go-crm-backend/internal/weighted"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DistributionService selects and assigns operators to pending requests.
type DistributionService struct {
	DB     *gorm.DB
	Picker *weighted.Picker
}

// NewDistributionService constructs a DistributionService with a seeded
// random picker.
func NewDistributionService(db *gorm.DB) *DistributionService {
	return &DistributionService{DB: db, Picker: weighted.NewPicker()}
}

// AvailableOperators returns the operators eligible for a new request from
// the source: active, under capacity, and weighted for that source. A
// non-existent source yields an empty list, never an error.
func (s *DistributionService) AvailableOperators(ctx context.Context, sourceID uint) ([]repo.AvailableOperator, error) {
	return repo.AvailableOperators(ctx, s.DB, sourceID)
}

// Distribute assigns an operator to the request, or marks it waiting when
// no operator qualifies. It returns the assigned operator id, or nil for
// the waiting outcome.
//
// The tx handle must be an open transaction: the availability filter reads
// through it, so the load figures used for filtering are the ones the
// assignment commits against, and the request update plus the load
// increment form one atomic unit.
//
// Known looseness: the capacity check and the load increment are not a
// single compare-and-increment, so two concurrent transactions can both
// observe current_load < max_load_limit near the boundary and both commit,
// transiently exceeding the limit. Callers needing a hard cap must add a
// conditional update at the storage boundary.
//
// A missing request or operator here is an internal invariant violation
// (the caller just created or fetched the request) and surfaces as a plain
// error, not a user-facing not-found.
func (s *DistributionService) Distribute(ctx context.Context, tx *gorm.DB, requestID, sourceID uint) (*uint, error) {
	tr := otel.Tracer("services/DistributionService")
	ctx, span := tr.Start(ctx, "Distribute",
		trace.WithAttributes(
			attribute.Int64("request.id", int64(requestID)),
			attribute.Int64("source.id", int64(sourceID)),
		),
	)
	defer span.End()

	available, err := repo.AvailableOperators(ctx, tx, sourceID)
	if err != nil {
		return nil, err
	}

	candidates := make([]weighted.Candidate[uint], 0, len(available))
	for _, a := range available {
		candidates = append(candidates, weighted.Candidate[uint]{Value: a.Operator.ID, Weight: a.Weight})
	}

	operatorID, ok := weighted.Select(s.Picker, candidates)
	if !ok {
		// No candidates, or degenerate zero total weight.
		if err := repo.MarkRequestWaiting(ctx, tx, requestID); err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.String("distribution.outcome", "waiting"))
		return nil, nil
	}

	if err := repo.AssignRequest(ctx, tx, requestID, operatorID); err != nil {
		return nil, err
	}
	if err := repo.IncrementOperatorLoad(ctx, tx, operatorID); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("distribution.outcome", "assigned"),
		attribute.Int64("operator.id", int64(operatorID)),
	)
	return &operatorID, nil
}
