// Package services – SourceService
//
// This file implements source management and per-source weight
// configuration. Weight configuration is all-or-nothing: every entry in a
// batch is validated up front and the upserts run in one transaction, so a
// single invalid entry leaves nothing committed.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/domain"
	"github.com/tbourn/go-crm-backend/internal/repo"
)

// WeightConfig is one (operator, weight) entry of a configuration batch.
type WeightConfig struct {
	OperatorID uint
	Weight     int
}

// SourceService provides source-level operations and weight configuration.
type SourceService struct {
	DB *gorm.DB
}

// NewSourceService constructs a SourceService.
func NewSourceService(db *gorm.DB) *SourceService {
	return &SourceService{DB: db}
}

// Create inserts a new source. The identifier is a stable external key and
// must be globally unique; a duplicate is reported as
// ErrDuplicateIdentifier rather than a raw constraint violation.
func (s *SourceService) Create(ctx context.Context, name, identifier string) (*domain.Source, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(identifier) == "" {
		return nil, ErrEmptyIdentifier
	}
	src, err := repo.CreateSource(ctx, s.DB, name, identifier)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, ErrDuplicateIdentifier
		}
		return nil, err
	}
	return src, nil
}

// List returns all registered sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return repo.ListSources(ctx, s.DB)
}

// ConfigureWeights upserts the weight for each (operator, source) entry.
// The source, every operator, and every weight value are validated before
// any write; the upserts then run in a single transaction. Re-configuring
// an existing pair updates it in place.
func (s *SourceService) ConfigureWeights(ctx context.Context, sourceID uint, entries []WeightConfig) ([]repo.SourceWeight, error) {
	if _, err := repo.GetSource(ctx, s.DB, sourceID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}
	for _, e := range entries {
		if e.Weight < 1 || e.Weight > 100 {
			return nil, ErrWeightOutOfRange
		}
		if _, err := repo.GetOperator(ctx, s.DB, e.OperatorID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrOperatorNotFound
			}
			return nil, err
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if err := repo.UpsertWeight(ctx, tx, e.OperatorID, sourceID, e.Weight); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return repo.ListSourceWeights(ctx, s.DB, sourceID)
}

// ListWeights returns every configured weight for the source together with
// operator names.
func (s *SourceService) ListWeights(ctx context.Context, sourceID uint) ([]repo.SourceWeight, error) {
	if _, err := repo.GetSource(ctx, s.DB, sourceID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}
	return repo.ListSourceWeights(ctx, s.DB, sourceID)
}

// Delete removes a source. The delete is refused with ErrSourceInUse while
// any request references the source; weight rows are removed by cascade.
func (s *SourceService) Delete(ctx context.Context, id uint) error {
	err := repo.DeleteSource(ctx, s.DB, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrSourceNotFound
	case repo.IsForeignKeyViolation(err):
		return ErrSourceInUse
	default:
		return err
	}
}
