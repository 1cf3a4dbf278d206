// Package services – RequestService
//
// This file implements the request lifecycle: validation, lazy user
// creation, persistence of the pending request, and the hand-off to the
// distribution engine, all surfaced as one Create operation that returns
// the request in its final state (assigned or waiting).
//
// Concurrency note: two concurrent requests carrying the same unseen user
// identifier can both miss the lookup and both attempt the insert. The
// unique index rejects the loser, and this service answers that rejection
// with a single re-fetch of the existing row instead of propagating an
// error.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/domain"
	"github.com/tbourn/go-crm-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RequestService coordinates request creation and retrieval.
type RequestService struct {
	DB           *gorm.DB
	Distribution *DistributionService
}

// NewRequestService constructs a RequestService bound to the given
// distribution engine.
func NewRequestService(db *gorm.DB, dist *DistributionService) *RequestService {
	return &RequestService{DB: db, Distribution: dist}
}

// Create validates the input, resolves (or lazily creates) the user,
// persists a pending request, and immediately distributes it. The request
// row insert and the distribution outcome commit in one transaction, so an
// observer never sees a pending request with a half-applied assignment.
//
// The source is validated before the user lookup; both checks happen before
// the request row is written.
func (s *RequestService) Create(ctx context.Context, userIdentifier string, sourceID uint, message string) (*domain.Request, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.Int64("source.id", int64(sourceID))),
	)
	defer span.End()

	if strings.TrimSpace(userIdentifier) == "" {
		return nil, ErrEmptyIdentifier
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := repo.GetSource(ctx, s.DB, sourceID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}

	user, err := s.getOrCreateUser(ctx, userIdentifier)
	if err != nil {
		return nil, err
	}

	var request *domain.Request
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := repo.CreateRequest(ctx, tx, user.ID, sourceID, message)
		if err != nil {
			return err
		}
		request = r
		_, err = s.Distribution.Distribute(ctx, tx, r.ID, sourceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Reload to reflect the distribution outcome.
	return repo.GetRequest(ctx, s.DB, request.ID)
}

// getOrCreateUser resolves the user by identifier, inserting a new row on
// first sight. A unique-constraint rejection from a concurrent insert is
// answered by re-fetching the row the winner created.
func (s *RequestService) getOrCreateUser(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := repo.GetUserByIdentifier(ctx, s.DB, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	user, err = repo.CreateUser(ctx, s.DB, identifier)
	if err == nil {
		return user, nil
	}
	if repo.IsUniqueViolation(err) {
		return repo.GetUserByIdentifier(ctx, s.DB, identifier)
	}
	return nil, err
}

// ListPage returns a page of requests ordered by creation time descending,
// together with the total count. Invalid page parameters fall back to
// defaults.
func (s *RequestService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Request, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountRequests(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Request{}, 0, nil
	}

	items, err := repo.ListRequestsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// GetDetail returns a request joined with user, source, and operator names.
func (s *RequestService) GetDetail(ctx context.Context, id uint) (*repo.RequestDetail, error) {
	d, err := repo.GetRequestDetail(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return d, nil
}

// Release completes an assigned request: the request moves to the completed
// status (keeping its operator reference for history) and the operator's
// load is decremented, floor-clamped at zero. Both writes commit together.
// Releasing a request that is not currently assigned is a conflict.
func (s *RequestService) Release(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := repo.GetRequest(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if r.Status != domain.StatusAssigned || r.OperatorID == nil {
			return ErrRequestNotAssigned
		}
		if err := repo.MarkRequestCompleted(ctx, tx, id); err != nil {
			return err
		}
		return repo.DecrementOperatorLoad(ctx, tx, *r.OperatorID)
	})
}
