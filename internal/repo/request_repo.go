// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Request
// model, including the single-row state transitions performed by the
// distribution engine and the joined detail projection.
//
// Error semantics:
//   - When a request is not found, functions return ErrNotFound.
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/domain"
)

// RequestDetail is a request joined with its user, source, and (optional)
// operator names, as returned by the detail endpoint.
type RequestDetail struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	UserIdentifier string    `json:"user_identifier"`
	SourceID       uint      `json:"source_id"`
	SourceName     string    `json:"source_name"`
	OperatorID     *uint     `json:"operator_id"`
	OperatorName   *string   `json:"operator_name"`
	Message        string    `json:"message"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateRequest inserts a new pending request with no operator assigned.
func CreateRequest(ctx context.Context, db *gorm.DB, userID, sourceID uint, message string) (*domain.Request, error) {
	r := &domain.Request{
		UserID:    userID,
		SourceID:  sourceID,
		Message:   message,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRequest fetches a single request by id, or ErrNotFound.
func GetRequest(ctx context.Context, db *gorm.DB, id uint) (*domain.Request, error) {
	var r domain.Request
	if err := db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// CountRequests returns the total number of requests.
func CountRequests(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Request{}).Count(&total).Error
	return total, err
}

// ListRequestsPage returns a page of requests ordered by creation time
// descending (most recent first). The caller computes offset and limit.
func ListRequestsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Request, error) {
	var out []domain.Request
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// AssignRequest sets the request's operator and moves it to the assigned
// status. It does not touch the operator's load counter; the distribution
// engine pairs this with IncrementOperatorLoad inside one transaction.
func AssignRequest(ctx context.Context, db *gorm.DB, id, operatorID uint) error {
	res := db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"operator_id": operatorID,
			"status":      domain.StatusAssigned,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkRequestWaiting clears the operator reference and moves the request to
// the waiting status. Used when no operator is available.
func MarkRequestWaiting(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"operator_id": nil,
			"status":      domain.StatusWaiting,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkRequestCompleted moves an assigned request to the completed status,
// keeping its operator reference for history. The guard on the current
// status makes the release path idempotent at the storage level: a second
// release affects zero rows.
func MarkRequestCompleted(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).
		Model(&domain.Request{}).
		Where("id = ? AND status = ?", id, domain.StatusAssigned).
		Update("status", domain.StatusCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRequestDetail returns the request joined with user, source, and
// operator names. The operator join is LEFT so unassigned requests resolve
// with a nil operator.
func GetRequestDetail(ctx context.Context, db *gorm.DB, id uint) (*RequestDetail, error) {
	var d RequestDetail
	res := db.WithContext(ctx).
		Table("requests AS r").
		Select("r.id, r.user_id, u.identifier AS user_identifier, r.source_id, s.name AS source_name, "+
			"r.operator_id, o.name AS operator_name, r.message, r.status, r.created_at").
		Joins("JOIN users u ON u.id = r.user_id").
		Joins("JOIN sources s ON s.id = r.source_id").
		Joins("LEFT JOIN operators o ON o.id = r.operator_id").
		Where("r.id = ?", id).
		Scan(&d)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &d, nil
}
