// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User
// model. Users are created lazily by the request lifecycle; the get-or-create
// choreography (including the concurrent-creation retry) lives in
// services.RequestService, not here.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/domain"
)

// CreateUser inserts a new user for the given identifier. A concurrent
// insert of the same identifier surfaces as a unique constraint violation
// (see IsUniqueViolation); callers are expected to re-fetch in that case.
func CreateUser(ctx context.Context, db *gorm.DB, identifier string) (*domain.User, error) {
	u := &domain.User{
		Identifier: identifier,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByIdentifier fetches a user by identifier, or ErrNotFound.
func GetUserByIdentifier(ctx context.Context, db *gorm.DB, identifier string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "identifier = ?", identifier).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
