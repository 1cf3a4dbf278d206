// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Source
// model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/domain"
)

// CreateSource inserts a new source. A duplicate identifier surfaces as a
// unique constraint violation (see IsUniqueViolation).
func CreateSource(ctx context.Context, db *gorm.DB, name, identifier string) (*domain.Source, error) {
	src := &domain.Source{
		Name:       name,
		Identifier: identifier,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(src).Error; err != nil {
		return nil, err
	}
	return src, nil
}

// ListSources returns all sources ordered by id ascending.
func ListSources(ctx context.Context, db *gorm.DB) ([]domain.Source, error) {
	var out []domain.Source
	err := db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// GetSource fetches a single source by id, or ErrNotFound.
func GetSource(ctx context.Context, db *gorm.DB, id uint) (*domain.Source, error) {
	var src domain.Source
	if err := db.WithContext(ctx).First(&src, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &src, nil
}

// GetSourceByIdentifier fetches a source by its external identifier, or
// ErrNotFound.
func GetSourceByIdentifier(ctx context.Context, db *gorm.DB, identifier string) (*domain.Source, error) {
	var src domain.Source
	if err := db.WithContext(ctx).First(&src, "identifier = ?", identifier).Error; err != nil {
		return nil, err
	}
	return &src, nil
}

// DeleteSource removes a source row. Requests reference sources with
// RESTRICT, so the delete fails while any request exists for the source;
// weight rows are removed by cascade.
func DeleteSource(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Source{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
