package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-crm-backend/internal/domain"
)

func TestCreateUser_And_GetByIdentifier(t *testing.T) {
	db := newRepoDB(t, &domain.User{})
	ctx := context.Background()

	usr, err := CreateUser(ctx, db, "tg-774411")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if usr.ID == 0 || usr.Identifier != "tg-774411" {
		t.Fatalf("unexpected User fields: %+v", usr)
	}

	got, err := GetUserByIdentifier(ctx, db, "tg-774411")
	if err != nil || got.ID != usr.ID {
		t.Fatalf("GetUserByIdentifier: %+v err=%v", got, err)
	}

	if _, err := GetUserByIdentifier(ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUser_DuplicateIdentifier(t *testing.T) {
	db := newRepoDB(t, &domain.User{})
	ctx := context.Background()

	if _, err := CreateUser(ctx, db, "u-1"); err != nil {
		t.Fatalf("first CreateUser: %v", err)
	}
	_, err := CreateUser(ctx, db, "u-1")
	if err == nil || !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}
