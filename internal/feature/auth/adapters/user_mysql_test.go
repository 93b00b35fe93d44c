package adapters

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shukatsu_backend/internal/feature/auth/domain/entity"
	"shukatsu_backend/internal/feature/auth/usecase"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestUserMySQL_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("ユーザーを作成できる", func(t *testing.T) {
		repo := NewUserMySQL(setupTestDB(t))

		u := &entity.User{Email: "test@example.com", Password: "hashed"}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.ID == 0 {
			t.Error("expected ID to be assigned")
		}
	})

	t.Run("メールアドレス重複はErrEmailAlreadyExists", func(t *testing.T) {
		repo := NewUserMySQL(setupTestDB(t))

		if err := repo.Create(ctx, &entity.User{Email: "dup@example.com", Password: "a"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := repo.Create(ctx, &entity.User{Email: "dup@example.com", Password: "b"})
		if !errors.Is(err, usecase.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
		}
	})
}

func TestUserMySQL_FindByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserMySQL(setupTestDB(t))

	seed := &entity.User{Email: "test@example.com", Password: "hashed"}
	if err := repo.Create(ctx, seed); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	t.Run("登録済みユーザーを取得できる", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, "test@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != seed.ID || got.Password != "hashed" {
			t.Errorf("unexpected user: %+v", got)
		}
	})

	t.Run("未登録メールはErrUserNotFound", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "unknown@example.com")
		if !errors.Is(err, usecase.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got: %v", err)
		}
	})
}
