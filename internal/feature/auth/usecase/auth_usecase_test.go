package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"shukatsu_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository はUserRepositoryインターフェースのモック実装です。
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

// mockJWTGenerator はJWTGeneratorインターフェースのモック実装です。
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

func TestAuthUsecase_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("パスワードがハッシュ化されて保存される", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				if user.Password == "password123" {
					t.Error("password is not hashed")
				}
				if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				return nil
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockJWTGenerator{})

		if err := uc.Signup(ctx, "test@example.com", "password123"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("短いパスワードは拒否される", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockJWTGenerator{})
		if err := uc.Signup(ctx, "test@example.com", "short"); err == nil {
			t.Error("expected error for short password")
		}
	})

	t.Run("リポジトリのエラーを伝播する", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockJWTGenerator{})

		err := uc.Signup(ctx, "existing@example.com", "password123")
		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{ID: 1, Email: "test@example.com", Password: string(hashedPassword)}

	findTestUser := func(ctx context.Context, email string) (*entity.User, error) {
		if email == testUser.Email {
			return testUser, nil
		}
		return nil, ErrUserNotFound
	}

	t.Run("正しい認証情報でトークンが返る", func(t *testing.T) {
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				if userID != testUser.ID || email != testUser.Email {
					t.Errorf("unexpected claims: userID=%d, email=%s", userID, email)
				}
				return "mock-jwt-token", nil
			},
		}
		uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, mockJWT)

		token, err := uc.Login(ctx, "test@example.com", password)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "mock-jwt-token" {
			t.Errorf("expected 'mock-jwt-token', got: %q", token)
		}
	})

	t.Run("誤ったパスワードは汎用エラー", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, &mockJWTGenerator{})

		_, err := uc.Login(ctx, "test@example.com", "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("未登録ユーザーも同じ汎用エラー", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, &mockJWTGenerator{})

		_, err := uc.Login(ctx, "unknown@example.com", password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})
}
