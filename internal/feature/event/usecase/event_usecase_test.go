package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"shukatsu_backend/internal/feature/event/domain"
	"shukatsu_backend/internal/feature/event/domain/entity"
)

// mockEventRepository はEventRepositoryインターフェースのモック実装です。
type mockEventRepository struct {
	CreateFunc       func(ctx context.Context, event *entity.Event) error
	UpdateReviewFunc func(ctx context.Context, userID, eventID uint, review entity.Review) error
	ListByUserFunc   func(ctx context.Context, userID uint) ([]entity.Event, error)
}

func (m *mockEventRepository) Create(ctx context.Context, event *entity.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) UpdateReview(ctx context.Context, userID, eventID uint, review entity.Review) error {
	if m.UpdateReviewFunc != nil {
		return m.UpdateReviewFunc(ctx, userID, eventID, review)
	}
	return nil
}

func (m *mockEventRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Event, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func validEvent() *entity.Event {
	starts := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	return &entity.Event{
		UserID:    1,
		CompanyID: 10,
		Type:      entity.EventTypeInterview,
		Title:     "一次面接",
		StartsAt:  starts,
		EndsAt:    starts.Add(time.Hour),
	}
}

func TestEventUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: リポジトリへ渡される", func(t *testing.T) {
		created := false
		repo := &mockEventRepository{
			CreateFunc: func(ctx context.Context, event *entity.Event) error {
				created = true
				if event.Type != entity.EventTypeInterview {
					t.Errorf("unexpected type: %s", event.Type)
				}
				return nil
			},
		}
		uc := NewEventUsecase(repo)

		if err := uc.Create(ctx, validEvent()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !created {
			t.Error("expected repository Create to be called")
		}
	})

	t.Run("未知のイベント種別はErrInvalidEventType", func(t *testing.T) {
		uc := NewEventUsecase(&mockEventRepository{})
		ev := validEvent()
		ev.Type = "casual_meeting"

		if err := uc.Create(ctx, ev); !errors.Is(err, domain.ErrInvalidEventType) {
			t.Errorf("expected ErrInvalidEventType, got: %v", err)
		}
	})

	t.Run("終了が開始より前ならErrInvalidEventTime", func(t *testing.T) {
		uc := NewEventUsecase(&mockEventRepository{})
		ev := validEvent()
		ev.EndsAt = ev.StartsAt.Add(-time.Minute)

		if err := uc.Create(ctx, ev); !errors.Is(err, domain.ErrInvalidEventTime) {
			t.Errorf("expected ErrInvalidEventTime, got: %v", err)
		}
	})

	t.Run("企業が存在しないエラーを伝播する", func(t *testing.T) {
		repo := &mockEventRepository{
			CreateFunc: func(ctx context.Context, event *entity.Event) error {
				return domain.ErrCompanyNotFound
			},
		}
		uc := NewEventUsecase(repo)

		if err := uc.Create(ctx, validEvent()); !errors.Is(err, domain.ErrCompanyNotFound) {
			t.Errorf("expected ErrCompanyNotFound, got: %v", err)
		}
	})
}

func TestEventUsecase_Review(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC)

	t.Run("正常系: reviewedAtに現在時刻が入る", func(t *testing.T) {
		var got entity.Review
		repo := &mockEventRepository{
			UpdateReviewFunc: func(ctx context.Context, userID, eventID uint, review entity.Review) error {
				got = review
				return nil
			},
		}
		uc := NewEventUsecase(repo)
		uc.now = func() time.Time { return fixedNow }

		if err := uc.Review(ctx, 1, 5, 4, 2, "社風が合いそう"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.CompanyMatch != 4 || got.JobMatch != 2 {
			t.Errorf("unexpected ratings: %+v", got)
		}
		if !got.ReviewedAt.Equal(fixedNow) {
			t.Errorf("expected reviewedAt %v, got %v", fixedNow, got.ReviewedAt)
		}
	})

	t.Run("範囲外のマッチ度はErrInvalidRating", func(t *testing.T) {
		uc := NewEventUsecase(&mockEventRepository{
			UpdateReviewFunc: func(ctx context.Context, userID, eventID uint, review entity.Review) error {
				t.Error("repository must not be called for invalid ratings")
				return nil
			},
		})

		for _, ratings := range [][2]int{{0, 3}, {6, 3}, {3, 0}, {3, 6}} {
			if err := uc.Review(ctx, 1, 5, ratings[0], ratings[1], ""); !errors.Is(err, domain.ErrInvalidRating) {
				t.Errorf("ratings %v: expected ErrInvalidRating, got: %v", ratings, err)
			}
		}
	})

	t.Run("イベント未検出エラーを伝播する", func(t *testing.T) {
		repo := &mockEventRepository{
			UpdateReviewFunc: func(ctx context.Context, userID, eventID uint, review entity.Review) error {
				return domain.ErrEventNotFound
			},
		}
		uc := NewEventUsecase(repo)

		if err := uc.Review(ctx, 1, 99, 3, 3, ""); !errors.Is(err, domain.ErrEventNotFound) {
			t.Errorf("expected ErrEventNotFound, got: %v", err)
		}
	})
}

func TestEventUsecase_List(t *testing.T) {
	ctx := context.Background()

	repo := &mockEventRepository{
		ListByUserFunc: func(ctx context.Context, userID uint) ([]entity.Event, error) {
			if userID != 7 {
				t.Errorf("unexpected userID: %d", userID)
			}
			return []entity.Event{{ID: 2}, {ID: 1}}, nil
		},
	}
	uc := NewEventUsecase(repo)

	events, err := uc.List(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}
