// Package usecase はeventフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"shukatsu_backend/internal/feature/event/domain"
	"shukatsu_backend/internal/feature/event/domain/entity"
)

const (
	minRating = 1
	maxRating = 5
)

// EventRepository はイベントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type EventRepository interface {
	// Create はイベントを永続化し、紐付け先企業の統計情報
	// （イベント件数と最終イベント日時）を同一トランザクションで更新します。
	// 企業がユーザースコープ内に存在しない場合、domain.ErrCompanyNotFoundを返します。
	Create(ctx context.Context, event *entity.Event) error

	// UpdateReview は指定イベントの振り返りを書き込みます。
	// イベントが存在しない場合はdomain.ErrEventNotFoundを返します。
	UpdateReview(ctx context.Context, userID, eventID uint, review entity.Review) error

	// ListByUser はユーザーの全イベントを開始日時の降順で返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Event, error)
}

// eventUsecase はイベント管理のビジネスロジックを実装します。
type eventUsecase struct {
	events EventRepository
	now    func() time.Time
}

// NewEventUsecase はeventUsecaseの新しいインスタンスを生成します。
func NewEventUsecase(events EventRepository) *eventUsecase {
	return &eventUsecase{events: events, now: time.Now}
}

// Create は検証済みのイベントを登録します。
func (u *eventUsecase) Create(ctx context.Context, event *entity.Event) error {
	if !event.Type.Valid() {
		return domain.ErrInvalidEventType
	}
	if event.EndsAt.Before(event.StartsAt) {
		return domain.ErrInvalidEventTime
	}
	return u.events.Create(ctx, event)
}

// Review はイベントの振り返りを記録します。マッチ度は1〜5の範囲で検証します。
func (u *eventUsecase) Review(ctx context.Context, userID, eventID uint, companyMatch, jobMatch int, comment string) error {
	if companyMatch < minRating || companyMatch > maxRating ||
		jobMatch < minRating || jobMatch > maxRating {
		return domain.ErrInvalidRating
	}
	return u.events.UpdateReview(ctx, userID, eventID, entity.Review{
		CompanyMatch: companyMatch,
		JobMatch:     jobMatch,
		Comment:      comment,
		ReviewedAt:   u.now(),
	})
}

// List はユーザーの全イベントを開始日時の降順で返します。
func (u *eventUsecase) List(ctx context.Context, userID uint) ([]entity.Event, error) {
	return u.events.ListByUser(ctx, userID)
}
