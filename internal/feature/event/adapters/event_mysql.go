// Package adapters はeventフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shukatsu_backend/internal/feature/event/domain"
	"shukatsu_backend/internal/feature/event/domain/entity"
	"shukatsu_backend/internal/feature/event/usecase"
)

// eventMySQL はEventRepositoryインターフェースのMySQL実装です。
type eventMySQL struct {
	db *gorm.DB
}

// eventMySQLがEventRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.EventRepository = (*eventMySQL)(nil)

// NewEventRepository は指定されたgorm.DB接続でeventMySQLの新しいインスタンスを生成します。
func NewEventRepository(db *gorm.DB) *eventMySQL {
	return &eventMySQL{db: db}
}

// EventModel は選考イベントレコードのテーブル定義です。
type EventModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	CompanyID uint   `gorm:"not null;index"`
	Type      string `gorm:"size:16;not null"`
	Title     string `gorm:"size:200;not null"`
	StartsAt  time.Time
	EndsAt    time.Time

	CompanyMatch *int
	JobMatch     *int
	Comment      string `gorm:"type:text"`
	ReviewedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EventModel) TableName() string {
	return "events"
}

func toModel(e *entity.Event) *EventModel {
	m := &EventModel{
		ID:        e.ID,
		UserID:    e.UserID,
		CompanyID: e.CompanyID,
		Type:      string(e.Type),
		Title:     e.Title,
		StartsAt:  e.StartsAt,
		EndsAt:    e.EndsAt,
	}
	if e.Review != nil {
		companyMatch := e.Review.CompanyMatch
		jobMatch := e.Review.JobMatch
		reviewedAt := e.Review.ReviewedAt
		m.CompanyMatch = &companyMatch
		m.JobMatch = &jobMatch
		m.Comment = e.Review.Comment
		m.ReviewedAt = &reviewedAt
	}
	return m
}

func toEntity(m *EventModel) *entity.Event {
	e := &entity.Event{
		ID:        m.ID,
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Type:      entity.EventType(m.Type),
		Title:     m.Title,
		StartsAt:  m.StartsAt,
		EndsAt:    m.EndsAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ReviewedAt != nil && m.CompanyMatch != nil && m.JobMatch != nil {
		e.Review = &entity.Review{
			CompanyMatch: *m.CompanyMatch,
			JobMatch:     *m.JobMatch,
			Comment:      m.Comment,
			ReviewedAt:   *m.ReviewedAt,
		}
	}
	return e
}

// Create はイベントを追加し、同一トランザクションで紐付け先企業の
// イベント件数と最終イベント日時を更新します。
// 企業の統計更新が0行なら企業が存在しないとみなしロールバックします。
func (r *eventMySQL) Create(ctx context.Context, event *entity.Event) error {
	m := toModel(event)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table("companies").
			Where("id = ? AND user_id = ?", event.CompanyID, event.UserID).
			Updates(map[string]any{
				"event_count": gorm.Expr("event_count + 1"),
				"last_event_at": gorm.Expr(
					"CASE WHEN last_event_at IS NULL OR last_event_at < ? THEN ? ELSE last_event_at END",
					event.StartsAt, event.StartsAt,
				),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrCompanyNotFound
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return err
	}
	event.ID = m.ID
	event.CreatedAt = m.CreatedAt
	event.UpdatedAt = m.UpdatedAt
	return nil
}

// UpdateReview は指定イベントの振り返り列だけを置き換えます。
// 対象が存在しない場合はdomain.ErrEventNotFoundを返します。
func (r *eventMySQL) UpdateReview(ctx context.Context, userID, eventID uint, review entity.Review) error {
	result := r.db.WithContext(ctx).
		Model(&EventModel{}).
		Where("id = ? AND user_id = ?", eventID, userID).
		Updates(map[string]any{
			"company_match": review.CompanyMatch,
			"job_match":     review.JobMatch,
			"comment":       review.Comment,
			"reviewed_at":   review.ReviewedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// ListByUser はユーザーの全イベントを開始日時の降順で返します。
func (r *eventMySQL) ListByUser(ctx context.Context, userID uint) ([]entity.Event, error) {
	var rows []EventModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("starts_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for i := range rows {
		out = append(out, *toEntity(&rows[i]))
	}
	return out, nil
}

// ListReviewedByUser は振り返り済みイベントのみを返します。
// トレンド分析の入力として使用します。
func (r *eventMySQL) ListReviewedByUser(ctx context.Context, userID uint) ([]entity.Event, error) {
	var rows []EventModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND reviewed_at IS NOT NULL", userID).
		Order("starts_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for i := range rows {
		out = append(out, *toEntity(&rows[i]))
	}
	return out, nil
}
