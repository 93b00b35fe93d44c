// Package entity はeventフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// EventType は選考イベントの種別です。
type EventType string

const (
	// EventTypeInterview は面接イベントです。
	EventTypeInterview EventType = "interview"
	// EventTypeInfoSession は説明会イベントです。
	EventTypeInfoSession EventType = "info_session"
	// EventTypeOther はその他のイベントです。
	EventTypeOther EventType = "other"
)

// Valid は既知のイベント種別かを返します。
func (t EventType) Valid() bool {
	switch t {
	case EventTypeInterview, EventTypeInfoSession, EventTypeOther:
		return true
	}
	return false
}

// Review はイベント参加後の振り返り記録です。
// マッチ度は1〜5の整数です。
type Review struct {
	CompanyMatch int
	JobMatch     int
	Comment      string
	ReviewedAt   time.Time
}

// Event は選考イベント（面接・説明会など）のレコードです。
// ReviewはPUT /events/:id/reviewで記入されるまでnilです。
type Event struct {
	ID        uint
	UserID    uint
	CompanyID uint
	Type      EventType
	Title     string
	StartsAt  time.Time
	EndsAt    time.Time

	Review *Review

	CreatedAt time.Time
	UpdatedAt time.Time
}
