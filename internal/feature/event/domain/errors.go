// Package domain はeventフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrEventNotFound は条件に一致するイベントが存在しないことを示します。
	ErrEventNotFound = errors.New("event not found")

	// ErrCompanyNotFound はイベントの紐付け先企業がユーザースコープ内に
	// 存在しないことを示します。
	ErrCompanyNotFound = errors.New("company not found")

	// ErrInvalidEventType は未知のイベント種別が指定されたことを示します。
	ErrInvalidEventType = errors.New("invalid event type")

	// ErrInvalidEventTime はイベントの終了時刻が開始時刻より前であることを示します。
	ErrInvalidEventTime = errors.New("event must not end before it starts")

	// ErrInvalidRating はマッチ度が1〜5の範囲外であることを示します。
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
