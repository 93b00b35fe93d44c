// Package entity はauthフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// User は登録済みユーザーを表します。
type User struct {
	// ID はユーザーの一意な識別子です。
	ID uint `gorm:"primaryKey"`

	// Email は認証に使用するメールアドレスです。全ユーザー間で一意です。
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password はbcryptでハッシュ化されたパスワードです。
	// 平文を保存してはいけません。
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
