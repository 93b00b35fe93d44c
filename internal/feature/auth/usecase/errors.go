package usecase

import "errors"

var (
	// ErrEmailAlreadyExists は同じメールアドレスのユーザーが既に存在することを示します。
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound は条件に一致するユーザーが存在しないことを示します。
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials は認証情報が正しくないことを示します。
	// ユーザー列挙を防ぐため、未登録と不一致を区別しません。
	ErrInvalidCredentials = errors.New("invalid email or password")
)
