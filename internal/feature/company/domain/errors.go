// Package domain はcompanyフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrCompanyNotFound は指定された企業レコードが存在しないことを示します。
	ErrCompanyNotFound = errors.New("company not found")

	// ErrDuplicateCompany は同じ正規化名の企業が既に登録されていることを示します。
	// ストレージ層のユニーク制約違反もこのエラーに変換されます。
	ErrDuplicateCompany = errors.New("company with the same normalized name already exists")

	// ErrInvalidCompanyName は企業名が入力要件を満たしていないことを示します。
	ErrInvalidCompanyName = errors.New("invalid company name")
)
