// Package domain はtrendフィーチャーのドメインエラーを定義します。
package domain

import (
	"errors"
	"fmt"

	"shukatsu_backend/internal/feature/trend/domain/entity"
)

// ErrTrendNotFound は傾向分析がまだ実行されていないことを示します。
var ErrTrendNotFound = errors.New("trend summary not found")

// NotEnoughCompaniesError は登録企業数が分析に必要な最低数に
// 達していないことを示します。メッセージに現在の登録数を含みます。
type NotEnoughCompaniesError struct {
	Count int
}

func (e *NotEnoughCompaniesError) Error() string {
	return fmt.Sprintf("傾向分析には%d社以上の企業登録が必要です（現在%d社）",
		entity.MinCompaniesForAnalysis, e.Count)
}

// IsNotEnoughCompanies は企業数不足による失敗かを判定します。
func IsNotEnoughCompanies(err error) bool {
	var target *NotEnoughCompaniesError
	return errors.As(err, &target)
}
