// Package retry は外部API呼び出しの指数バックオフ付きリトライを提供します。
package retry

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultMaxAttempts はデフォルトの最大試行回数です。
	DefaultMaxAttempts = 3
	// DefaultInitialDelay はデフォルトの初回待機時間です。
	DefaultInitialDelay = 1 * time.Second
)

// Config はリトライの動作を設定します。
type Config struct {
	// MaxAttempts は最大試行回数（初回を含む）です。0以下の場合はDefaultMaxAttemptsを使用します。
	MaxAttempts int
	// InitialDelay は初回リトライまでの待機時間です。試行ごとに2倍になります（1s, 2s, 4s, ...）。
	InitialDelay time.Duration
	// RetryIf はリトライ対象のエラーかを判定する述語です。nilの場合は全エラーをリトライします。
	RetryIf func(error) bool
}

// Do はopを成功するまで最大MaxAttempts回実行します。
// 試行は常に直列で、並行実行は行いません。
//
// 前提条件: opは再実行しても安全（冪等、または副作用を許容できる）であること。
// このラッパーはエラーの種類を区別せず同一条件でリトライするため、
// 安全性の保証は呼び出し側の責任です。
//
// 全試行が失敗した場合は最後のエラーを返します。バックオフ待機中に
// ctxがキャンセルされた場合はctxのエラーを返します。
func Do[T any](ctx context.Context, cfg Config, op func(ctx context.Context) (T, error)) (T, error) {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	delay := cfg.InitialDelay
	if delay <= 0 {
		delay = DefaultInitialDelay
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			slog.Warn("リトライ待機中", "attempt", attempt, "max_attempts", maxAttempts, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
			// 次回の待機時間を2倍にする
			delay *= 2
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return zero, err
		}
	}
	return zero, lastErr
}
