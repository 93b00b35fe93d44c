// Package gemini はGoogle Gemini APIを使用したJSON生成クライアントを提供します。
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"shukatsu_backend/internal/shared/retry"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// generationTemperature は分析結果のぶれを抑えるための低温度設定です。
	generationTemperature = float32(0.2)
)

// ErrAPIKeyMissing はGEMINI_API_KEYが未設定の場合に返されます。
// 起動時に検出し、リクエスト処理前に失敗させます。
var ErrAPIKeyMissing = errors.New("GEMINI_API_KEY is not set")

// ParseError はAIレスポンスがJSONとして解析できなかったことを表します。
// 診断用に生のレスポンステキストを保持します。解析失敗はリトライ対象外です。
type ParseError struct {
	Raw string // モデルが返した生テキスト
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse AI response as JSON: %v (raw: %q)", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Client はGemini APIのJSON生成クライアントです。
// プロセス起動時に一度だけ生成し、各ハンドラーに注入して使用します。
type Client struct {
	client   *genai.Client
	model    string
	retryCfg retry.Config
}

// NewClient はGeminiクライアントの新しいインスタンスを生成します。
// APIキーが未設定の場合、リクエストを試みる前にErrAPIKeyMissingで失敗します。
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{
		client:   client,
		model:    model,
		retryCfg: retry.Config{MaxAttempts: cfg.MaxAttempts, InitialDelay: cfg.InitialDelay},
	}, nil
}

// Model は使用中のモデル識別子を返します。
func (c *Client) Model() string { return c.model }

// GenerateJSON はプロンプトを送信し、レスポンスをJSONとしてoutへ解析します。
// 生成はJSON MIMEタイプ・低温度設定で行い、トランスポートエラーのみ
// 指数バックオフでリトライします。解析失敗は即座に*ParseErrorとして返し、
// リトライしません。
//
// 戻り値のrawは監査用のレスポンス原文です。解析に成功した場合も返されます。
func (c *Client) GenerateJSON(ctx context.Context, prompt string, out any) (raw string, model string, err error) {
	raw, err = retry.Do(ctx, c.retryCfg, func(ctx context.Context) (string, error) {
		config := &genai.GenerateContentConfig{
			Temperature:      genai.Ptr(generationTemperature),
			ResponseMIMEType: "application/json",
		}
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
		if err != nil {
			return "", fmt.Errorf("gemini API request failed: %w", err)
		}
		return resp.Text(), nil
	})
	if err != nil {
		return "", c.model, err
	}

	if err := decodeJSON(raw, out); err != nil {
		return raw, c.model, err
	}
	return raw, c.model, nil
}

// decodeJSON はレスポンステキストをJSONとして解析します。
// 失敗時は原文を添えた*ParseErrorを返します。
func decodeJSON(raw string, out any) error {
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}
