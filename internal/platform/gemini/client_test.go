package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_MissingAPIKey(t *testing.T) {
	t.Parallel()

	// APIキー未設定は起動時点で失敗させる（リクエスト前のフェイルファスト）
	_, err := NewClient(context.Background(), Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")

	cfg := LoadConfig()
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid JSON", func(t *testing.T) {
		t.Parallel()

		var out struct {
			Name string `json:"name"`
		}
		err := decodeJSON(`{"name":"コドモン"}`, &out)
		require.NoError(t, err)
		assert.Equal(t, "コドモン", out.Name)
	})

	t.Run("invalid JSON carries raw text", func(t *testing.T) {
		t.Parallel()

		raw := "申し訳ありませんが、JSONを生成できませんでした。"
		var out map[string]any
		err := decodeJSON(raw, &out)
		require.Error(t, err)

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), "エラーは*ParseErrorであること")
		assert.Equal(t, raw, parseErr.Raw, "診断用に原文を保持すること")
		assert.Contains(t, err.Error(), raw)
	})
}
