package gemini

import (
	"os"
	"time"
)

// Config はGeminiクライアントの設定を保持します。
type Config struct {
	APIKey       string        // Gemini APIキー（必須）
	Model        string        // 使用モデル。空の場合はDefaultModel
	MaxAttempts  int           // API呼び出しの最大試行回数。0以下はretryパッケージのデフォルト
	InitialDelay time.Duration // リトライの初回待機時間。0以下はretryパッケージのデフォルト
}

// LoadConfig は環境変数からGemini設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  os.Getenv("GEMINI_MODEL"),
	}
}
