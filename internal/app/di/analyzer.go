// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"

	"shukatsu_backend/internal/platform/gemini"
)

// NewAnalyzer creates a fully configured Gemini client from environment variables.
// It fails fast when GEMINI_API_KEY is missing so the process does not start
// in a state where every registration would fail.
func NewAnalyzer(ctx context.Context) (*gemini.Client, error) {
	cfg := gemini.LoadConfig()
	return gemini.NewClient(ctx, cfg)
}
