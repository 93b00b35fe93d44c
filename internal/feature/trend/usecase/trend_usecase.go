// Package usecase はtrendフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	companyentity "shukatsu_backend/internal/feature/company/domain/entity"
	evententity "shukatsu_backend/internal/feature/event/domain/entity"
	"shukatsu_backend/internal/feature/trend/domain"
	"shukatsu_backend/internal/feature/trend/domain/entity"
)

// TrendRepository は傾向サマリーの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TrendRepository interface {
	// Save はユーザーの傾向サマリーを保存します。
	// 既存のサマリーがある場合は丸ごと置き換えます。
	Save(ctx context.Context, summary *entity.TrendSummary) error

	// FindByUser はユーザーの傾向サマリーを取得します。
	// 一度も分析していない場合はdomain.ErrTrendNotFoundを返します。
	FindByUser(ctx context.Context, userID uint) (*entity.TrendSummary, error)
}

// CompanyReader は傾向分析の入力となる登録企業の読み取りを抽象化します。
type CompanyReader interface {
	ListByUser(ctx context.Context, userID uint) ([]companyentity.Company, error)
}

// EventReader は傾向分析の入力となる振り返り済みイベントの読み取りを抽象化します。
type EventReader interface {
	ListReviewedByUser(ctx context.Context, userID uint) ([]evententity.Event, error)
}

// Analyzer はAIモデルへのJSON生成リクエストを抽象化します。
type Analyzer interface {
	GenerateJSON(ctx context.Context, prompt string, out any) (raw, model string, err error)
}

// trendPayload はAI応答のデコード先です。
// リストの上限はAI任せにせず、デコード後にこちらで切り詰めます。
type trendPayload struct {
	OverallTrend      string                 `json:"overallTrend"`
	TopIndustries     []entity.IndustryShare `json:"topIndustries"`
	TopKeywords       []entity.KeywordCount  `json:"topKeywords"`
	RecommendedSkills []string               `json:"recommendedSkills"`
	MatchInsights     *entity.MatchInsights  `json:"matchInsights"`
}

// trendUsecase は傾向分析のビジネスロジックを実装します。
type trendUsecase struct {
	trends    TrendRepository
	companies CompanyReader
	events    EventReader
	analyzer  Analyzer
	now       func() time.Time
}

// NewTrendUsecase はtrendUsecaseの新しいインスタンスを生成します。
func NewTrendUsecase(trends TrendRepository, companies CompanyReader, events EventReader, analyzer Analyzer) *trendUsecase {
	return &trendUsecase{
		trends:    trends,
		companies: companies,
		events:    events,
		analyzer:  analyzer,
		now:       time.Now,
	}
}

// Analyze は登録企業と振り返りから傾向サマリーを生成し、保存します。
// 企業数が最低数に満たない場合はNotEnoughCompaniesErrorを返します。
func (u *trendUsecase) Analyze(ctx context.Context, userID uint) (*entity.TrendSummary, error) {
	companies, err := u.companies.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	if len(companies) < entity.MinCompaniesForAnalysis {
		return nil, &domain.NotEnoughCompaniesError{Count: len(companies)}
	}

	reviewed, err := u.events.ListReviewedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewed events: %w", err)
	}

	prompt := BuildTrendPrompt(companies, reviewed)

	var payload trendPayload
	if _, _, err := u.analyzer.GenerateJSON(ctx, prompt, &payload); err != nil {
		return nil, err
	}

	summary := &entity.TrendSummary{
		UserID:            userID,
		OverallTrend:      payload.OverallTrend,
		TopIndustries:     clamp(payload.TopIndustries, entity.MaxTopIndustries),
		TopKeywords:       clamp(payload.TopKeywords, entity.MaxTopKeywords),
		RecommendedSkills: payload.RecommendedSkills,
		MatchInsights:     payload.MatchInsights,
		AnalyzedAt:        u.now(),
		CompanyCount:      len(companies),
	}

	// 振り返りが無いのにモデルがインサイトを返した場合は捨てる
	if len(reviewed) == 0 {
		summary.MatchInsights = nil
	}
	if summary.MatchInsights != nil {
		summary.MatchInsights.HighMatchCompanies = clamp(summary.MatchInsights.HighMatchCompanies, entity.MaxMatchCompanies)
		summary.MatchInsights.LowMatchCompanies = clamp(summary.MatchInsights.LowMatchCompanies, entity.MaxMatchCompanies)
		summary.MatchInsights.RecommendedPositions = clamp(summary.MatchInsights.RecommendedPositions, entity.MaxRecommendedPositions)
	}

	if err := u.trends.Save(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to save trend summary: %w", err)
	}
	return summary, nil
}

// Get は保存済みの傾向サマリーを返します。
func (u *trendUsecase) Get(ctx context.Context, userID uint) (*entity.TrendSummary, error) {
	return u.trends.FindByUser(ctx, userID)
}

// clamp はスライスを最大n件に切り詰めます。
func clamp[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
