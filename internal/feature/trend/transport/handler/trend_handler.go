// Package handler はtrendフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shukatsu_backend/internal/api"
	"shukatsu_backend/internal/feature/trend/domain"
	"shukatsu_backend/internal/feature/trend/domain/entity"
	"shukatsu_backend/internal/platform/gemini"
	jwtmw "shukatsu_backend/internal/platform/jwt"
)

// TrendUsecase は傾向分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TrendUsecase interface {
	Analyze(ctx context.Context, userID uint) (*entity.TrendSummary, error)
	Get(ctx context.Context, userID uint) (*entity.TrendSummary, error)
}

// TrendHandler は傾向分析のHTTPリクエストを処理します。
type TrendHandler struct {
	uc TrendUsecase
}

// NewTrendHandler はTrendHandlerの新しいインスタンスを生成します。
func NewTrendHandler(uc TrendUsecase) *TrendHandler {
	return &TrendHandler{uc: uc}
}

// Analyze は登録企業と振り返りから傾向サマリーを生成します。
// 登録企業が3社未満の場合は412を返します。
//
// エンドポイント: POST /trends/analyze
func (h *TrendHandler) Analyze(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "認証が必要です"})
		return
	}

	summary, err := h.uc.Analyze(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "傾向分析に失敗")
		return
	}

	c.JSON(http.StatusOK, toTrendResponse(summary))
}

// Get は保存済みの傾向サマリーを返します。
//
// エンドポイント: GET /trends
func (h *TrendHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "認証が必要です"})
		return
	}

	summary, err := h.uc.Get(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "傾向サマリーの取得に失敗")
		return
	}

	c.JSON(http.StatusOK, toTrendResponse(summary))
}

// writeError はドメインエラーをHTTPステータスへ変換します。
func (h *TrendHandler) writeError(c *gin.Context, err error, msg string) {
	var parseErr *gemini.ParseError

	switch {
	case domain.IsNotEnoughCompanies(err):
		slog.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusPreconditionFailed, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrTrendNotFound):
		slog.Warn(msg, "error", err)
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "傾向分析がまだ実行されていません"})
	case errors.As(err, &parseErr):
		slog.Error(msg, "error", err, "raw_response", parseErr.Raw)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "AI分析の応答を解析できませんでした"})
	default:
		slog.Error(msg, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "サーバーエラーが発生しました"})
	}
}

// toTrendResponse はエンティティを読み取りレスポンスへ変換します。
func toTrendResponse(summary *entity.TrendSummary) api.TrendSummaryResponse {
	industries := make([]api.IndustryShareResponse, 0, len(summary.TopIndustries))
	for _, s := range summary.TopIndustries {
		industries = append(industries, api.IndustryShareResponse{
			Name:       s.Name,
			Count:      s.Count,
			Percentage: s.Percentage,
		})
	}
	keywords := make([]api.KeywordCountResponse, 0, len(summary.TopKeywords))
	for _, k := range summary.TopKeywords {
		keywords = append(keywords, api.KeywordCountResponse{Word: k.Word, Count: k.Count})
	}

	var insights *api.MatchInsightsResponse
	if summary.MatchInsights != nil {
		insights = &api.MatchInsightsResponse{
			HighMatchCompanies:   summary.MatchInsights.HighMatchCompanies,
			LowMatchCompanies:    summary.MatchInsights.LowMatchCompanies,
			RecommendedPositions: summary.MatchInsights.RecommendedPositions,
			CareerAdvice:         summary.MatchInsights.CareerAdvice,
		}
	}

	return api.TrendSummaryResponse{
		Success:           true,
		OverallTrend:      summary.OverallTrend,
		TopIndustries:     industries,
		TopKeywords:       keywords,
		RecommendedSkills: summary.RecommendedSkills,
		MatchInsights:     insights,
		AnalyzedAt:        summary.AnalyzedAt.Format(time.RFC3339),
		CompanyCount:      summary.CompanyCount,
	}
}
