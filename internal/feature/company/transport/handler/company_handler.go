// Package handler はcompanyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shukatsu_backend/internal/api"
	"shukatsu_backend/internal/feature/company/domain"
	"shukatsu_backend/internal/feature/company/domain/entity"
	"shukatsu_backend/internal/feature/company/usecase"
	"shukatsu_backend/internal/platform/gemini"
	jwtmw "shukatsu_backend/internal/platform/jwt"
)

// CompanyUsecase は企業操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CompanyUsecase interface {
	Register(ctx context.Context, userID uint, companyName string) (*usecase.RegisterResult, error)
	Reanalyze(ctx context.Context, userID, companyID uint) error
	Get(ctx context.Context, userID, companyID uint) (*entity.Company, error)
	List(ctx context.Context, userID uint) ([]entity.Company, error)
}

// CompanyHandler は企業操作のHTTPリクエストを処理します。
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler はCompanyHandlerの新しいインスタンスを生成します。
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Register は企業を登録し、AI分析を実行します。
// 正規化名が既存企業と一致した場合は既存IDをisDuplicate=trueで返します。
//
// エンドポイント: POST /companies
func (h *CompanyHandler) Register(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "認証が必要です"})
		return
	}

	var req api.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("企業登録リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "企業名が必要です"})
		return
	}

	result, err := h.uc.Register(c.Request.Context(), userID, req.CompanyName)
	if err != nil {
		h.writeError(c, err, "企業登録に失敗", "company", req.CompanyName)
		return
	}

	c.JSON(http.StatusOK, api.RegisterCompanyResponse{
		Success:     true,
		CompanyID:   result.CompanyID,
		IsDuplicate: result.IsDuplicate,
	})
}

// Reanalyze は既存企業の分析を新しいAI分析で置き換えます。
//
// エンドポイント: POST /companies/:id/reanalyze
func (h *CompanyHandler) Reanalyze(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "認証が必要です"})
		return
	}

	companyID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "企業IDが不正です"})
		return
	}

	if err := h.uc.Reanalyze(c.Request.Context(), userID, companyID); err != nil {
		h.writeError(c, err, "企業再分析に失敗", "company_id", companyID)
		return
	}

	c.JSON(http.StatusOK, api.ReanalyzeCompanyResponse{
		Success:   true,
		CompanyID: companyID,
		Message:   "企業分析を更新しました",
	})
}

// Get は企業レコードを1件返します。
//
// エンドポイント: GET /companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "認証が必要です"})
		return
	}

	companyID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "企業IDが不正です"})
		return
	}

	company, err := h.uc.Get(c.Request.Context(), userID, companyID)
	if err != nil {
		h.writeError(c, err, "企業取得に失敗", "company_id", companyID)
		return
	}

	c.JSON(http.StatusOK, toCompanyResponse(company))
}

// List はユーザーの全企業を返します。
//
// エンドポイント: GET /companies
func (h *CompanyHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "認証が必要です"})
		return
	}

	companies, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "企業一覧の取得に失敗")
		return
	}

	out := make([]api.CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, toCompanyResponse(&companies[i]))
	}
	c.JSON(http.StatusOK, out)
}

// writeError はドメインエラーをHTTPステータスへ変換します。
// 内部エラーは詳細をログへ残し、クライアントには汎用メッセージのみ返します。
func (h *CompanyHandler) writeError(c *gin.Context, err error, msg string, args ...any) {
	var parseErr *gemini.ParseError

	switch {
	case errors.Is(err, domain.ErrInvalidCompanyName):
		slog.Warn(msg, append(args, "error", err, "remote_addr", c.ClientIP())...)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "企業名が不正です"})
	case errors.Is(err, domain.ErrCompanyNotFound):
		slog.Warn(msg, append(args, "error", err)...)
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "企業が見つかりません"})
	case errors.As(err, &parseErr):
		slog.Error(msg, append(args, "error", err, "raw_response", parseErr.Raw)...)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "AI分析の応答を解析できませんでした"})
	default:
		slog.Error(msg, append(args, "error", err)...)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "サーバーエラーが発生しました"})
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// toCompanyResponse はエンティティを読み取りレスポンスへ変換します。
func toCompanyResponse(company *entity.Company) api.CompanyResponse {
	var lastEventAt *string
	if company.Stats.LastEventAt != nil {
		s := company.Stats.LastEventAt.Format(time.RFC3339)
		lastEventAt = &s
	}
	return api.CompanyResponse{
		ID:             company.ID,
		CompanyName:    company.CompanyName,
		NormalizedName: company.NormalizedName,
		CorporateProfile: api.CorporateProfileResponse{
			Overview:  company.Analysis.CorporateProfile.Overview,
			Strengths: company.Analysis.CorporateProfile.Strengths,
			Culture:   company.Analysis.CorporateProfile.Culture,
		},
		MarketAnalysis: api.MarketAnalysisResponse{
			Position:    company.Analysis.MarketAnalysis.Position,
			Competitors: company.Analysis.MarketAnalysis.Competitors,
			Trend:       company.Analysis.MarketAnalysis.Trend,
		},
		FutureDirection: api.FutureDirectionResponse{
			Strategy:      company.Analysis.FutureDirection.Strategy,
			Opportunities: company.Analysis.FutureDirection.Opportunities,
			Risks:         company.Analysis.FutureDirection.Risks,
		},
		WorkEnvironment: api.WorkEnvironmentResponse{
			Workstyle:     company.Analysis.WorkEnvironment.Workstyle,
			Benefits:      company.Analysis.WorkEnvironment.Benefits,
			GrowthSupport: company.Analysis.WorkEnvironment.GrowthSupport,
		},
		AnalysisStatus:    string(company.Metadata.Status),
		AnalysisModel:     company.Metadata.Model,
		AnalyzedAt:        company.Metadata.AnalyzedAt.Format(time.RFC3339),
		IsStale:           company.Metadata.IsStale,
		EventCount:        company.Stats.EventCount,
		FirstRegisteredAt: company.Stats.FirstRegisteredAt.Format(time.RFC3339),
		LastEventAt:       lastEventAt,
	}
}
