// Package api は各エンドポイントのリクエスト/レスポンスDTOを定義します。
// Ginのbindingタグで入力チェックを行います。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は処理結果メッセージのみを返す共通レスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupRequest は/signupのリクエストボディです。
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest は/loginのリクエストボディです。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse はログイン成功時のレスポンスです。
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterCompanyRequest はPOST /companiesのリクエストボディです。
type RegisterCompanyRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
}

// RegisterCompanyResponse は企業登録の結果です。
// 正規化名が既存企業と一致した場合、isDuplicateがtrueになり
// 既存レコードのIDが返されます。
type RegisterCompanyResponse struct {
	Success     bool   `json:"success"`
	CompanyID   uint   `json:"companyId"`
	IsDuplicate bool   `json:"isDuplicate"`
}

// ReanalyzeCompanyResponse は企業再分析の結果です。
type ReanalyzeCompanyResponse struct {
	Success   bool   `json:"success"`
	CompanyID uint   `json:"companyId"`
	Message   string `json:"message"`
}

// CorporateProfileResponse は企業概要セクションです。
type CorporateProfileResponse struct {
	Overview  string   `json:"overview"`
	Strengths []string `json:"strengths"`
	Culture   string   `json:"culture"`
}

// MarketAnalysisResponse は市場分析セクションです。
type MarketAnalysisResponse struct {
	Position    string   `json:"position"`
	Competitors []string `json:"competitors"`
	Trend       string   `json:"trend"`
}

// FutureDirectionResponse は将来性セクションです。
type FutureDirectionResponse struct {
	Strategy      string   `json:"strategy"`
	Opportunities []string `json:"opportunities"`
	Risks         []string `json:"risks"`
}

// WorkEnvironmentResponse は働く環境セクションです。
type WorkEnvironmentResponse struct {
	Workstyle     string   `json:"workstyle"`
	Benefits      []string `json:"benefits"`
	GrowthSupport string   `json:"growthSupport"`
}

// CompanyResponse は企業レコードの読み取りレスポンスです。
type CompanyResponse struct {
	ID                uint                     `json:"id"`
	CompanyName       string                   `json:"companyName"`
	NormalizedName    string                   `json:"normalizedName"`
	CorporateProfile  CorporateProfileResponse `json:"corporateProfile"`
	MarketAnalysis    MarketAnalysisResponse   `json:"marketAnalysis"`
	FutureDirection   FutureDirectionResponse  `json:"futureDirection"`
	WorkEnvironment   WorkEnvironmentResponse  `json:"workEnvironment"`
	AnalysisStatus    string                   `json:"analysisStatus"`
	AnalysisModel     string                   `json:"analysisModel"`
	AnalyzedAt        string                   `json:"analyzedAt"`
	IsStale           bool                     `json:"isStale"`
	EventCount        int                      `json:"eventCount"`
	FirstRegisteredAt string                   `json:"firstRegisteredAt"`
	LastEventAt       *string                  `json:"lastEventAt"`
}

// CreateEventRequest はPOST /eventsのリクエストボディです。
type CreateEventRequest struct {
	CompanyID uint   `json:"companyId" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=interview info_session other"`
	Title     string `json:"title" binding:"required,max=200"`
	StartsAt  string `json:"startsAt" binding:"required"` // RFC3339
	EndsAt    string `json:"endsAt" binding:"required"`   // RFC3339
}

// ReviewEventRequest はPUT /events/:id/reviewのリクエストボディです。
// マッチ度は1〜5の整数です。
type ReviewEventRequest struct {
	CompanyMatch int    `json:"companyMatch" binding:"required,min=1,max=5"`
	JobMatch     int    `json:"jobMatch" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"max=2000"`
}

// EventResponse はイベントレコードの読み取りレスポンスです。
type EventResponse struct {
	ID           uint   `json:"id"`
	CompanyID    uint   `json:"companyId"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	StartsAt     string `json:"startsAt"`
	EndsAt       string `json:"endsAt"`
	CompanyMatch *int   `json:"companyMatch"`
	JobMatch     *int   `json:"jobMatch"`
	Comment      string `json:"comment"`
	ReviewedAt   *string `json:"reviewedAt"`
}

// IndustryShareResponse は業界分布の1エントリです。
type IndustryShareResponse struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// KeywordCountResponse はキーワード頻度の1エントリです。
type KeywordCountResponse struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// MatchInsightsResponse はレビュー済みイベントが存在する場合のみ返される
// マッチ度インサイトです。レビューが無い場合はnullになります。
type MatchInsightsResponse struct {
	HighMatchCompanies   []string `json:"highMatchCompanies"`
	LowMatchCompanies    []string `json:"lowMatchCompanies"`
	RecommendedPositions []string `json:"recommendedPositions"`
	CareerAdvice         string   `json:"careerAdvice"`
}

// TrendSummaryResponse は傾向分析サマリーのレスポンスです。
type TrendSummaryResponse struct {
	Success           bool                    `json:"success"`
	OverallTrend      string                  `json:"overallTrend"`
	TopIndustries     []IndustryShareResponse `json:"topIndustries"`
	TopKeywords       []KeywordCountResponse  `json:"topKeywords"`
	RecommendedSkills []string                `json:"recommendedSkills"`
	MatchInsights     *MatchInsightsResponse  `json:"matchInsights"`
	AnalyzedAt        string                  `json:"analyzedAt"`
	CompanyCount      int                     `json:"companyCount"`
}
