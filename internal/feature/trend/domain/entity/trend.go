// Package entity はtrendフィーチャーのドメインエンティティを定義します。
package entity

import "time"

const (
	// MinCompaniesForAnalysis は傾向分析に必要な最低企業数です。
	MinCompaniesForAnalysis = 3

	// MaxTopIndustries は業界分布の最大エントリ数です。
	MaxTopIndustries = 10
	// MaxTopKeywords はキーワード頻度の最大エントリ数です。
	MaxTopKeywords = 10
	// MaxMatchCompanies はマッチ度インサイトの企業リストの最大件数です。
	MaxMatchCompanies = 3
	// MaxRecommendedPositions は推奨ポジションの最大件数です。
	MaxRecommendedPositions = 3
)

// IndustryShare は登録企業の業界分布の1エントリです。
type IndustryShare struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// KeywordCount は分析テキストに頻出するキーワードの1エントリです。
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// MatchInsights はイベント振り返りに基づくマッチ度インサイトです。
// 振り返り済みイベントが1件も無い場合は生成されません。
type MatchInsights struct {
	HighMatchCompanies   []string `json:"highMatchCompanies"`
	LowMatchCompanies    []string `json:"lowMatchCompanies"`
	RecommendedPositions []string `json:"recommendedPositions"`
	CareerAdvice         string   `json:"careerAdvice"`
}

// TrendSummary はユーザーごとに1件だけ保持する傾向分析サマリーです。
// 再分析のたびに丸ごと置き換えられます。
type TrendSummary struct {
	ID                uint            `json:"id"`
	UserID            uint            `json:"userId"`
	OverallTrend      string          `json:"overallTrend"`
	TopIndustries     []IndustryShare `json:"topIndustries"`
	TopKeywords       []KeywordCount  `json:"topKeywords"`
	RecommendedSkills []string        `json:"recommendedSkills"`
	MatchInsights     *MatchInsights  `json:"matchInsights"`
	AnalyzedAt        time.Time       `json:"analyzedAt"`
	CompanyCount      int             `json:"companyCount"`
}
