// Package entity はcompanyフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// AnalysisStatus はAI分析の状態を表します。
type AnalysisStatus string

const (
	// StatusCompleted は分析が完了していることを示します。
	StatusCompleted AnalysisStatus = "completed"
	// StatusPending は分析が未完了であることを示します。
	StatusPending AnalysisStatus = "pending"
	// StatusFailed は分析が失敗したことを示します。
	StatusFailed AnalysisStatus = "failed"
)

const (
	// AnalysisSchemaVersion は現行の分析ペイロードのスキーマバージョンです。
	// 旧バージョン（v1）はフラットな形状で保存されており、
	// このフィールドの値でデコーダーを切り替えます。
	AnalysisSchemaVersion = 2

	// StalenessThreshold は分析が古いと見なすまでの期間です。
	// あくまで読み取り時の助言用であり、再分析を強制するものではありません。
	StalenessThreshold = 30 * 24 * time.Hour
)

// CorporateProfile は企業概要セクションです。
type CorporateProfile struct {
	Overview  string   `json:"overview"`  // 事業概要
	Strengths []string `json:"strengths"` // 強み
	Culture   string   `json:"culture"`   // 社風
}

// MarketAnalysis は市場分析セクションです。
type MarketAnalysis struct {
	Position    string   `json:"position"`    // 市場での立ち位置
	Competitors []string `json:"competitors"` // 主要な競合
	Trend       string   `json:"trend"`       // 市場動向
}

// FutureDirection は将来性セクションです。
type FutureDirection struct {
	Strategy      string   `json:"strategy"`      // 成長戦略
	Opportunities []string `json:"opportunities"` // 事業機会
	Risks         []string `json:"risks"`         // リスク要因
}

// WorkEnvironment は働く環境セクションです。
type WorkEnvironment struct {
	Workstyle     string   `json:"workstyle"`     // 働き方
	Benefits      []string `json:"benefits"`      // 福利厚生
	GrowthSupport string   `json:"growthSupport"` // 成長支援
}

// Analysis はAIが生成した4セクション構成の企業分析です。
// JSONタグはGeminiへ指示するレスポンススキーマと一致させています。
type Analysis struct {
	CorporateProfile CorporateProfile `json:"corporateProfile"`
	MarketAnalysis   MarketAnalysis   `json:"marketAnalysis"`
	FutureDirection  FutureDirection  `json:"futureDirection"`
	WorkEnvironment  WorkEnvironment  `json:"workEnvironment"`
}

// AnalysisMetadata は分析の付帯情報を保持します。
type AnalysisMetadata struct {
	Status        AnalysisStatus
	Model         string   // 使用したモデル識別子
	TokenCount    int      // 上流APIが使用量を報告しないため常に0
	Sources       []string // 検索ソース引用。上流未実装のため常に空
	AnalyzedAt    time.Time
	SchemaVersion int
	IsStale       bool       // 読み取り時に計算される助言用フラグ
	StaleCheckedAt *time.Time
	Prompt        string // 監査用: 送信したプロンプト原文
	RawResponse   string // 監査用: モデルの生レスポンス
}

// CompanyStats は企業に紐づくイベントの集計情報です。
type CompanyStats struct {
	EventCount        int
	FirstRegisteredAt time.Time
	LastEventAt       *time.Time // イベント未登録の場合はnil
}

// Company は登録済み企業レコードを表します。
// NormalizedNameはユーザースコープ内で一意であり、重複検出のキーになります。
type Company struct {
	ID             uint
	UserID         uint
	CompanyName    string // ユーザーが入力したままの企業名
	NormalizedName string // 正規化済みの重複検出キー
	Analysis       Analysis
	Metadata       AnalysisMetadata
	Stats          CompanyStats
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
