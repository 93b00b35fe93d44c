package usecase

import "fmt"

// analysisPromptTemplate は単一企業分析のプロンプトテンプレートです。
// JSONのキーはentity.Analysisの形状と一致させています。
// 不明な情報は「情報なし」と記載させ、推測による捏造を禁止しています。
const analysisPromptTemplate = `あなたは就職活動中の学生を支援するキャリアアドバイザーです。
企業「%s」について、就活生向けの企業分析を作成してください。

以下のJSON形式のみで回答してください。説明文やマークダウンは含めないでください。

{
  "corporateProfile": {
    "overview": "事業概要（150文字程度）",
    "strengths": ["強み1", "強み2", "強み3"],
    "culture": "社風・企業文化（100文字程度）"
  },
  "marketAnalysis": {
    "position": "市場での立ち位置（100文字程度）",
    "competitors": ["主要な競合企業（最大3社）"],
    "trend": "所属市場の動向（100文字程度）"
  },
  "futureDirection": {
    "strategy": "成長戦略（100文字程度）",
    "opportunities": ["事業機会（最大3件）"],
    "risks": ["リスク要因（最大3件）"]
  },
  "workEnvironment": {
    "workstyle": "働き方の特徴（100文字程度）",
    "benefits": ["福利厚生・制度（最大3件）"],
    "growthSupport": "若手の成長支援（100文字程度）"
  }
}

制約:
- 確実な情報が見つからない項目は「情報なし」と記載すること。推測で作成しないこと。
- 配列は空でもよいが、キーは必ず含めること。`

// BuildAnalysisPrompt は企業名から単一企業分析のプロンプトを組み立てます。
// 副作用のない純粋関数で、生成した文字列の送信と解析は呼び出し側の責務です。
func BuildAnalysisPrompt(companyName string) string {
	return fmt.Sprintf(analysisPromptTemplate, companyName)
}
