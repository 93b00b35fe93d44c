package usecase

import (
	"fmt"
	"strings"

	companyentity "shukatsu_backend/internal/feature/company/domain/entity"
	evententity "shukatsu_backend/internal/feature/event/domain/entity"
)

// trendPromptHeader は傾向分析プロンプトの導入部です。
// JSONのキーはentity.TrendSummaryの形状と一致させています。
const trendPromptHeader = `あなたは就職活動中の学生を支援するキャリアアドバイザーです。
学生が登録した企業群と、イベント参加後の振り返りをもとに、就活の傾向分析を作成してください。

以下のJSON形式のみで回答してください。説明文やマークダウンは含めないでください。

{
  "overallTrend": "登録企業から読み取れる就活の方向性（200文字程度）",
  "topIndustries": [{"name": "業界名", "count": 社数, "percentage": 割合}],
  "topKeywords": [{"word": "キーワード", "count": 出現回数}],
  "recommendedSkills": ["身につけるべきスキル（最大5件）"],
  "matchInsights": {
    "highMatchCompanies": ["マッチ度の高い企業名（最大3社）"],
    "lowMatchCompanies": ["マッチ度の低い企業名（最大3社）"],
    "recommendedPositions": ["推奨ポジション（最大3件）"],
    "careerAdvice": "振り返りに基づくアドバイス（150文字程度）"
  }
}

制約:
- topIndustriesは最大10件、topKeywordsは最大10件とすること。
- percentageは登録企業全体に対する割合（0〜100）とすること。
- 振り返りデータが1件も無い場合、matchInsightsはJSONのnullとすること。推測で作成しないこと。
`

// BuildTrendPrompt は登録企業と振り返り済みイベントから傾向分析の
// プロンプトを組み立てます。副作用のない純粋関数です。
func BuildTrendPrompt(companies []companyentity.Company, reviewed []evententity.Event) string {
	var b strings.Builder
	b.WriteString(trendPromptHeader)

	nameByID := make(map[uint]string, len(companies))

	b.WriteString(fmt.Sprintf("\n登録企業（%d社）:\n", len(companies)))
	for i := range companies {
		c := &companies[i]
		nameByID[c.ID] = c.CompanyName
		b.WriteString(fmt.Sprintf("- %s: %s / 強み: %s\n",
			c.CompanyName,
			c.Analysis.CorporateProfile.Overview,
			strings.Join(c.Analysis.CorporateProfile.Strengths, "、")))
	}

	if len(reviewed) == 0 {
		b.WriteString("\n振り返りデータ: なし\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("\n振り返りデータ（%d件）:\n", len(reviewed)))
	for i := range reviewed {
		ev := &reviewed[i]
		if ev.Review == nil {
			continue
		}
		name := nameByID[ev.CompanyID]
		if name == "" {
			name = fmt.Sprintf("企業ID %d", ev.CompanyID)
		}
		b.WriteString(fmt.Sprintf("- %s「%s」: 企業マッチ度%d/5, 職種マッチ度%d/5",
			name, ev.Title, ev.Review.CompanyMatch, ev.Review.JobMatch))
		if ev.Review.Comment != "" {
			b.WriteString(" コメント: " + ev.Review.Comment)
		}
		b.WriteString("\n")
	}
	return b.String()
}
