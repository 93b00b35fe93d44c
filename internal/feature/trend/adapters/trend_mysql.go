// Package adapters はtrendフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shukatsu_backend/internal/feature/trend/domain"
	"shukatsu_backend/internal/feature/trend/domain/entity"
	"shukatsu_backend/internal/feature/trend/usecase"
)

// trendMySQL はTrendRepositoryインターフェースのMySQL実装です。
type trendMySQL struct {
	db *gorm.DB
}

// trendMySQLがTrendRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TrendRepository = (*trendMySQL)(nil)

// NewTrendRepository は指定されたgorm.DB接続でtrendMySQLの新しいインスタンスを生成します。
func NewTrendRepository(db *gorm.DB) *trendMySQL {
	return &trendMySQL{db: db}
}

// TrendSummaryModel は傾向サマリーのテーブル定義です。
// user_idのユニーク制約でユーザーごとに1件だけ保持します。
type TrendSummaryModel struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"not null;uniqueIndex"`
	OverallTrend string `gorm:"type:text"`

	IndustriesJSON string `gorm:"type:json"`
	KeywordsJSON   string `gorm:"type:json"`
	SkillsJSON     string `gorm:"type:json"`
	InsightsJSON   string `gorm:"type:json"`

	AnalyzedAt   time.Time
	CompanyCount int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TrendSummaryModel) TableName() string {
	return "trend_summaries"
}

func toModel(e *entity.TrendSummary) (*TrendSummaryModel, error) {
	industriesJSON, err := json.Marshal(e.TopIndustries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode industries: %w", err)
	}
	keywordsJSON, err := json.Marshal(e.TopKeywords)
	if err != nil {
		return nil, fmt.Errorf("failed to encode keywords: %w", err)
	}
	skillsJSON, err := json.Marshal(e.RecommendedSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}
	// MatchInsightsがnilの場合もJSONのnullとして保存する
	insightsJSON, err := json.Marshal(e.MatchInsights)
	if err != nil {
		return nil, fmt.Errorf("failed to encode insights: %w", err)
	}
	return &TrendSummaryModel{
		ID:             e.ID,
		UserID:         e.UserID,
		OverallTrend:   e.OverallTrend,
		IndustriesJSON: string(industriesJSON),
		KeywordsJSON:   string(keywordsJSON),
		SkillsJSON:     string(skillsJSON),
		InsightsJSON:   string(insightsJSON),
		AnalyzedAt:     e.AnalyzedAt,
		CompanyCount:   e.CompanyCount,
	}, nil
}

func toEntity(m *TrendSummaryModel) (*entity.TrendSummary, error) {
	e := &entity.TrendSummary{
		ID:           m.ID,
		UserID:       m.UserID,
		OverallTrend: m.OverallTrend,
		AnalyzedAt:   m.AnalyzedAt,
		CompanyCount: m.CompanyCount,
	}
	if m.IndustriesJSON != "" {
		if err := json.Unmarshal([]byte(m.IndustriesJSON), &e.TopIndustries); err != nil {
			return nil, fmt.Errorf("failed to decode industries: %w", err)
		}
	}
	if m.KeywordsJSON != "" {
		if err := json.Unmarshal([]byte(m.KeywordsJSON), &e.TopKeywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords: %w", err)
		}
	}
	if m.SkillsJSON != "" {
		if err := json.Unmarshal([]byte(m.SkillsJSON), &e.RecommendedSkills); err != nil {
			return nil, fmt.Errorf("failed to decode skills: %w", err)
		}
	}
	if m.InsightsJSON != "" {
		if err := json.Unmarshal([]byte(m.InsightsJSON), &e.MatchInsights); err != nil {
			return nil, fmt.Errorf("failed to decode insights: %w", err)
		}
	}
	return e, nil
}

// Save はユーザーの傾向サマリーをUPSERTで丸ごと置き換えます。
func (r *trendMySQL) Save(ctx context.Context, summary *entity.TrendSummary) error {
	m, err := toModel(summary)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	summary.ID = m.ID
	return nil
}

// FindByUser はユーザーの傾向サマリーを取得します。
func (r *trendMySQL) FindByUser(ctx context.Context, userID uint) (*entity.TrendSummary, error) {
	var m TrendSummaryModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTrendNotFound
		}
		return nil, err
	}
	return toEntity(&m)
}
