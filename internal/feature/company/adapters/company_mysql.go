// Package adapters はcompanyフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"shukatsu_backend/internal/feature/company/domain"
	"shukatsu_backend/internal/feature/company/domain/entity"
	"shukatsu_backend/internal/feature/company/usecase"
)

// companyMySQL はCompanyRepositoryインターフェースのMySQL実装です。
type companyMySQL struct {
	db *gorm.DB
}

// companyMySQLがCompanyRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CompanyRepository = (*companyMySQL)(nil)

// NewCompanyRepository は指定されたgorm.DB接続でcompanyMySQLの新しいインスタンスを生成します。
func NewCompanyRepository(db *gorm.DB) *companyMySQL {
	return &companyMySQL{db: db}
}

// CompanyModel は企業レコードのテーブル定義です。
// (user_id, normalized_name)のユニーク制約が重複チェックと作成の間の
// レースを防ぎます。分析ペイロードはスキーマバージョン付きのJSON列に保存します。
type CompanyModel struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;uniqueIndex:company_user_norm,priority:1"`
	CompanyName    string `gorm:"size:255;not null"`
	NormalizedName string `gorm:"size:255;not null;uniqueIndex:company_user_norm,priority:2"`

	AnalysisJSON string `gorm:"type:json"`

	Status         string `gorm:"size:16;not null"`
	AnalysisModel  string `gorm:"size:64"`
	TokenCount     int    `gorm:"not null;default:0"`
	SourcesJSON    string `gorm:"type:json"`
	AnalyzedAt     time.Time
	SchemaVersion  int `gorm:"not null;default:2"`
	IsStale        bool
	StaleCheckedAt *time.Time
	Prompt         string `gorm:"type:text"`
	RawResponse    string `gorm:"type:mediumtext"`

	EventCount        int `gorm:"not null;default:0"`
	FirstRegisteredAt time.Time
	LastEventAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanyModel) TableName() string {
	return "companies"
}

// legacyAnalysisPayload はスキーマv1時代のフラットな分析形状です。
// 旧レコードの読み取り時にのみ使用し、現行の4セクション形状へ変換します。
type legacyAnalysisPayload struct {
	Overview       string   `json:"overview"`
	Strengths      []string `json:"strengths"`
	MarketPosition string   `json:"marketPosition"`
	Future         string   `json:"future"`
	Workstyle      string   `json:"workstyle"`
}

// decodeAnalysis はスキーマバージョンでデコーダーを選択します。
// フィールドの有無を探るのではなく、保存されたバージョン値で分岐します。
func decodeAnalysis(version int, raw string) (entity.Analysis, error) {
	var analysis entity.Analysis
	if raw == "" {
		return analysis, nil
	}

	if version <= 1 {
		var legacy legacyAnalysisPayload
		if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
			return analysis, fmt.Errorf("failed to decode legacy analysis: %w", err)
		}
		analysis.CorporateProfile.Overview = legacy.Overview
		analysis.CorporateProfile.Strengths = legacy.Strengths
		analysis.MarketAnalysis.Position = legacy.MarketPosition
		analysis.FutureDirection.Strategy = legacy.Future
		analysis.WorkEnvironment.Workstyle = legacy.Workstyle
		return analysis, nil
	}

	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return analysis, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return analysis, nil
}

func toModel(e *entity.Company) (*CompanyModel, error) {
	analysisJSON, err := json.Marshal(e.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	sourcesJSON, err := json.Marshal(e.Metadata.Sources)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sources: %w", err)
	}
	return &CompanyModel{
		ID:                e.ID,
		UserID:            e.UserID,
		CompanyName:       e.CompanyName,
		NormalizedName:    e.NormalizedName,
		AnalysisJSON:      string(analysisJSON),
		Status:            string(e.Metadata.Status),
		AnalysisModel:     e.Metadata.Model,
		TokenCount:        e.Metadata.TokenCount,
		SourcesJSON:       string(sourcesJSON),
		AnalyzedAt:        e.Metadata.AnalyzedAt,
		SchemaVersion:     e.Metadata.SchemaVersion,
		IsStale:           e.Metadata.IsStale,
		StaleCheckedAt:    e.Metadata.StaleCheckedAt,
		Prompt:            e.Metadata.Prompt,
		RawResponse:       e.Metadata.RawResponse,
		EventCount:        e.Stats.EventCount,
		FirstRegisteredAt: e.Stats.FirstRegisteredAt,
		LastEventAt:       e.Stats.LastEventAt,
	}, nil
}

func toEntity(m *CompanyModel) (*entity.Company, error) {
	analysis, err := decodeAnalysis(m.SchemaVersion, m.AnalysisJSON)
	if err != nil {
		return nil, err
	}
	sources := []string{}
	if m.SourcesJSON != "" {
		if err := json.Unmarshal([]byte(m.SourcesJSON), &sources); err != nil {
			return nil, fmt.Errorf("failed to decode sources: %w", err)
		}
	}
	return &entity.Company{
		ID:             m.ID,
		UserID:         m.UserID,
		CompanyName:    m.CompanyName,
		NormalizedName: m.NormalizedName,
		Analysis:       analysis,
		Metadata: entity.AnalysisMetadata{
			Status:         entity.AnalysisStatus(m.Status),
			Model:          m.AnalysisModel,
			TokenCount:     m.TokenCount,
			Sources:        sources,
			AnalyzedAt:     m.AnalyzedAt,
			SchemaVersion:  m.SchemaVersion,
			IsStale:        m.IsStale,
			StaleCheckedAt: m.StaleCheckedAt,
			Prompt:         m.Prompt,
			RawResponse:    m.RawResponse,
		},
		Stats: entity.CompanyStats{
			EventCount:        m.EventCount,
			FirstRegisteredAt: m.FirstRegisteredAt,
			LastEventAt:       m.LastEventAt,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// isDuplicateKeyError はユニーク制約違反かを判定します。
// MySQLエラー1062に加え、GORMのTranslateError有効時（テストのSQLite等）の
// gorm.ErrDuplicatedKeyも対象にします。
func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create は企業レコードを追加し、採番されたIDをcompanyへ設定します。
// (user_id, normalized_name)のユニーク制約違反はdomain.ErrDuplicateCompanyへ
// 変換され、呼び出し側が重複として扱います。
func (r *companyMySQL) Create(ctx context.Context, company *entity.Company) error {
	m, err := toModel(company)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateKeyError(err) {
			return domain.ErrDuplicateCompany
		}
		return err
	}
	company.ID = m.ID
	company.CreatedAt = m.CreatedAt
	company.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByNormalizedName はユーザースコープ内で正規化名が一致する企業を取得します。
func (r *companyMySQL) FindByNormalizedName(ctx context.Context, userID uint, normalizedName string) (*entity.Company, error) {
	var m CompanyModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND normalized_name = ?", userID, normalizedName).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return toEntity(&m)
}

// FindByID はユーザースコープ内でIDが一致する企業を取得します。
func (r *companyMySQL) FindByID(ctx context.Context, userID, id uint) (*entity.Company, error) {
	var m CompanyModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return toEntity(&m)
}

// ListByUser はユーザーの全企業を登録日時の降順で返します。
func (r *companyMySQL) ListByUser(ctx context.Context, userID uint) ([]entity.Company, error) {
	var rows []CompanyModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("first_registered_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Company, 0, len(rows))
	for i := range rows {
		e, err := toEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// UpdateAnalysis は分析とメタデータの列だけを丸ごと置き換えます。
// 統計情報の列には触れません。対象が存在しない場合はdomain.ErrCompanyNotFoundを返します。
func (r *companyMySQL) UpdateAnalysis(ctx context.Context, userID, id uint, analysis entity.Analysis, meta entity.AnalysisMetadata) error {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	sourcesJSON, err := json.Marshal(meta.Sources)
	if err != nil {
		return fmt.Errorf("failed to encode sources: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&CompanyModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"analysis_json":    string(analysisJSON),
			"status":           string(meta.Status),
			"analysis_model":   meta.Model,
			"token_count":      meta.TokenCount,
			"sources_json":     string(sourcesJSON),
			"analyzed_at":      meta.AnalyzedAt,
			"schema_version":   meta.SchemaVersion,
			"is_stale":         meta.IsStale,
			"stale_checked_at": meta.StaleCheckedAt,
			"prompt":           meta.Prompt,
			"raw_response":     meta.RawResponse,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
