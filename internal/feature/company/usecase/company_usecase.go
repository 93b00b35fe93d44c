// Package usecase はcompanyフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"shukatsu_backend/internal/feature/company/domain"
	"shukatsu_backend/internal/feature/company/domain/entity"
)

const (
	// MaxCompanyNameLength は企業名の最大文字数（rune数）です。
	MaxCompanyNameLength = 100
)

// validCompanyName は企業名に許可される文字パターンです
// （英数字・日本語・スペース・中黒・括弧・法人格囲み文字など）。
// スクリプトタグ等の不正なマークアップはここで弾かれます。
var validCompanyName = regexp.MustCompile(`^[\p{L}\p{N}\s・\-\.&,'()（）㈱㈲]+$`)

// CompanyRepository は企業レコードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CompanyRepository interface {
	// Create は新しい企業レコードを永続化し、採番されたIDをcompanyへ設定します。
	// 同一ユーザー・同一正規化名のレコードが既に存在する場合、
	// domain.ErrDuplicateCompanyを返します。
	Create(ctx context.Context, company *entity.Company) error

	// FindByNormalizedName はユーザースコープ内で正規化名が一致する企業を取得します。
	// 存在しない場合はdomain.ErrCompanyNotFoundを返します。
	FindByNormalizedName(ctx context.Context, userID uint, normalizedName string) (*entity.Company, error)

	// FindByID はユーザースコープ内でIDが一致する企業を取得します。
	// 存在しない場合はdomain.ErrCompanyNotFoundを返します。
	FindByID(ctx context.Context, userID, id uint) (*entity.Company, error)

	// ListByUser はユーザーの全企業を登録日時の降順で返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Company, error)

	// UpdateAnalysis は既存レコードの分析とメタデータを丸ごと置き換えます。
	// 統計情報（stats）には触れません。
	UpdateAnalysis(ctx context.Context, userID, id uint, analysis entity.Analysis, meta entity.AnalysisMetadata) error
}

// Analyzer はAIによるJSON生成を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Analyzer interface {
	// GenerateJSON はプロンプトを送信し、レスポンスをoutへJSON解析します。
	// 監査用のレスポンス原文と使用モデル名を返します。
	GenerateJSON(ctx context.Context, prompt string, out any) (raw string, model string, err error)
}

// RegisterResult は企業登録の結果です。
type RegisterResult struct {
	CompanyID   uint
	IsDuplicate bool
}

// companyUsecase は企業の登録・重複検出・再分析のビジネスロジックを提供します。
type companyUsecase struct {
	companies CompanyRepository
	analyzer  Analyzer
	now       func() time.Time
}

// NewCompanyUsecase はcompanyUsecaseの新しいインスタンスを生成します。
func NewCompanyUsecase(companies CompanyRepository, analyzer Analyzer) *companyUsecase {
	return &companyUsecase{companies: companies, analyzer: analyzer, now: time.Now}
}

// validateCompanyName は企業名の入力要件（非空・最大100文字・許可文字のみ）を検証します。
func validateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidCompanyName)
	}
	if utf8.RuneCountInString(name) > MaxCompanyNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", domain.ErrInvalidCompanyName, MaxCompanyNameLength)
	}
	if !validCompanyName.MatchString(name) {
		return fmt.Errorf("%w: name contains invalid characters", domain.ErrInvalidCompanyName)
	}
	return nil
}

// Register は企業名を正規化して重複を検出し、新規の場合はAI分析付きで登録します。
//
// 既存企業と正規化名が一致した場合は既存レコードのIDをIsDuplicate=trueで返し、
// 再分析や統計更新は行いません。AI分析が失敗した場合はレコードを作成しません。
//
// 重複チェックと作成の間のレースはストレージ層のユニーク制約で解決します。
// 作成時に制約違反が返された場合、勝者のレコードを読み直して重複として返します。
func (u *companyUsecase) Register(ctx context.Context, userID uint, companyName string) (*RegisterResult, error) {
	if err := validateCompanyName(companyName); err != nil {
		return nil, err
	}

	normalized := domain.NormalizeCompanyName(companyName)
	if normalized == "" {
		// 法人格トークンのみの入力は識別キーを持てない
		return nil, fmt.Errorf("%w: name consists only of entity-type tokens", domain.ErrInvalidCompanyName)
	}

	existing, err := u.companies.FindByNormalizedName(ctx, userID, normalized)
	if err == nil {
		return &RegisterResult{CompanyID: existing.ID, IsDuplicate: true}, nil
	}
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		return nil, fmt.Errorf("duplicate lookup failed: %w", err)
	}

	analysis, meta, err := u.analyze(ctx, companyName)
	if err != nil {
		return nil, err
	}

	now := u.now()
	company := &entity.Company{
		UserID:         userID,
		CompanyName:    companyName,
		NormalizedName: normalized,
		Analysis:       *analysis,
		Metadata:       *meta,
		Stats: entity.CompanyStats{
			EventCount:        0,
			FirstRegisteredAt: now,
		},
	}
	if err := u.companies.Create(ctx, company); err != nil {
		if errors.Is(err, domain.ErrDuplicateCompany) {
			// 並行登録に敗れた場合は勝者のレコードを重複として返す
			winner, findErr := u.companies.FindByNormalizedName(ctx, userID, normalized)
			if findErr != nil {
				return nil, fmt.Errorf("duplicate resolution failed: %w", findErr)
			}
			return &RegisterResult{CompanyID: winner.ID, IsDuplicate: true}, nil
		}
		return nil, fmt.Errorf("failed to persist company: %w", err)
	}

	return &RegisterResult{CompanyID: company.ID, IsDuplicate: false}, nil
}

// Reanalyze は既存企業の分析とメタデータを新しいAI分析で丸ごと置き換えます。
// 統計情報には触れません。30日経過の陳腐化判定は読み取り側の助言であり、
// この操作は経過日数に関係なく実行できます。
func (u *companyUsecase) Reanalyze(ctx context.Context, userID, companyID uint) error {
	company, err := u.companies.FindByID(ctx, userID, companyID)
	if err != nil {
		return err
	}

	analysis, meta, err := u.analyze(ctx, company.CompanyName)
	if err != nil {
		return err
	}

	if err := u.companies.UpdateAnalysis(ctx, userID, companyID, *analysis, *meta); err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}
	return nil
}

// Get はユーザーの企業を1件取得し、陳腐化フラグを計算して返します。
func (u *companyUsecase) Get(ctx context.Context, userID, companyID uint) (*entity.Company, error) {
	company, err := u.companies.FindByID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	u.markStaleness(company)
	return company, nil
}

// List はユーザーの全企業を取得し、各レコードの陳腐化フラグを計算して返します。
func (u *companyUsecase) List(ctx context.Context, userID uint) ([]entity.Company, error) {
	companies, err := u.companies.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		u.markStaleness(&companies[i])
	}
	return companies, nil
}

// analyze は単一企業プロンプトでAI分析を実行し、分析とメタデータを返します。
func (u *companyUsecase) analyze(ctx context.Context, companyName string) (*entity.Analysis, *entity.AnalysisMetadata, error) {
	prompt := BuildAnalysisPrompt(companyName)

	var analysis entity.Analysis
	raw, model, err := u.analyzer.GenerateJSON(ctx, prompt, &analysis)
	if err != nil {
		return nil, nil, fmt.Errorf("company analysis failed for %q: %w", companyName, err)
	}

	meta := &entity.AnalysisMetadata{
		Status:        entity.StatusCompleted,
		Model:         model,
		TokenCount:    0,          // 上流APIが使用量を報告しないため常に0
		Sources:       []string{}, // 検索ソース引用は上流未実装のため常に空
		AnalyzedAt:    u.now(),
		SchemaVersion: entity.AnalysisSchemaVersion,
		Prompt:        prompt,
		RawResponse:   raw,
	}
	return &analysis, meta, nil
}

// markStaleness は分析日時が閾値より古い場合に助言用フラグを立てます。
func (u *companyUsecase) markStaleness(company *entity.Company) {
	now := u.now()
	company.Metadata.IsStale = now.Sub(company.Metadata.AnalyzedAt) > entity.StalenessThreshold
	company.Metadata.StaleCheckedAt = &now
}
