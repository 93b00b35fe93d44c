// Package handler はeventフィーチャーのHTTPハンドラーを提供します。
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
	"shukatsu_backend/internal/feature/event/domain"
	"shukatsu_backend/internal/feature/event/domain/entity"
	jwtmw "shukatsu_backend/internal/platform/jwt"
)

// EventUsecase はイベント操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type EventUsecase interface {
	Create(ctx context.Context, event *entity.Event) error
	Review(ctx context.Context, userID, eventID uint, companyMatch, jobMatch int, comment string) error
	List(ctx context.Context, userID uint) ([]entity.Event, error)
}

// EventHandler はイベント操作のHTTPリクエストを処理します。
type EventHandler struct {
	uc EventUsecase
}

// NewEventHandler はEventHandlerの新しいインスタンスを生成します。
func NewEventHandler(uc EventUsecase) *EventHandler {
	return &EventHandler{uc: uc}
}

// Create は選考イベントを登録します。
//
// エンドポイント: POST /events
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "認証が必要です"})
		return
	}

	var req api.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("イベント登録リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "リクエストが不正です"})
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "開始日時の形式が不正です"})
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "終了日時の形式が不正です"})
		return
	}

	event := &entity.Event{
		UserID:    userID,
		CompanyID: req.CompanyID,
		Type:      entity.EventType(req.Type),
		Title:     req.Title,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	}
	if err := h.uc.Create(c.Request.Context(), event); err != nil {
		h.writeError(c, err, "イベント登録に失敗", "company_id", req.CompanyID)
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(event))
}

// Review はイベントの振り返りを記録します。
//
// エンドポイント: PUT /events/:id/review
func (h *EventHandler) Review(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "認証が必要です"})
		return
	}

	eventID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "イベントIDが不正です"})
		return
	}

	var req api.ReviewEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("振り返りリクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "リクエストが不正です"})
		return
	}

	if err := h.uc.Review(c.Request.Context(), userID, eventID, req.CompanyMatch, req.JobMatch, req.Comment); err != nil {
		h.writeError(c, err, "振り返りの記録に失敗", "event_id", eventID)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "振り返りを記録しました"})
}

// List はユーザーの全イベントを返します。
//
// エンドポイント: GET /events
func (h *EventHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "認証が必要です"})
		return
	}

	events, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "イベント一覧の取得に失敗")
		return
	}

	out := make([]api.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	c.JSON(http.StatusOK, out)
}

// writeError はドメインエラーをHTTPステータスへ変換します。
func (h *EventHandler) writeError(c *gin.Context, err error, msg string, args ...any) {
	switch {
	case errors.Is(err, domain.ErrInvalidEventType),
		errors.Is(err, domain.ErrInvalidEventTime),
		errors.Is(err, domain.ErrInvalidRating):
		slog.Warn(msg, append(args, "error", err, "remote_addr", c.ClientIP())...)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEventNotFound):
		slog.Warn(msg, append(args, "error", err)...)
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "イベントが見つかりません"})
	case errors.Is(err, domain.ErrCompanyNotFound):
		slog.Warn(msg, append(args, "error", err)...)
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "企業が見つかりません"})
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

// toEventResponse はエンティティを読み取りレスポンスへ変換します。
func toEventResponse(event *entity.Event) api.EventResponse {
	resp := api.EventResponse{
		ID:        event.ID,
		CompanyID: event.CompanyID,
		Type:      string(event.Type),
		Title:     event.Title,
		StartsAt:  event.StartsAt.Format(time.RFC3339),
		EndsAt:    event.EndsAt.Format(time.RFC3339),
	}
	if event.Review != nil {
		companyMatch := event.Review.CompanyMatch
		jobMatch := event.Review.JobMatch
		reviewedAt := event.Review.ReviewedAt.Format(time.RFC3339)
		resp.CompanyMatch = &companyMatch
		resp.JobMatch = &jobMatch
		resp.Comment = event.Review.Comment
		resp.ReviewedAt = &reviewedAt
	}
	return resp
}
