// Package router はアプリケーションのルーティングを定義します。
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "shukatsu_backend/internal/feature/auth/transport/handler"
	companyhandler "shukatsu_backend/internal/feature/company/transport/handler"
	eventhandler "shukatsu_backend/internal/feature/event/transport/handler"
	trendhandler "shukatsu_backend/internal/feature/trend/transport/handler"
	jwtmw "shukatsu_backend/internal/platform/jwt"
)

// NewRouter は全エンドポイントを登録したGinエンジンを生成します。
func NewRouter(auth *authhandler.AuthHandler, company *companyhandler.CompanyHandler,
	event *eventhandler.EventHandler, trend *trendhandler.TrendHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health)
	// 新規ユーザー登録
	r.POST("/signup", auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", auth.Login)

	// 認証必須のルート
	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired())
	{
		authed.POST("/companies", company.Register)
		authed.POST("/companies/:id/reanalyze", company.Reanalyze)
		authed.GET("/companies", company.List)
		authed.GET("/companies/:id", company.Get)

		authed.POST("/events", event.Create)
		authed.PUT("/events/:id/review", event.Review)
		authed.GET("/events", event.List)

		authed.POST("/trends/analyze", trend.Analyze)
		authed.GET("/trends", trend.Get)
	}

	return r
}

// health は死活監視用のハンドラーです。
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
