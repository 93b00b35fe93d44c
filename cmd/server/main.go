package main

import (
	"context"
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"shukatsu_backend/internal/app/di"
	"shukatsu_backend/internal/app/router"
	authadapters "shukatsu_backend/internal/feature/auth/adapters"
	authhandler "shukatsu_backend/internal/feature/auth/transport/handler"
	authusecase "shukatsu_backend/internal/feature/auth/usecase"
	companyadapters "shukatsu_backend/internal/feature/company/adapters"
	companyhandler "shukatsu_backend/internal/feature/company/transport/handler"
	companyusecase "shukatsu_backend/internal/feature/company/usecase"
	eventadapters "shukatsu_backend/internal/feature/event/adapters"
	eventhandler "shukatsu_backend/internal/feature/event/transport/handler"
	eventusecase "shukatsu_backend/internal/feature/event/usecase"
	trendhandler "shukatsu_backend/internal/feature/trend/transport/handler"
	trendusecase "shukatsu_backend/internal/feature/trend/usecase"
	infradb "shukatsu_backend/internal/platform/db"
	jwtmw "shukatsu_backend/internal/platform/jwt"
	infraredis "shukatsu_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Geminiクライアント（APIキー未設定なら起動させない）
	analyzer, err := di.NewAnalyzer(ctx)
	if err != nil {
		log.Fatal("[FATAL] Failed to initialize Gemini client: ", err)
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	companyRepo := companyadapters.NewCompanyRepository(db)
	eventRepo := eventadapters.NewEventRepository(db)
	trendRepo := di.NewTrendRepository(rdb, db)

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), jwtmw.DefaultExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	companyUC := companyusecase.NewCompanyUsecase(companyRepo, analyzer)
	eventUC := eventusecase.NewEventUsecase(eventRepo)
	trendUC := trendusecase.NewTrendUsecase(trendRepo, companyRepo, eventRepo, analyzer)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	companyH := companyhandler.NewCompanyHandler(companyUC)
	eventH := eventhandler.NewEventHandler(eventUC)
	trendH := trendhandler.NewTrendHandler(trendUC)

	// ルータ生成
	r := router.NewRouter(authH, companyH, eventH, trendH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
