package main

import (
	"context"
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"orgair_backend/internal/app/di"
	"orgair_backend/internal/app/router"
	assessmententity "orgair_backend/internal/feature/assessments/domain/entity"
	assessmenthandler "orgair_backend/internal/feature/assessments/transport/handler"
	assessmentusecase "orgair_backend/internal/feature/assessments/usecase"
	authadapters "orgair_backend/internal/feature/auth/adapters"
	authentity "orgair_backend/internal/feature/auth/domain/entity"
	authhandler "orgair_backend/internal/feature/auth/transport/handler"
	authusecase "orgair_backend/internal/feature/auth/usecase"
	companyadapters "orgair_backend/internal/feature/companies/adapters"
	companyentity "orgair_backend/internal/feature/companies/domain/entity"
	companyhandler "orgair_backend/internal/feature/companies/transport/handler"
	companyusecase "orgair_backend/internal/feature/companies/usecase"
	documentadapters "orgair_backend/internal/feature/documents/adapters"
	documententity "orgair_backend/internal/feature/documents/domain/entity"
	documenthandler "orgair_backend/internal/feature/documents/transport/handler"
	documentusecase "orgair_backend/internal/feature/documents/usecase"
	industryadapters "orgair_backend/internal/feature/industries/adapters"
	industryentity "orgair_backend/internal/feature/industries/domain/entity"
	industryhandler "orgair_backend/internal/feature/industries/transport/handler"
	industryusecase "orgair_backend/internal/feature/industries/usecase"
	"orgair_backend/internal/platform/cache"
	"orgair_backend/internal/platform/config"
	platformdb "orgair_backend/internal/platform/db"
	platformhandler "orgair_backend/internal/platform/http/handler"
	jwtmw "orgair_backend/internal/platform/jwt"
	platformredis "orgair_backend/internal/platform/redis"
	"orgair_backend/internal/platform/storage"
	"orgair_backend/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration load failed", "error", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// The store is a hard dependency.
	db, err := platformdb.Open(cfg.DB,
		&authentity.User{},
		&authadapters.SessionModel{},
		&industryentity.Industry{},
		&industryentity.DimensionWeight{},
		&companyentity.Company{},
		&assessmententity.Assessment{},
		&assessmententity.DimensionScore{},
		&documententity.Document{},
	)
	if err != nil {
		slog.Error("database open failed", "error", err)
		os.Exit(1)
	}

	// The cache is not: without Redis every read goes to the store.
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewClient(cfg.Redis); err != nil {
		slog.Warn("Redis unavailable, running without cache")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}
	store := cache.NewStore(rdb)

	// Repositories. The directories read the store directly; existence
	// and industry lookups must never be answered by a stale cache.
	companyRepo := di.NewCompanyRepository(db, store, cfg.Cache)
	industryRepo := di.NewIndustryRepository(db, store, cfg.Cache)
	assessmentRepo := di.NewAssessmentRepository(db, store, cfg.Cache)
	companyDir := companyadapters.NewCompanyPostgres(db)
	industryDir := industryadapters.NewIndustryPostgres(db)
	userRepo := authadapters.NewUserPostgres(db)
	sessionRepo := di.NewSessionRepository(rdb, db)

	// Usecases.
	jwtGen := jwtmw.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, cfg.Auth.SessionTTL)
	industryUC := industryusecase.NewIndustryUsecase(industryRepo)
	companyUC := companyusecase.NewCompanyUsecase(companyRepo, industryDir)
	assessmentUC := assessmentusecase.NewAssessmentUsecase(assessmentRepo, companyDir, industryRepo)

	handlers := router.Handlers{
		Auth:        authhandler.NewAuthHandler(authUC),
		Industries:  industryhandler.NewIndustryHandler(industryUC),
		Companies:   companyhandler.NewCompanyHandler(companyUC),
		Assessments: assessmenthandler.NewAssessmentHandler(assessmentUC),
		CacheStats:  platformhandler.NewCacheStatsHandler(store),
	}

	// Document routes come up only when a blob store is configured.
	if cfg.Storage.Bucket != "" {
		blobs, err := storage.NewS3Storage(context.Background(), cfg.Storage)
		if err != nil {
			slog.Error("object storage init failed", "error", err)
			os.Exit(1)
		}
		docRepo := documentadapters.NewDocumentPostgres(db)
		docUC := documentusecase.NewDocumentUsecase(docRepo, blobs, companyDir)
		handlers.Documents = documenthandler.NewDocumentHandler(docUC)
	} else {
		slog.Warn("no storage bucket configured, document routes disabled")
	}

	var loginLimiter *ratelimiter.Limiter
	if cfg.Auth.LoginRateLimit > 0 {
		loginLimiter = ratelimiter.NewLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)
	}

	r := router.NewRouter(handlers, cfg.Auth.JWTSecret, loginLimiter)
	if err := r.Run(cfg.ServerAddr); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
