package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "orgair_backend/internal/feature/auth/adapters"
	"orgair_backend/internal/feature/auth/usecase"
	"orgair_backend/internal/platform/session"
)

// NewSessionRepository picks the session store. Redis is preferred;
// without it sessions fall back to Postgres.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionPostgres(db)
}
