// Package di wires repositories, usecases and handlers into a runnable application.
package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	useradapters "account_backend/internal/feature/user/adapters"
	"account_backend/internal/feature/user/usecase"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/revocation"
)

// RevocationStore records logged-out tokens and answers the auth gate.
type RevocationStore interface {
	usecase.TokenRevoker
	jwtmw.RevocationChecker
}

// expiredSweeper is implemented by stores that do not expire entries on their own.
type expiredSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// NewRevocationStore creates a RevocationStore implementation.
// If Redis is available, it returns a Redis-backed implementation whose keys
// expire with the token. Otherwise, it falls back to the database.
func NewRevocationStore(rdb *redis.Client, db *gorm.DB) RevocationStore {
	if rdb != nil {
		return revocation.NewRedisStore(rdb, "revoked")
	}
	return useradapters.NewRevocationStore(db)
}
