package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"account_backend/internal/app/router"
	roleadapters "account_backend/internal/feature/role/adapters"
	rolehandler "account_backend/internal/feature/role/transport/handler"
	roleusecase "account_backend/internal/feature/role/usecase"
	useradapters "account_backend/internal/feature/user/adapters"
	userhandler "account_backend/internal/feature/user/transport/handler"
	"account_backend/internal/feature/user/usecase"
	"account_backend/internal/platform/cache"
	"account_backend/internal/platform/config"
	platformhandler "account_backend/internal/platform/http/handler"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/password"
	"account_backend/internal/shared/ratelimiter"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

// Container holds the wired application.
type Container struct {
	Deps  router.Deps
	Users *usecase.UserUsecase
	Roles *roleusecase.RoleUsecase

	limiter     *ratelimiter.KeyedLimiter
	revocations RevocationStore
	log         *zap.Logger
}

// Build wires every component. rdb may be nil, in which case caching is
// disabled and revoked tokens are kept in the database.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client, log *zap.Logger) *Container {
	hasher := password.NewHasher(cfg.Password.BcryptCost)

	// Repository
	roleRepo := roleadapters.NewRoleRepository(db)
	userRepo := useradapters.NewUserRepository(db, hasher)

	// Redisキャッシュでラップ（rdbがnilの場合は素通し）
	cachedStats := cache.NewCachingStatsRepository(cache.New(rdb), cfg.Cache.StatsTTL, userRepo, "stats")
	users := cache.NewInvalidatingUserRepository(userRepo, cachedStats)

	revocations := NewRevocationStore(rdb, db)

	// Usecase
	roleUC := roleusecase.NewRoleUsecase(roleRepo)
	tokens := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	authUC := usecase.NewAuthUsecase(users, roleUC, hasher, tokens, revocations)
	recoveryUC := usecase.NewRecoveryUsecase(users, hasher)
	userUC := usecase.NewUserUsecase(users, roleUC)
	statsUC := usecase.NewStatsUsecase(cachedStats)

	limiter := ratelimiter.NewKeyedLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterIdleTTL)

	ready := map[string]platformhandler.Pinger{
		"db": platformhandler.PingerFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if rdb != nil {
		ready["redis"] = platformhandler.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	return &Container{
		Deps: router.Deps{
			Auth:        userhandler.NewAuthHandler(authUC, recoveryUC, log),
			Users:       userhandler.NewUserHandler(userUC, log),
			Stats:       userhandler.NewStatsHandler(statsUC, log),
			Roles:       rolehandler.NewRoleHandler(roleUC, log),
			Verifier:    jwtmw.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer),
			Revocations: revocations,
			Resolver:    PrincipalResolver(authUC),
			Limiter:     limiter,
			Ready:       ready,
			HTTP:        cfg.HTTP,
			Log:         log,
		},
		Users:       userUC,
		Roles:       roleUC,
		limiter:     limiter,
		revocations: revocations,
		log:         log,
	}
}

// PrincipalResolver adapts the auth usecase to the gate's resolver.
func PrincipalResolver(auth *usecase.AuthUsecase) jwtmw.PrincipalResolver {
	return jwtmw.ResolverFunc(func(ctx context.Context, userID uint) (jwtmw.Principal, error) {
		u, err := auth.ResolvePrincipal(ctx, userID)
		if err != nil {
			return jwtmw.Principal{}, err
		}
		return jwtmw.Principal{UserID: u.ID, Role: u.Role}, nil
	})
}

// RunMaintenance periodically drops idle rate-limit buckets and, for the
// database store, expired revocations. It returns when ctx is done.
func (c *Container) RunMaintenance(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *Container) sweep(ctx context.Context) {
	if n := c.limiter.Sweep(); n > 0 {
		c.log.Debug("rate limiter buckets swept", zap.Int("removed", n))
	}
	s, ok := c.revocations.(expiredSweeper)
	if !ok {
		return
	}
	n, err := s.DeleteExpired(ctx)
	if err != nil {
		c.log.Warn("revocation sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		c.log.Debug("expired revocations removed", zap.Int64("removed", n))
	}
}
