// Package router builds the gin engine and its route table.
package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	rolehandler "account_backend/internal/feature/role/transport/handler"
	userhandler "account_backend/internal/feature/user/transport/handler"
	"account_backend/internal/platform/config"
	platformhandler "account_backend/internal/platform/http/handler"
	"account_backend/internal/platform/http/middleware"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/shared/ratelimiter"
)

// Deps are the components the route table needs.
type Deps struct {
	Auth  *userhandler.AuthHandler
	Users *userhandler.UserHandler
	Stats *userhandler.StatsHandler
	Roles *rolehandler.RoleHandler

	Verifier    jwtmw.TokenVerifier
	Revocations jwtmw.RevocationChecker
	Resolver    jwtmw.PrincipalResolver
	// Limiter throttles the unauthenticated credential endpoints per client IP. May be nil.
	Limiter *ratelimiter.KeyedLimiter
	Ready   map[string]platformhandler.Pinger

	HTTP config.HTTP
	Log  *zap.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(ginzap.Ginzap(d.Log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(d.Log, true))
	r.Use(cors.New(corsConfig(d.HTTP.CORSOrigins)))
	r.Use(middleware.Metrics())

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/readyz", platformhandler.Ready(d.Ready, d.Log))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.Use(middleware.Timeout(d.HTTP.RequestTimeout))
	if d.HTTP.MaxInFlight > 0 {
		v1.Use(middleware.ConcurrencyLimit(d.HTTP.MaxInFlight))
	}

	// 認証不要
	public := v1.Group("/users")
	if d.Limiter != nil {
		public.Use(middleware.RateLimitPerIP(d.Limiter))
	}
	{
		// 新規ユーザー登録（JWT 発行）
		public.POST("/signup", d.Auth.SignUp)
		// ログイン（JWT 発行）
		public.POST("/signin", d.Auth.SignIn)
		public.POST("/admin-signin", d.Auth.AdminSignIn)
		// パスワード再設定
		public.POST("/password-recovery-request", d.Auth.PasswordRecoveryRequest)
		public.POST("/verify-password-token/:token", d.Auth.VerifyResetToken)
		public.POST("/recover-password/:token", d.Auth.RecoverPassword)
	}
	v1.GET("/roles", d.Roles.List)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := v1.Group("/")
	auth.Use(jwtmw.AuthRequired(d.Verifier, d.Revocations, d.Resolver, d.Log))
	{
		auth.POST("/users/logout", d.Auth.Logout)
		auth.GET("/users/me", d.Users.Me)
		auth.PUT("/users/me", d.Users.UpdateMe)
		auth.PUT("/users/change-password", d.Auth.ChangePassword)
	}

	// 管理者のみ
	admin := auth.Group("/")
	admin.Use(jwtmw.RequireAdmin())
	{
		admin.GET("/users/registered-per-month", d.Stats.RegisteredPerMonth)
		admin.GET("/users/weekly-registers-count", d.Stats.WeeklyRegistersCount)
		admin.GET("/users/total-registered", d.Stats.TotalRegistered)

		admin.GET("/users", d.Users.List)
		admin.POST("/users", d.Users.Create)
		admin.GET("/users/:id", d.Users.Get)
		admin.PUT("/users/:id", d.Users.Update)
		admin.DELETE("/users/:id", d.Users.Delete)

		admin.GET("/roles/:id", d.Roles.Get)
		admin.POST("/roles", d.Roles.Create)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.KeyRequestID)
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
