package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	roleentity "account_backend/internal/feature/role/domain/entity"
)

const (
	ContextUserID    = "userID"
	ContextPrincipal = "principal"
	ContextClaims    = "claims"
)

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	UserID uint
	Role   roleentity.Name
}

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// PrincipalResolver loads the principal for a user id.
// Implementations must only resolve users that are not deleted and are active.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID uint) (Principal, error)
}

// ResolverFunc adapts a function to PrincipalResolver.
type ResolverFunc func(ctx context.Context, userID uint) (Principal, error)

func (f ResolverFunc) ResolvePrincipal(ctx context.Context, userID uint) (Principal, error) {
	return f(ctx, userID)
}

var errMissingBearer = errors.New("missing bearer token")

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}

// AuthRequired returns a Gin middleware function that validates the bearer
// token and resolves the caller. Every failure responds 401 with the same body;
// the reason is only logged. revocations may be nil.
func AuthRequired(verifier TokenVerifier, revocations RevocationChecker, resolver PrincipalResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func(reason error) {
			log.Debug("authentication rejected",
				zap.Error(reason),
				zap.String("path", c.FullPath()),
				zap.String("remote_addr", c.ClientIP()),
			)
			unauthorized(c)
		}

		// 1. Authorization header must be "Bearer <token>"
		auth := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			reject(errMissingBearer)
			return
		}

		// 2. Signature and claims
		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			reject(err)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			reject(err)
			return
		}

		// 3. Logged-out tokens
		if revocations != nil {
			revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Error("revocation lookup failed", zap.Error(err))
				unauthorized(c)
				return
			}
			if revoked {
				reject(errors.New("token revoked"))
				return
			}
		}

		// 4. The user must still exist, be active and not deleted
		p, err := resolver.ResolvePrincipal(c.Request.Context(), userID)
		if err != nil {
			reject(err)
			return
		}

		c.Set(ContextUserID, p.UserID)
		c.Set(ContextPrincipal, p)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by AuthRequired.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// ClaimsFrom returns the verified claims stored by AuthRequired.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// RequireRole allows only principals holding role. It must run after AuthRequired.
func RequireRole(role roleentity.Name) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			unauthorized(c)
			return
		}
		if p.Role != role {
			forbidden(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only principals holding the privileged role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			unauthorized(c)
			return
		}
		if !roleentity.IsPrivileged(p.Role) {
			forbidden(c)
			return
		}
		c.Next()
	}
}
