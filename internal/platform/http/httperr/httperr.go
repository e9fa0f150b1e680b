// Package httperr writes classified errors as JSON responses.
package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"account_backend/internal/shared/apperr"
)

// Response is the body of every failed request.
type Response struct {
	Error string `json:"error"`
}

// ErrInvalidID is returned for malformed resource ids in the path.
var ErrInvalidID = apperr.New(apperr.KindBadRequest, "invalid id")

// Status maps an error kind to an HTTP status code.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindGone:
		return http.StatusGone
	case apperr.KindDisabled, apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindConflict, apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Respond logs err with full detail and writes the minimal public message.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("kind", kind.String()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("remote_addr", c.ClientIP()),
	}
	if kind == apperr.KindInfrastructure || kind == apperr.KindTimeout {
		log.Error("request failed", fields...)
	} else {
		log.Warn("request rejected", fields...)
	}
	c.AbortWithStatusJSON(Status(kind), Response{Error: apperr.PublicMessage(err)})
}

// BadRequest writes a 400 for input that failed binding or validation.
func BadRequest(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("invalid request", zap.Error(err), zap.String("path", c.FullPath()), zap.String("remote_addr", c.ClientIP()))
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Error: "invalid request"})
}

// PathID binds a positive integer path parameter using simple style.
func PathID(c *gin.Context, name string) (uint, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return uint(id), nil
}

// IsInvalidID reports whether err came from PathID.
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidID)
}
