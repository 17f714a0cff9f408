package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/model"
)

// CallerResolver resolves an access token into a caller. A nil caller with a
// nil error means the request proceeds anonymously.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (*model.User, error)
}

// Authenticate resolves the optional bearer token on every request.
type Authenticate struct {
	resolver CallerResolver
	logger   *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware.
func NewAuthenticate(resolver CallerResolver, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, logger: logger}
}

// Resolve extracts the bearer token, resolves the caller and stores it on
// the context. Missing or invalid tokens leave the request anonymous; only
// an infrastructure fault aborts.
func (a *Authenticate) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := a.resolver.ResolveCaller(c.Request.Context(), bearerToken(c))
		if err != nil {
			a.logger.Error("Authenticate middleware: failed to resolve caller", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		SetCaller(c, caller)
		c.Next()
	}
}

// RequireCaller rejects anonymous requests. It must run after Resolve.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}
