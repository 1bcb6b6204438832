package middleware

import (
	"net/http"
	"strings"

	"agrisolve/internal/domain"

	"github.com/gin-gonic/gin"
)

const requestContextKey = "request_context"

// TokenParser turns a bearer token into the caller's identity.
type TokenParser interface {
	ParseToken(raw string) (domain.RequestContext, error)
}

// AuthOptional attaches the caller's identity when a bearer token is sent. A
// malformed or expired token is rejected rather than silently ignored.
func AuthOptional(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "authorization header must be a bearer token")
			return
		}
		rc, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		c.Set(requestContextKey, rc)
		c.Next()
	}
}

// RequireAuth stops anonymous requests. It must run after AuthOptional.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRequestContext(c).Authenticated() {
			abortUnauthorized(c, "login required")
			return
		}
		c.Next()
	}
}

// GetRequestContext returns the caller's identity, or the zero value for anonymous requests.
func GetRequestContext(c *gin.Context) domain.RequestContext {
	if v, ok := c.Get(requestContextKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc
		}
	}
	return domain.RequestContext{}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
