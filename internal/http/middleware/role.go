package middleware

import (
	"net/http"

	"agrisolve/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles lets through only callers whose role is listed.
// It expects AuthOptional to have set the request context:
//
//	r.POST("/listings", RequireRoles(domain.RoleFarmer, domain.RoleTrader), handler)
func RequireRoles(allowedRoles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		rc := GetRequestContext(c)
		if !rc.Authenticated() {
			abortUnauthorized(c, "login required")
			return
		}
		if role, ok := domain.ParseRole(string(rc.Role)); !ok || !contains(allowed, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "your role may not perform this action",
				"code":       "forbidden",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

func contains(set map[domain.Role]struct{}, r domain.Role) bool {
	_, ok := set[r]
	return ok
}
