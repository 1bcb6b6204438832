package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionIDKey = "session_id"

// maxSessionIDLen bounds client supplied ids before they become redis keys.
const maxSessionIDLen = 64

// Session identifies the browsing session that owns favorites. Clients echo the
// X-Session-ID they were given; a missing or oversized id gets a fresh one.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := strings.TrimSpace(c.GetHeader("X-Session-ID"))
		if sid == "" || len(sid) > maxSessionIDLen {
			sid = uuid.NewString()
		}
		c.Set(sessionIDKey, sid)
		c.Writer.Header().Set("X-Session-ID", sid)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
