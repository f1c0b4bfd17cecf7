package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AdminRequired gates admin-only endpoints (answer creation) on the session
// flag set by a successful /admin/login.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if admin, ok := session.Get(AdminKey).(bool); !ok || !admin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "관리자 권한이 필요합니다."})
			return
		}
		c.Next()
	}
}
