package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionIDKey = "session_id"
const AdminKey = "is_admin"

// EnsureSession guarantees every request carries a stable opaque session id.
// The id is the identity the voting subsystem keys likes on; it is minted on
// first contact and lives in the session cookie.
func EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(SessionIDKey) == nil {
			session.Set(SessionIDKey, uuid.NewString())
			_ = session.Save()
		}
		c.Next()
	}
}

// SessionID returns the caller's session id, or "" when EnsureSession did not run.
func SessionID(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(SessionIDKey).(string); ok {
		return id
	}
	return ""
}
