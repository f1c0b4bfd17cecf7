package handlers

import (
	"net/http"
	"os"

	"qnahub/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler 관리자 로그인/로그아웃.
// A single bcrypt-hashed password (ADMIN_PASSWORD_HASH) guards answer
// creation; success stores an is_admin flag in the session.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "password는 필수입니다.")
		return
	}

	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		JSONError(c, http.StatusServiceUnavailable, "관리자 로그인이 설정되지 않았습니다.")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		JSONError(c, http.StatusUnauthorized, "비밀번호가 올바르지 않습니다.")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.AdminKey, true)
	if err := session.Save(); err != nil {
		JSONError(c, http.StatusInternalServerError, "세션 저장에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "관리자로 로그인되었습니다."})
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.AdminKey)
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "로그아웃되었습니다."})
}
