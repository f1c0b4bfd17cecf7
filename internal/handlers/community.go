package handlers

import (
	"errors"
	"net/http"

	"qnahub/internal/db"
	"qnahub/internal/models"
	"qnahub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CommunityHandler 커뮤니티 게시글 CRUD
type CommunityHandler struct{}

func NewCommunityHandler() *CommunityHandler {
	return &CommunityHandler{}
}

type postCreateRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	AuthorID string `json:"author_id" binding:"required"`
}

type postUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Create handles POST /community/posts
func (h *CommunityHandler) Create(c *gin.Context) {
	var req postCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "title, content, author_id는 필수입니다.")
		return
	}

	post := models.Post{
		Title:    utils.SanitizeText(req.Title),
		Content:  utils.SanitizeText(req.Content),
		AuthorID: req.AuthorID,
		Likes:    0,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "게시글 생성에 실패했습니다.")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// List handles GET /community/posts (newest first, skip/limit)
func (h *CommunityHandler) List(c *gin.Context) {
	skip, limit := parsePagination(c)

	var posts []models.Post
	if err := db.DB.Order("id DESC").Offset(skip).Limit(limit).Find(&posts).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "게시글 조회에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get handles GET /community/posts/:id
func (h *CommunityHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		JSONError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, "게시글을 찾을 수 없습니다.")
			return
		}
		JSONError(c, http.StatusInternalServerError, "게시글 조회에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, post)
}

// Update handles PATCH /community/posts/:id (partial update)
func (h *CommunityHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		JSONError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.")
		return
	}

	var req postUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "잘못된 요청 형식입니다.")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, "게시글을 찾을 수 없습니다.")
			return
		}
		JSONError(c, http.StatusInternalServerError, "게시글 조회에 실패했습니다.")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = utils.SanitizeText(*req.Title)
	}
	if req.Content != nil {
		updates["content"] = utils.SanitizeText(*req.Content)
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
			JSONError(c, http.StatusInternalServerError, "게시글 수정에 실패했습니다.")
			return
		}
	}

	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /community/posts/:id
func (h *CommunityHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		JSONError(c, http.StatusBadRequest, "유효하지 않은 게시글 ID입니다.")
		return
	}

	result := db.DB.Delete(&models.Post{}, id)
	if result.Error != nil {
		JSONError(c, http.StatusInternalServerError, "게시글 삭제에 실패했습니다.")
		return
	}
	if result.RowsAffected == 0 {
		JSONError(c, http.StatusNotFound, "게시글을 찾을 수 없거나 이미 삭제되었습니다.")
		return
	}
	c.Status(http.StatusNoContent)
}
