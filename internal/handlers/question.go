package handlers

import (
	"net/http"
	"time"

	"qnahub/internal/db"
	"qnahub/internal/models"
	"qnahub/internal/services"
	"qnahub/internal/utils"

	"github.com/gin-gonic/gin"
)

// QuestionHandler 질문 제출과 대표 질문 조회
type QuestionHandler struct {
	submission *services.SubmissionService
}

func NewQuestionHandler(submission *services.SubmissionService) *QuestionHandler {
	return &QuestionHandler{submission: submission}
}

type rawQuestionRequest struct {
	Content  string `json:"content" binding:"required"`
	AuthorID string `json:"author_id" binding:"required"`
}

// SubmitRaw handles POST /questions/raw?force=true|false.
// Outcomes: 201 persisted pending, 400 rejected by validation, 409 duplicate
// found (nothing persisted; resubmit with force=true or vote on the match).
func (h *QuestionHandler) SubmitRaw(c *gin.Context) {
	var req rawQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "content, author_id는 필수입니다.")
		return
	}
	force := c.Query("force") == "true"

	result, err := h.submission.Submit(req.Content, req.AuthorID, force)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "질문 저장에 실패했습니다.")
		return
	}

	switch {
	case result.Rejected:
		JSONError(c, http.StatusBadRequest, "유효하지 않은 질문입니다. 이유: "+result.Reason)
	case result.Duplicate != nil:
		c.JSON(http.StatusConflict, gin.H{
			"detail":           "유사한 질문이 이미 존재합니다.",
			"similar_question": result.Duplicate,
		})
	default:
		c.JSON(http.StatusCreated, result.Question)
	}
}

// ListRepresentative handles GET /questions/representative.
// The default page is cached briefly; vote counts on this list may lag the
// vote-status endpoints by up to the TTL.
func (h *QuestionHandler) ListRepresentative(c *gin.Context) {
	skip, limit := parsePagination(c)

	cacheable := skip == 0 && limit == 10
	if cacheable {
		if cached := utils.GetCache().Get(services.RepresentativeListCacheKey); cached != nil {
			if questions, ok := cached.([]models.RepresentativeQuestion); ok {
				c.JSON(http.StatusOK, questions)
				return
			}
		}
	}

	var questions []models.RepresentativeQuestion
	if err := db.DB.Order("total_votes DESC, created_at DESC").
		Offset(skip).Limit(limit).Find(&questions).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "대표 질문 조회에 실패했습니다.")
		return
	}

	if cacheable {
		utils.GetCache().Set(services.RepresentativeListCacheKey, questions, time.Minute)
	}
	c.JSON(http.StatusOK, questions)
}
