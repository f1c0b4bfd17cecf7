package handlers

import (
	"errors"
	"net/http"

	"qnahub/internal/services"
	"qnahub/internal/utils"

	"github.com/gin-gonic/gin"
)

// AnswerHandler 관리자 답변 생성과 답변 조회
type AnswerHandler struct {
	answers *services.AnswerService
}

func NewAnswerHandler(answers *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

type answerCreateRequest struct {
	RepresentativeQuestionID uint   `json:"representative_question_id" binding:"required"`
	Content                  string `json:"content" binding:"required"`
	AuthorID                 string `json:"author_id" binding:"required"`
}

// Create handles POST /answers (admin only).
func (h *AnswerHandler) Create(c *gin.Context) {
	var req answerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "representative_question_id, content, author_id는 필수입니다.")
		return
	}

	answer, err := h.answers.Create(req.RepresentativeQuestionID, req.Content, req.AuthorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestionNotFound):
			JSONError(c, http.StatusNotFound, "답변하려는 질문을 찾을 수 없습니다.")
		case errors.Is(err, services.ErrAnswerExists):
			JSONError(c, http.StatusBadRequest, "이미 해당 질문에 대한 답변이 존재합니다.")
		default:
			JSONError(c, http.StatusInternalServerError, "답변 생성에 실패했습니다.")
		}
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// ByQuestion handles GET /answers/by-question/:id, returning the question and
// its answer together with the answer body rendered to sanitized HTML.
func (h *AnswerHandler) ByQuestion(c *gin.Context) {
	questionID, ok := parseIDParam(c, "id")
	if !ok {
		JSONError(c, http.StatusBadRequest, "유효하지 않은 question_id입니다.")
		return
	}

	qa, err := h.answers.GetForQuestion(questionID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnswerNotFound):
			JSONError(c, http.StatusNotFound, "해당 질문에 대한 답변을 찾을 수 없습니다.")
		case errors.Is(err, services.ErrQuestionNotFound):
			JSONError(c, http.StatusNotFound, "답변에 연결된 질문을 찾을 수 없습니다.")
		default:
			JSONError(c, http.StatusInternalServerError, "답변 조회에 실패했습니다.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question":     qa.Question,
		"answer":       qa.Answer,
		"content_html": utils.RenderMarkdown(qa.Answer.Content),
	})
}

// List handles GET /answers — answered question/answer pairs, newest first.
func (h *AnswerHandler) List(c *gin.Context) {
	skip, limit := parsePagination(c)

	pairs, err := h.answers.ListAnswered(skip, limit)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "답변 목록 조회에 실패했습니다.")
		return
	}
	c.JSON(http.StatusOK, pairs)
}
