package handlers

import (
	"errors"
	"net/http"

	"qnahub/internal/db"
	"qnahub/internal/middleware"
	"qnahub/internal/models"
	"qnahub/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LikeHandler 대표 질문/답변에 대한 좋아요 API.
// Session identity comes from the EnsureSession middleware; the handler only
// needs the opaque id.
type LikeHandler struct {
	voting *services.VotingService
}

func NewLikeHandler(voting *services.VotingService) *LikeHandler {
	return &LikeHandler{voting: voting}
}

type likeResponse struct {
	TargetID   uint   `json:"target_id"`
	TotalVotes int    `json:"total_votes"`
	Message    string `json:"message"`
	UserLiked  bool   `json:"user_liked"`
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func (h *LikeHandler) questionExists(id uint) (bool, error) {
	var q models.RepresentativeQuestion
	err := db.DB.First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (h *LikeHandler) answerExists(id uint) (bool, error) {
	var a models.Answer
	err := db.DB.First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// LikeQuestion handles PUT /likes/questions/:id/like
func (h *LikeHandler) LikeQuestion(c *gin.Context) {
	h.like(c, models.LikeTargetQuestion)
}

// UnlikeQuestion handles PUT /likes/questions/:id/unlike
func (h *LikeHandler) UnlikeQuestion(c *gin.Context) {
	h.unlike(c, models.LikeTargetQuestion)
}

// LikeAnswer handles PUT /likes/answers/:id/like
func (h *LikeHandler) LikeAnswer(c *gin.Context) {
	h.like(c, models.LikeTargetAnswer)
}

// UnlikeAnswer handles PUT /likes/answers/:id/unlike
func (h *LikeHandler) UnlikeAnswer(c *gin.Context) {
	h.unlike(c, models.LikeTargetAnswer)
}

func (h *LikeHandler) like(c *gin.Context, targetType models.LikeTargetType) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		JSONError(c, http.StatusBadRequest, "유효하지 않은 ID입니다.")
		return
	}
	if !h.requireTarget(c, targetType, targetID) {
		return
	}

	sessionID := middleware.SessionID(c)
	votes, accepted, err := h.voting.Like(sessionID, targetType, targetID, c.ClientIP())
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "좋아요 처리에 실패했습니다.")
		return
	}
	if !accepted {
		JSONError(c, http.StatusBadRequest, "이미 좋아요를 누르셨습니다.")
		return
	}

	c.JSON(http.StatusOK, likeResponse{
		TargetID:   targetID,
		TotalVotes: votes,
		Message:    "좋아요가 추가되었습니다.",
		UserLiked:  true,
	})
}

func (h *LikeHandler) unlike(c *gin.Context, targetType models.LikeTargetType) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		JSONError(c, http.StatusBadRequest, "유효하지 않은 ID입니다.")
		return
	}
	if !h.requireTarget(c, targetType, targetID) {
		return
	}

	sessionID := middleware.SessionID(c)
	votes, accepted, err := h.voting.Unlike(sessionID, targetType, targetID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "좋아요 취소에 실패했습니다.")
		return
	}
	if !accepted {
		JSONError(c, http.StatusBadRequest, "좋아요를 누르지 않았거나 이미 취소되었습니다.")
		return
	}

	c.JSON(http.StatusOK, likeResponse{
		TargetID:   targetID,
		TotalVotes: votes,
		Message:    "좋아요가 취소되었습니다.",
		UserLiked:  false,
	})
}

// requireTarget writes a 404 and returns false when the like target does not exist.
func (h *LikeHandler) requireTarget(c *gin.Context, targetType models.LikeTargetType, targetID uint) bool {
	var (
		exists bool
		err    error
	)
	if targetType == models.LikeTargetQuestion {
		exists, err = h.questionExists(targetID)
	} else {
		exists, err = h.answerExists(targetID)
	}
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "조회에 실패했습니다.")
		return false
	}
	if !exists {
		if targetType == models.LikeTargetQuestion {
			JSONError(c, http.StatusNotFound, "해당 ID의 대표 질문을 찾을 수 없습니다.")
		} else {
			JSONError(c, http.StatusNotFound, "해당 ID의 답변을 찾을 수 없습니다.")
		}
		return false
	}
	return true
}

// QuestionVotes handles GET /likes/questions/:id/votes
func (h *LikeHandler) QuestionVotes(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		JSONError(c, http.StatusBadRequest, "유효하지 않은 question_id입니다.")
		return
	}

	var question models.RepresentativeQuestion
	if err := db.DB.First(&question, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, "해당 ID의 대표 질문을 찾을 수 없습니다.")
			return
		}
		JSONError(c, http.StatusInternalServerError, "조회에 실패했습니다.")
		return
	}

	sessionID := middleware.SessionID(c)
	c.JSON(http.StatusOK, gin.H{
		"question_id":      question.ID,
		"total_votes":      question.TotalVotes,
		"question_content": question.Title,
		"user_liked":       h.voting.HasLiked(sessionID, models.LikeTargetQuestion, question.ID),
	})
}

// AnswerVotes handles GET /likes/answers/:id/votes
func (h *LikeHandler) AnswerVotes(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		JSONError(c, http.StatusBadRequest, "유효하지 않은 answer_id입니다.")
		return
	}

	var answer models.Answer
	if err := db.DB.First(&answer, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, "해당 ID의 답변을 찾을 수 없습니다.")
			return
		}
		JSONError(c, http.StatusInternalServerError, "조회에 실패했습니다.")
		return
	}

	sessionID := middleware.SessionID(c)
	c.JSON(http.StatusOK, gin.H{
		"answer_id":      answer.ID,
		"total_votes":    answer.TotalVotes,
		"answer_content": truncateRunes(answer.Content, 100),
		"user_liked":     h.voting.HasLiked(sessionID, models.LikeTargetAnswer, answer.ID),
	})
}
