package router

import (
	"net/http"

	"qnahub/internal/handlers"
	"qnahub/internal/middleware"
	"qnahub/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires handlers onto the engine. The oracle client is built
// once here and handed to each stage by reference.
func RegisterRoutes(r *gin.Engine, oracle *services.OracleService) {
	validator := services.NewValidationService(oracle)
	similarity := services.NewSimilarityService(oracle)
	submission := services.NewSubmissionService(validator, similarity)
	voting := services.NewVotingService()
	answers := services.NewAnswerService()

	communityHandler := handlers.NewCommunityHandler()
	questionHandler := handlers.NewQuestionHandler(submission)
	answerHandler := handlers.NewAnswerHandler(answers)
	likeHandler := handlers.NewLikeHandler(voting)
	adminHandler := handlers.NewAdminHandler()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Hello": "QnAHub"})
	})

	// 커뮤니티 게시판
	community := r.Group("/community")
	{
		community.POST("/posts", communityHandler.Create)
		community.GET("/posts", communityHandler.List)
		community.GET("/posts/:id", communityHandler.Get)
		community.PATCH("/posts/:id", communityHandler.Update)
		community.DELETE("/posts/:id", communityHandler.Delete)
	}

	// 질문 제출 / 대표 질문 조회
	questions := r.Group("/questions")
	{
		questions.POST("/raw", questionHandler.SubmitRaw)
		questions.GET("/representative", questionHandler.ListRepresentative)
	}

	// 답변 (생성은 관리자 전용)
	answersGroup := r.Group("/answers")
	{
		answersGroup.POST("", middleware.AdminRequired(), answerHandler.Create)
		answersGroup.GET("", answerHandler.List)
		answersGroup.GET("/by-question/:id", answerHandler.ByQuestion)
	}

	// 좋아요
	likes := r.Group("/likes")
	{
		likes.PUT("/questions/:id/like", likeHandler.LikeQuestion)
		likes.PUT("/questions/:id/unlike", likeHandler.UnlikeQuestion)
		likes.GET("/questions/:id/votes", likeHandler.QuestionVotes)
		likes.PUT("/answers/:id/like", likeHandler.LikeAnswer)
		likes.PUT("/answers/:id/unlike", likeHandler.UnlikeAnswer)
		likes.GET("/answers/:id/votes", likeHandler.AnswerVotes)
	}

	// 관리자
	admin := r.Group("/admin")
	{
		admin.POST("/login", adminHandler.Login)
		admin.POST("/logout", adminHandler.Logout)
	}
}
