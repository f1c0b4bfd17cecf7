package services

import (
	"errors"

	"qnahub/internal/db"
	"qnahub/internal/models"

	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound = errors.New("representative question not found")
	ErrAnswerExists     = errors.New("question already has an answer")
	ErrAnswerNotFound   = errors.New("answer not found")
)

// QuestionAndAnswer 답변이 달린 질문과 그 답변의 쌍.
type QuestionAndAnswer struct {
	Question models.RepresentativeQuestion `json:"question"`
	Answer   models.Answer                 `json:"answer"`
}

// AnswerService 관리자 답변 생성과 조회.
type AnswerService struct{}

func NewAnswerService() *AnswerService {
	return &AnswerService{}
}

// Create persists the official answer for a representative question. At most
// one answer may exist per question. On success the question becomes
// "answered" and every raw question it aggregates cascades to answered.
func (s *AnswerService) Create(questionID uint, content, authorID string) (*models.Answer, error) {
	var answer models.Answer

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var question models.RepresentativeQuestion
		if err := tx.First(&question, questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}

		var existing models.Answer
		err := tx.Where("representative_question_id = ?", questionID).First(&existing).Error
		if err == nil {
			return ErrAnswerExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		answer = models.Answer{
			Content:                  content,
			AuthorID:                 authorID,
			RepresentativeQuestionID: questionID,
			TotalVotes:               0,
		}
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}

		if err := tx.Model(&question).
			UpdateColumn("status", models.RepStatusAnswered).Error; err != nil {
			return err
		}

		// Cascade: every raw question this summary aggregates is now answered.
		// Raw ids were normalized to uint at cluster time, so the IN clause
		// resolves them directly.
		if len(question.RawQuestionIDs) > 0 {
			if err := tx.Model(&models.RawQuestion{}).
				Where("id IN ? AND status <> ?", question.RawQuestionIDs, models.RawStatusRejected).
				Update("status", models.RawStatusAnswered).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// GetForQuestion returns the answer for a question together with the question itself.
func (s *AnswerService) GetForQuestion(questionID uint) (*QuestionAndAnswer, error) {
	var answer models.Answer
	if err := db.DB.Where("representative_question_id = ?", questionID).First(&answer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}

	var question models.RepresentativeQuestion
	if err := db.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	return &QuestionAndAnswer{Question: question, Answer: answer}, nil
}

// ListAnswered returns answered question/answer pairs, newest answers first.
func (s *AnswerService) ListAnswered(skip, limit int) ([]QuestionAndAnswer, error) {
	var answers []models.Answer
	if err := db.DB.Order("created_at DESC").Offset(skip).Limit(limit).Find(&answers).Error; err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return []QuestionAndAnswer{}, nil
	}

	// Batch-load the owning questions instead of one query per answer
	questionIDs := make([]uint, len(answers))
	for i, a := range answers {
		questionIDs[i] = a.RepresentativeQuestionID
	}
	var questions []models.RepresentativeQuestion
	if err := db.DB.Where("id IN ?", questionIDs).Find(&questions).Error; err != nil {
		return nil, err
	}
	questionMap := make(map[uint]models.RepresentativeQuestion, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	result := make([]QuestionAndAnswer, 0, len(answers))
	for _, a := range answers {
		question, ok := questionMap[a.RepresentativeQuestionID]
		if !ok {
			// Orphaned answer, skip it rather than fail the listing
			continue
		}
		result = append(result, QuestionAndAnswer{Question: question, Answer: a})
	}
	return result, nil
}
