package services

import (
	"errors"
	"fmt"
	"testing"

	"qnahub/internal/db"
	"qnahub/internal/models"
)

func TestCreateAnswerCascades(t *testing.T) {
	setupTestDB(t)
	q1 := seedRawQuestion(t, "화질 언제 좋아지나요?")
	q2 := seedRawQuestion(t, "VOD 화질 개선 계획 있나요?")
	db.DB.Model(&models.RawQuestion{}).Where("id IN ?", []uint{q1.ID, q2.ID}).
		Update("status", models.RawStatusRepresented)

	rep := models.RepresentativeQuestion{
		Title:          "영상 화질 개선 계획",
		Status:         models.RepStatusUnanswered,
		RawQuestionIDs: []uint{q1.ID, q2.ID},
	}
	if err := db.DB.Create(&rep).Error; err != nil {
		t.Fatalf("failed to seed representative question: %v", err)
	}

	s := NewAnswerService()
	answer, err := s.Create(rep.ID, "다음 분기부터 1080p로 제공될 예정입니다.", "admin")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if answer.RepresentativeQuestionID != rep.ID {
		t.Errorf("Expected answer bound to question %d, got %d", rep.ID, answer.RepresentativeQuestionID)
	}

	var got models.RepresentativeQuestion
	if err := db.DB.First(&got, rep.ID).Error; err != nil {
		t.Fatalf("failed to reload question: %v", err)
	}
	if got.Status != models.RepStatusAnswered {
		t.Errorf("Expected question answered, got %s", got.Status)
	}

	if st := rawStatus(t, q1.ID); st != models.RawStatusAnswered {
		t.Errorf("Expected raw question 1 answered, got %s", st)
	}
	if st := rawStatus(t, q2.ID); st != models.RawStatusAnswered {
		t.Errorf("Expected raw question 2 answered, got %s", st)
	}
}

func TestCreateAnswerDuplicate(t *testing.T) {
	setupTestDB(t)
	rep := seedRepresentative(t, "영상 화질 개선 계획")

	s := NewAnswerService()
	if _, err := s.Create(rep.ID, "첫 번째 답변", "admin"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Create(rep.ID, "두 번째 답변", "admin"); !errors.Is(err, ErrAnswerExists) {
		t.Errorf("Expected ErrAnswerExists, got %v", err)
	}

	var count int64
	db.DB.Model(&models.Answer{}).Where("representative_question_id = ?", rep.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one answer, got %d", count)
	}
}

func TestCreateAnswerQuestionNotFound(t *testing.T) {
	setupTestDB(t)

	s := NewAnswerService()
	if _, err := s.Create(424242, "답변", "admin"); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("Expected ErrQuestionNotFound, got %v", err)
	}
}

func TestGetForQuestion(t *testing.T) {
	setupTestDB(t)
	rep := seedRepresentative(t, "영상 화질 개선 계획")

	s := NewAnswerService()
	if _, err := s.GetForQuestion(rep.ID); !errors.Is(err, ErrAnswerNotFound) {
		t.Errorf("Expected ErrAnswerNotFound before answering, got %v", err)
	}

	if _, err := s.Create(rep.ID, "공식 답변입니다.", "admin"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	pair, err := s.GetForQuestion(rep.ID)
	if err != nil {
		t.Fatalf("GetForQuestion failed: %v", err)
	}
	if pair.Question.ID != rep.ID {
		t.Errorf("Expected question %d, got %d", rep.ID, pair.Question.ID)
	}
	if pair.Answer.Content != "공식 답변입니다." {
		t.Errorf("Unexpected answer content %q", pair.Answer.Content)
	}
}

func TestListAnswered(t *testing.T) {
	setupTestDB(t)
	s := NewAnswerService()

	for i := 0; i < 3; i++ {
		rep := seedRepresentative(t, fmt.Sprintf("질문 %d", i))
		if _, err := s.Create(rep.ID, fmt.Sprintf("답변 %d", i), "admin"); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	seedRepresentative(t, "아직 답변 없는 질문")

	pairs, err := s.ListAnswered(0, 10)
	if err != nil {
		t.Fatalf("ListAnswered failed: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("Expected 3 pairs, got %d", len(pairs))
	}
	for _, p := range pairs {
		if p.Answer.RepresentativeQuestionID != p.Question.ID {
			t.Errorf("Answer %d paired with wrong question %d", p.Answer.ID, p.Question.ID)
		}
	}

	page, err := s.ListAnswered(1, 1)
	if err != nil {
		t.Fatalf("ListAnswered pagination failed: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("Expected 1 pair on the second page, got %d", len(page))
	}
}
