package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"qnahub/internal/db"
	"qnahub/internal/models"
)

// newSubmissionService routes oracle requests by stage: the validator gets
// validatorReply, the duplicate check gets similarityReply. similarityCalls
// counts how often the duplicate check actually reached the oracle.
func newSubmissionService(t *testing.T, validatorReply, similarityReply string, similarityCalls *atomic.Int32) *SubmissionService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		prompt := ""
		if len(req.Messages) > 0 {
			prompt = req.Messages[0].Content
		}

		reply := validatorReply
		if strings.Contains(prompt, "의미적 유사도") {
			if similarityCalls != nil {
				similarityCalls.Add(1)
			}
			reply = similarityReply
		}

		var resp ChatResponse
		resp.Choices = make([]struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		}, 1)
		resp.Choices[0].Message.Content = reply
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	t.Setenv("LLM_BASE_URL", server.URL)
	t.Setenv("LLM_TOKEN", "test-token")

	oracle := NewOracleService()
	return NewSubmissionService(NewValidationService(oracle), NewSimilarityService(oracle))
}

func rawQuestionCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	db.DB.Model(&models.RawQuestion{}).Count(&count)
	return count
}

func TestSubmitPersistsPendingQuestion(t *testing.T) {
	setupTestDB(t)
	s := newSubmissionService(t, "적합", "None", nil)

	result, err := s.Submit("강의 영상 화질 개선 계획이 있나요?", "user1", false)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Rejected || result.Duplicate != nil {
		t.Fatalf("Expected persisted outcome, got %+v", result)
	}
	if result.Question == nil || result.Question.ID == 0 {
		t.Fatal("Expected a persisted question with an id")
	}
	if result.Question.Status != models.RawStatusPending {
		t.Errorf("Expected pending status, got %s", result.Question.Status)
	}
}

func TestSubmitRejectedPersistsNothing(t *testing.T) {
	setupTestDB(t)
	s := newSubmissionService(t, "부적합. 단순한 감정 표현입니다.", "None", nil)

	result, err := s.Submit("심심하다", "user1", false)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !result.Rejected {
		t.Fatal("Expected rejected outcome")
	}
	if result.Reason != "단순한 감정 표현입니다." {
		t.Errorf("Unexpected reason %q", result.Reason)
	}
	if got := rawQuestionCount(t); got != 0 {
		t.Errorf("Expected no persisted questions, got %d", got)
	}
}

func TestSubmitDuplicatePersistsNothing(t *testing.T) {
	setupTestDB(t)
	existing := seedRepresentative(t, "강의 화질 개선 계획")
	s := newSubmissionService(t, "적합", fmt.Sprintf("%d", existing.ID), nil)

	result, err := s.Submit("영상 화질이 안 좋아요", "user1", false)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Duplicate == nil {
		t.Fatal("Expected duplicate outcome")
	}
	if result.Duplicate.ID != existing.ID {
		t.Errorf("Expected duplicate %d, got %d", existing.ID, result.Duplicate.ID)
	}
	if got := rawQuestionCount(t); got != 0 {
		t.Errorf("Expected no persisted questions, got %d", got)
	}
}

func TestSubmitForceSkipsSimilarity(t *testing.T) {
	setupTestDB(t)
	existing := seedRepresentative(t, "강의 화질 개선 계획")

	var similarityCalls atomic.Int32
	s := newSubmissionService(t, "적합", fmt.Sprintf("%d", existing.ID), &similarityCalls)

	result, err := s.Submit("영상 화질이 안 좋아요", "user1", true)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Question == nil {
		t.Fatalf("Expected persisted outcome with force, got %+v", result)
	}
	if similarityCalls.Load() != 0 {
		t.Errorf("Expected no duplicate-check oracle calls with force, got %d", similarityCalls.Load())
	}
}

func TestSubmitValidatorFailOpenStillPersists(t *testing.T) {
	setupTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	t.Setenv("LLM_BASE_URL", server.URL)
	t.Setenv("LLM_TOKEN", "test-token")

	oracle := NewOracleService()
	s := NewSubmissionService(NewValidationService(oracle), NewSimilarityService(oracle))

	result, err := s.Submit("질문입니다", "user1", false)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Question == nil {
		t.Fatalf("Expected oracle outage to fail open and persist, got %+v", result)
	}
}
