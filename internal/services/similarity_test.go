package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"qnahub/internal/db"
	"qnahub/internal/models"
)

func newSimilarityOracle(t *testing.T, reply string, calls *atomic.Int32) *SimilarityService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
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

	return NewSimilarityService(NewOracleService())
}

func seedRepresentative(t *testing.T, title string) models.RepresentativeQuestion {
	t.Helper()
	q := models.RepresentativeQuestion{
		Title:  title,
		Status: models.RepStatusUnanswered,
	}
	if err := db.DB.Create(&q).Error; err != nil {
		t.Fatalf("failed to seed representative question: %v", err)
	}
	return q
}

func TestFindSimilarNoCandidatesSkipsOracle(t *testing.T) {
	setupTestDB(t)

	var calls atomic.Int32
	s := newSimilarityOracle(t, "무시됨", &calls)

	if got := s.FindSimilar("새 질문"); got != nil {
		t.Errorf("Expected nil with zero candidates, got %+v", got)
	}
	if calls.Load() != 0 {
		t.Errorf("Expected no oracle calls, got %d", calls.Load())
	}
}

func TestFindSimilarReturnsMatch(t *testing.T) {
	setupTestDB(t)
	q := seedRepresentative(t, "강의 화질 개선 계획")
	seedRepresentative(t, "인턴십 일정 문의")

	s := newSimilarityOracle(t, fmt.Sprintf("%d", q.ID), nil)

	got := s.FindSimilar("영상 화질이 안 좋아요")
	if got == nil {
		t.Fatal("Expected a match")
	}
	if got.ID != q.ID {
		t.Errorf("Expected question %d, got %d", q.ID, got.ID)
	}
}

func TestFindSimilarNoneSentinel(t *testing.T) {
	setupTestDB(t)
	seedRepresentative(t, "강의 화질 개선 계획")

	s := newSimilarityOracle(t, "None", nil)
	if got := s.FindSimilar("완전히 다른 질문"); got != nil {
		t.Errorf("Expected nil for None sentinel, got %+v", got)
	}
}

func TestFindSimilarHallucinatedID(t *testing.T) {
	setupTestDB(t)
	seedRepresentative(t, "강의 화질 개선 계획")

	s := newSimilarityOracle(t, "999999", nil)
	if got := s.FindSimilar("새 질문"); got != nil {
		t.Errorf("Expected nil for off-list id, got %+v", got)
	}
}

func TestFindSimilarOracleErrorFailsOpen(t *testing.T) {
	setupTestDB(t)
	seedRepresentative(t, "강의 화질 개선 계획")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	t.Setenv("LLM_BASE_URL", server.URL)
	t.Setenv("LLM_TOKEN", "test-token")

	s := NewSimilarityService(NewOracleService())
	if got := s.FindSimilar("새 질문"); got != nil {
		t.Errorf("Expected nil on oracle error, got %+v", got)
	}
}

func TestFindSimilarQuotedID(t *testing.T) {
	setupTestDB(t)
	q := seedRepresentative(t, "강의 화질 개선 계획")

	s := newSimilarityOracle(t, fmt.Sprintf("%q", fmt.Sprint(q.ID)), nil)
	got := s.FindSimilar("영상 화질이 안 좋아요")
	if got == nil || got.ID != q.ID {
		t.Errorf("Expected quoted id to resolve to question %d", q.ID)
	}
}
