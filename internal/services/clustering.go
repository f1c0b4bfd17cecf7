package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"qnahub/internal/db"
	"qnahub/internal/models"
	"qnahub/internal/utils"
)

// 한 번의 파이프라인 실행에서 처리하는 pending 질문 상한
const pipelineBatchLimit = 100

// 대표 질문 목록 캐시 키 (파이프라인이 새 질문을 만들면 무효화)
const RepresentativeListCacheKey = "questions:representative"

type clusterGroup struct {
	RepresentativeQuestion string   `json:"representative_question"`
	RelatedQuestionIDs     []string `json:"related_question_ids"`
}

// ClusteringService 주기적으로 pending 질문을 묶어 대표 질문을 생성한다.
// Policy: fail closed. Any oracle or parse failure aborts the cycle with no
// writes; the same pending batch is picked up again next run. The grouping
// algorithm itself lives in the model, not here.
type ClusteringService struct {
	oracle  *OracleService
	running atomic.Bool
}

func NewClusteringService(oracle *OracleService) *ClusteringService {
	return &ClusteringService{oracle: oracle}
}

// Run executes one pipeline cycle. Overlapping invocations are no-ops: the
// service is single-node, so an in-process flag is enough to keep two cron
// fires from double-processing the same batch.
func (s *ClusteringService) Run() error {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("[AI Pipeline] previous run still in progress, skipping")
		return nil
	}
	defer s.running.Store(false)

	var pending []models.RawQuestion
	if err := db.DB.Where("status = ?", models.RawStatusPending).
		Order("created_at ASC").
		Limit(pipelineBatchLimit).
		Find(&pending).Error; err != nil {
		return fmt.Errorf("failed to fetch pending questions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}
	log.Printf("[AI Pipeline] processing %d pending questions", len(pending))

	reply, err := s.oracle.Generate(buildClusterPrompt(pending), false)
	if err != nil {
		return fmt.Errorf("oracle call failed, batch left pending: %w", err)
	}

	var groups []clusterGroup
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &groups); err != nil {
		return fmt.Errorf("oracle reply is not valid JSON, batch left pending: %w", err)
	}

	batch := make(map[uint]bool, len(pending))
	batchIDs := make([]uint, 0, len(pending))
	for _, q := range pending {
		batch[q.ID] = true
		batchIDs = append(batchIDs, q.ID)
	}

	for _, group := range groups {
		title := strings.TrimSpace(group.RepresentativeQuestion)
		if title == "" {
			continue
		}

		// Resolve the model's id strings against the fetched batch. Invalid
		// or off-batch ids are dropped with a warning, not fatal.
		rawIDs := make([]uint, 0, len(group.RelatedQuestionIDs))
		for _, idStr := range group.RelatedQuestionIDs {
			id, ok := utils.ParseID(idStr)
			if !ok || !batch[id] {
				log.Printf("[AI Pipeline] dropping unresolvable question id %q", idStr)
				continue
			}
			rawIDs = append(rawIDs, id)
		}

		rep := models.RepresentativeQuestion{
			Title:          title,
			TotalVotes:     0,
			Status:         models.RepStatusUnanswered,
			RawQuestionIDs: rawIDs,
		}
		if err := db.DB.Create(&rep).Error; err != nil {
			log.Printf("[AI Pipeline] failed to insert representative question %q: %v", title, err)
			continue
		}
	}

	// The whole fetched batch moves forward, including questions the model
	// left out of every group, so nothing loops in pending forever. The
	// status filter keeps the flip from regressing answered questions.
	if err := db.DB.Model(&models.RawQuestion{}).
		Where("id IN ? AND status = ?", batchIDs, models.RawStatusPending).
		Update("status", models.RawStatusRepresented).Error; err != nil {
		return fmt.Errorf("failed to update raw question statuses: %w", err)
	}

	utils.GetCache().Delete(RepresentativeListCacheKey)
	log.Println("[AI Pipeline] run completed")
	return nil
}

func buildClusterPrompt(questions []models.RawQuestion) string {
	var sb strings.Builder
	for _, q := range questions {
		fmt.Fprintf(&sb, "- (id: \"%d\") %s\n", q.ID, q.Content)
	}

	return fmt.Sprintf(`당신은 QnAHub 커뮤니티의 질문들을 분석하는 AI 어시스턴트입니다.
아래에 사용자들이 남긴 여러 개의 질문 목록이 있습니다.
이 질문들은 **이미 1차 검증을 통과한 유효한 질문들**입니다.
이 질문들을 의미적으로 유사한 주제끼리 그룹핑하고, 각 그룹의 핵심 의도를 가장 잘 나타내는 '대표 질문'으로 요약해주세요.

**[규칙]**
1. 결과는 반드시 JSON 형식 [ {"representative_question": "...", "related_question_ids": ["..."]} ] 이어야 합니다.
2. related_question_ids 에는 각 질문 앞에 표시된 id 값을 그대로 넣어주세요.
3. 완전히 다른 주제의 질문은 별개의 그룹으로 묶어주세요.

**[사용자 질문 목록]**
%s
**[JSON 형식 결과]**`, sb.String())
}

// stripCodeFence removes an optional markdown code fence the model may wrap
// around its JSON reply.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
