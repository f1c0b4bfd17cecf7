package services

import (
	"fmt"
	"log"
	"strings"

	"qnahub/internal/db"
	"qnahub/internal/models"
	"qnahub/internal/utils"
)

// 유사도 비교 후보 상한
const similarityCandidateLimit = 100

// SimilarityService 는 새 질문과 의미가 겹치는 기존 대표 질문을 찾는다.
// Policy: fail open to "no duplicate". An oracle error, an off-list id
// (hallucination) or the "None" sentinel all resolve to nil.
type SimilarityService struct {
	oracle *OracleService
}

func NewSimilarityService(oracle *OracleService) *SimilarityService {
	return &SimilarityService{oracle: oracle}
}

// FindSimilar returns the single best semantic match among existing
// representative questions, or nil when there is none. With zero candidates
// the oracle is never called.
func (s *SimilarityService) FindSimilar(content string) *models.RepresentativeQuestion {
	var candidates []models.RepresentativeQuestion
	if err := db.DB.Order("created_at DESC").Limit(similarityCandidateLimit).Find(&candidates).Error; err != nil {
		log.Printf("[Similarity] failed to load candidates: %v", err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	var sb strings.Builder
	for _, q := range candidates {
		fmt.Fprintf(&sb, "- (id: \"%d\") %s\n", q.ID, q.Title)
	}

	prompt := fmt.Sprintf(`당신은 두 문장 간의 의미적 유사도를 판단하는 전문가입니다.
아래에 '새로운 질문' 1개와 '기존 질문 목록'이 있습니다.
'기존 질문 목록' 중에서 '새로운 질문'과 의미적으로 **가장 유사한 질문 딱 하나만** 골라, 그 질문의 'id'를 알려주세요.

**[판단 기준]**
- 묻고자 하는 핵심 의도가 거의 동일해야 합니다.
- 만약 의미적으로 매우 유사한 질문이 없다면, **반드시 "None"** 이라고만 대답해주세요.

---
**[새로운 질문]**
"%s"
---
**[기존 질문 목록]**
%s---

**[가장 유사한 질문의 ID (하나만, 없으면 "None")]**`, content, sb.String())

	// Accuracy matters more than latency here, use the pro model.
	reply, err := s.oracle.Generate(prompt, true)
	if err != nil {
		log.Printf("[Similarity] oracle error, treating as no duplicate: %v", err)
		return nil
	}

	if reply == "" || strings.EqualFold(reply, "none") {
		return nil
	}

	id, ok := utils.ParseID(reply)
	if !ok {
		return nil
	}
	for i := range candidates {
		if candidates[i].ID == id {
			return &candidates[i]
		}
	}

	// The model answered with an id that is not in the candidate set.
	return nil
}
