package services

import (
	"qnahub/internal/db"
	"qnahub/internal/models"
	"qnahub/internal/utils"
)

// SubmitResult 질문 제출 결과.
// Exactly one of the three outcomes holds: Rejected with a reason, Duplicate
// pointing at an existing representative question, or Question persisted in
// pending status.
type SubmitResult struct {
	Rejected  bool
	Reason    string
	Duplicate *models.RepresentativeQuestion
	Question  *models.RawQuestion
}

// SubmissionService 질문 제출 상태 기계:
// received → validated → {rejected | checked-for-duplicates} → {duplicate-found | persisted}
type SubmissionService struct {
	validator  *ValidationService
	similarity *SimilarityService
}

func NewSubmissionService(validator *ValidationService, similarity *SimilarityService) *SubmissionService {
	return &SubmissionService{
		validator:  validator,
		similarity: similarity,
	}
}

// Submit runs a raw question through validation and, unless force is set,
// the duplicate check. Nothing is persisted on the rejected and duplicate
// branches; the caller decides whether to resubmit with force or vote on
// the existing question.
func (s *SubmissionService) Submit(content, authorID string, force bool) (*SubmitResult, error) {
	content = utils.SanitizeText(content)

	accepted, reason := s.validator.Validate(content)
	if !accepted {
		return &SubmitResult{Rejected: true, Reason: reason}, nil
	}

	if !force {
		if dup := s.similarity.FindSimilar(content); dup != nil {
			return &SubmitResult{Duplicate: dup}, nil
		}
	}

	question := models.RawQuestion{
		Content:  content,
		AuthorID: authorID,
		Status:   models.RawStatusPending,
	}
	if err := db.DB.Create(&question).Error; err != nil {
		return nil, err
	}
	return &SubmitResult{Question: &question}, nil
}
