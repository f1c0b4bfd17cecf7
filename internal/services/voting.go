package services

import (
	"errors"
	"fmt"

	"qnahub/internal/db"
	"qnahub/internal/models"

	"gorm.io/gorm"
)

var ErrUnknownTarget = errors.New("unknown like target type")

// VotingService 세션 단위 좋아요/취소 처리.
// The likes table is the source of truth; total_votes is maintained in the
// same transaction so it always equals the live like count. Decrements are
// conditional so the counter never drops below zero.
type VotingService struct{}

func NewVotingService() *VotingService {
	return &VotingService{}
}

// targetModel returns the gorm model for a like target type.
func targetModel(targetType models.LikeTargetType) (interface{}, error) {
	switch targetType {
	case models.LikeTargetQuestion:
		return &models.RepresentativeQuestion{}, nil
	case models.LikeTargetAnswer:
		return &models.Answer{}, nil
	default:
		return nil, ErrUnknownTarget
	}
}

// Like records one like per (session, target). Repeat calls are rejected with
// accepted=false and no state change.
func (s *VotingService) Like(sessionID string, targetType models.LikeTargetType, targetID uint, ipAddress string) (int, bool, error) {
	model, err := targetModel(targetType)
	if err != nil {
		return 0, false, err
	}

	accepted := false
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("session_id = ? AND target_id = ? AND target_type = ?",
			sessionID, targetID, targetType).First(&existing).Error
		if err == nil {
			// Already liked, reject without touching anything
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		like := models.Like{
			SessionID:  sessionID,
			TargetID:   targetID,
			TargetType: targetType,
			IPAddress:  ipAddress,
		}
		if err := tx.Create(&like).Error; err != nil {
			// The unique index backstops concurrent double-likes
			return err
		}

		if err := tx.Model(model).Where("id = ?", targetID).
			UpdateColumn("total_votes", gorm.Expr("total_votes + ?", 1)).Error; err != nil {
			return err
		}

		accepted = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	count, err := s.totalVotes(targetType, targetID)
	if err != nil {
		return 0, accepted, err
	}
	if accepted {
		GetRecountService().Schedule(targetType, targetID)
	}
	return count, accepted, nil
}

// Unlike removes the session's like. Calls without a matching like are
// rejected with accepted=false and no state change.
func (s *VotingService) Unlike(sessionID string, targetType models.LikeTargetType, targetID uint) (int, bool, error) {
	model, err := targetModel(targetType)
	if err != nil {
		return 0, false, err
	}

	accepted := false
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("session_id = ? AND target_id = ? AND target_type = ?",
			sessionID, targetID, targetType).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Not liked yet, nothing to undo
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}

		// Conditional decrement: only applied while the counter is positive
		if err := tx.Model(model).Where("id = ? AND total_votes > 0", targetID).
			UpdateColumn("total_votes", gorm.Expr("total_votes - ?", 1)).Error; err != nil {
			return err
		}

		accepted = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	count, err := s.totalVotes(targetType, targetID)
	if err != nil {
		return 0, accepted, err
	}
	if accepted {
		GetRecountService().Schedule(targetType, targetID)
	}
	return count, accepted, nil
}

// HasLiked reports whether the session currently has an active like on the target.
func (s *VotingService) HasLiked(sessionID string, targetType models.LikeTargetType, targetID uint) bool {
	var count int64
	db.DB.Model(&models.Like{}).
		Where("session_id = ? AND target_id = ? AND target_type = ?", sessionID, targetID, targetType).
		Count(&count)
	return count > 0
}

func (s *VotingService) totalVotes(targetType models.LikeTargetType, targetID uint) (int, error) {
	switch targetType {
	case models.LikeTargetQuestion:
		var q models.RepresentativeQuestion
		if err := db.DB.First(&q, targetID).Error; err != nil {
			return 0, fmt.Errorf("failed to load question %d: %w", targetID, err)
		}
		return q.TotalVotes, nil
	case models.LikeTargetAnswer:
		var a models.Answer
		if err := db.DB.First(&a, targetID).Error; err != nil {
			return 0, fmt.Errorf("failed to load answer %d: %w", targetID, err)
		}
		return a.TotalVotes, nil
	default:
		return 0, ErrUnknownTarget
	}
}
