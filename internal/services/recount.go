package services

import (
	"log"
	"sync"
	"time"

	"qnahub/internal/db"
	"qnahub/internal/models"
)

type recountKey struct {
	targetType models.LikeTargetType
	targetID   uint
}

// RecountService 비동기로 total_votes 를 likes 테이블 기준으로 재계산한다.
// The voting transaction keeps the counter correct in the common case; this
// worker repairs any drift (crashed transactions, manual edits) so the
// counter == like-count invariant holds over time.
type RecountService struct {
	queue   chan recountKey
	pending map[recountKey]bool
	mu      sync.Mutex
}

var (
	recountService *RecountService
	recountOnce    sync.Once
)

// GetRecountService returns the singleton recount worker.
func GetRecountService() *RecountService {
	recountOnce.Do(func() {
		recountService = &RecountService{
			queue:   make(chan recountKey, 1000),
			pending: make(map[recountKey]bool),
		}
		go recountService.worker()
	})
	return recountService
}

// Schedule queues a target for recounting, deduplicating bursts of votes on
// the same target.
func (s *RecountService) Schedule(targetType models.LikeTargetType, targetID uint) {
	key := recountKey{targetType: targetType, targetID: targetID}

	s.mu.Lock()
	if s.pending[key] {
		s.mu.Unlock()
		return
	}
	s.pending[key] = true
	s.mu.Unlock()

	select {
	case s.queue <- key:
	default:
		// Queue full, drop the request; the next vote reschedules it
		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
		log.Printf("recount queue full, skipping %s %d", targetType, targetID)
	}
}

func (s *RecountService) worker() {
	batch := make([]recountKey, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case key := <-s.queue:
			batch = append(batch, key)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *RecountService) processBatch(keys []recountKey) {
	for _, key := range keys {
		s.recountTarget(key)

		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
	}
}

func (s *RecountService) recountTarget(key recountKey) {
	var count int64
	if err := db.DB.Model(&models.Like{}).
		Where("target_id = ? AND target_type = ?", key.targetID, key.targetType).
		Count(&count).Error; err != nil {
		log.Printf("recount failed for %s %d: %v", key.targetType, key.targetID, err)
		return
	}

	model, err := targetModel(key.targetType)
	if err != nil {
		return
	}
	if err := db.DB.Model(model).Where("id = ?", key.targetID).
		UpdateColumn("total_votes", count).Error; err != nil {
		log.Printf("recount update failed for %s %d: %v", key.targetType, key.targetID, err)
	}
}
