package models

import (
	"time"
)

type LikeTargetType string

const (
	LikeTargetQuestion LikeTargetType = "question"
	LikeTargetAnswer   LikeTargetType = "answer"
)

// Like 세션 단위 좋아요 기록.
// One row per (session, target, type) — the composite unique index is the sole
// duplicate-vote guard. Created on like, deleted on unlike.
type Like struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SessionID  string         `gorm:"size:64;not null;uniqueIndex:idx_session_target" json:"session_id"`
	TargetID   uint           `gorm:"not null;uniqueIndex:idx_session_target" json:"target_id"`
	TargetType LikeTargetType `gorm:"type:varchar(10);not null;uniqueIndex:idx_session_target" json:"target_type"`
	IPAddress  string         `gorm:"size:45" json:"ip_address"`
	CreatedAt  time.Time      `json:"liked_at"`
}
