package models

import (
	"time"
)

type RawQuestionStatus string

const (
	RawStatusPending     RawQuestionStatus = "pending"
	RawStatusRejected    RawQuestionStatus = "rejected" // kept for schema compatibility; rejected questions are never persisted
	RawStatusRepresented RawQuestionStatus = "represented"
	RawStatusAnswered    RawQuestionStatus = "answered"
)

// RawQuestion 사용자가 제출한 원본 질문. 상태는 앞으로만 이동한다:
// pending → represented → answered
type RawQuestion struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Content   string            `gorm:"type:text;not null" json:"content"`
	AuthorID  string            `gorm:"size:64;not null;index" json:"author_id"`
	Status    RawQuestionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}
