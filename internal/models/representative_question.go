package models

import (
	"time"
)

type RepresentativeQuestionStatus string

const (
	RepStatusUnanswered RepresentativeQuestionStatus = "unanswered"
	RepStatusAnswered   RepresentativeQuestionStatus = "answered"
)

// RepresentativeQuestion AI 파이프라인이 생성한 대표 질문.
// RawQuestionIDs holds the primary keys of the raw questions this summary stands
// for. IDs are normalized to uint at write time; the column is a JSON array.
type RepresentativeQuestion struct {
	ID             uint                         `gorm:"primaryKey" json:"id"`
	Title          string                       `gorm:"not null" json:"title"`
	TotalVotes     int                          `gorm:"default:0" json:"total_votes"`
	Status         RepresentativeQuestionStatus `gorm:"type:varchar(20);not null;default:'unanswered';index" json:"status"`
	RawQuestionIDs []uint                       `gorm:"serializer:json;type:text" json:"raw_question_ids"`
	CreatedAt      time.Time                    `json:"created_at"`
}
