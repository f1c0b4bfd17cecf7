package models

import (
	"time"
)

// Answer 대표 질문에 대한 관리자 공식 답변.
// The unique index enforces at most one answer per representative question.
type Answer struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	Content                  string    `gorm:"type:text;not null" json:"content"`
	AuthorID                 string    `gorm:"size:64;not null" json:"author_id"`
	RepresentativeQuestionID uint      `gorm:"not null;uniqueIndex" json:"representative_question_id"`
	TotalVotes               int       `gorm:"default:0" json:"total_votes"`
	CreatedAt                time.Time `json:"created_at"`
}
