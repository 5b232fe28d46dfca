package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewRecord is the audit copy of a one-off answer evaluation.
type InterviewRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserEmail string    `gorm:"type:text;index" json:"user"`
	Question  string    `gorm:"type:text" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	Feedback  string    `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}

func (InterviewRecord) TableName() string {
	return "interview_records"
}

// SessionRecord is the audit copy of one answered question inside a
// resume interview session. The live session state stays in memory;
// this row can outlive it.
type SessionRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserEmail     string    `gorm:"type:text;index" json:"user"`
	Question      string    `gorm:"type:text" json:"question"`
	Answer        string    `gorm:"type:text" json:"answer"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	CorrectAnswer string    `gorm:"type:text" json:"correct_answer"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}
