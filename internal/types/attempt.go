package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Attempt is the append-only audit record of a single practice event. Rows
// are never mutated or deleted after creation.
type Attempt struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TopicID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"topic_id"`
	Topic       *Topic         `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"topic,omitempty"`
	QuestionID  *uuid.UUID     `gorm:"type:uuid" json:"question_id,omitempty"`
	IsCorrect   bool           `gorm:"column:is_correct;not null;default:false" json:"is_correct"`
	SolvingTime *int           `gorm:"column:solving_time" json:"solving_time,omitempty"`
	Confidence  *float64       `gorm:"column:confidence" json:"confidence,omitempty"`
	Source      string         `gorm:"column:source;not null;default:'online'" json:"source"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	Timestamp   time.Time      `gorm:"column:timestamp;not null;index" json:"timestamp"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (Attempt) TableName() string { return "attempt" }
