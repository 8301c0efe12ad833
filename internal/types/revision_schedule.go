package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RevisionSchedule is the persisted spaced-repetition state for one
// (user, topic) pair. One row per pair, enforced by idx_user_topic_schedule;
// created once by the lifecycle manager and overwritten field-by-field on
// every logged review.
type RevisionSchedule struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_topic_schedule,unique" json:"user_id"`
	User          *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TopicID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_topic_schedule,unique" json:"topic_id"`
	Topic         *Topic         `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"topic,omitempty"`
	EaseFactor    float64        `gorm:"column:ease_factor;not null;default:2.5" json:"ease_factor"`
	Interval      int            `gorm:"column:interval;not null;default:1" json:"interval"`
	Repetitions   int            `gorm:"column:repetitions;not null;default:0" json:"repetitions"`
	ScheduledDate time.Time      `gorm:"column:scheduled_date;not null;index" json:"scheduled_date"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (RevisionSchedule) TableName() string { return "revision_schedule" }
