package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mastery holds the current 0-100 command estimate for one (user, topic)
// pair. Exactly one row exists per pair, enforced by idx_user_topic_mastery.
type Mastery struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_topic_mastery,unique" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TopicID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_topic_mastery,unique" json:"topic_id"`
	Topic     *Topic         `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"topic,omitempty"`
	Score     float64        `gorm:"column:score;not null;default:0" json:"score"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Mastery) TableName() string { return "mastery" }
