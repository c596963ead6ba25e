package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessage struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content   string         `gorm:"type:text;not null"`
	Sender    string         `gorm:"type:varchar(50);not null"` // "user" or "ai"
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	AiModel   *string        `gorm:"type:varchar(100)"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
