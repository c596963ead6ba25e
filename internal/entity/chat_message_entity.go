package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID
	Content   string
	Sender    string
	SessionId uuid.UUID
	AiModel   *string
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
