package contract

import (
	"context"

	"study-companion-be/internal/entity"
	"study-companion-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DeleteAllBySessionId removes every message of a session in a single statement.
	DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
