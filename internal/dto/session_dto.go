package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title  string `json:"title"`
	UserId string `json:"userId"`
}

type UpdateSessionRequest struct {
	Title    *string `json:"title"`
	IsActive *bool   `json:"isActive"`
}

type SessionResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	UserId       string     `json:"userId"`
	MessageCount int        `json:"messageCount"`
	LastMessage  string     `json:"lastMessage"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	SessionId uuid.UUID `json:"sessionId"`
	AiModel   *string   `json:"aiModel,omitempty"`
}
