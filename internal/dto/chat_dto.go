package dto

import "github.com/google/uuid"

type SendMessageRequest struct {
	Message   string    `json:"message" validate:"required"`
	SessionId uuid.UUID `json:"sessionId" validate:"required"`
	Context   string    `json:"context"`
}

type SendMessageResponse struct {
	UserMessage *MessageResponse `json:"userMessage"`
	AiMessage   *MessageResponse `json:"aiMessage"`
}

type SummarizeRequest struct {
	Text string `json:"text" validate:"required"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type FlashcardsRequest struct {
	Text string `json:"text" validate:"required"`
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FlashcardsResponse carries either a parsed []Flashcard or, when the model
// output cannot be parsed, the raw text.
type FlashcardsResponse struct {
	Flashcards interface{} `json:"flashcards"`
}
