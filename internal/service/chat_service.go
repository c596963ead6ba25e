package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"study-companion-be/internal/constant"
	"study-companion-be/internal/dto"
	"study-companion-be/internal/entity"
	"study-companion-be/internal/pkg/logger"
	"study-companion-be/internal/pkg/serverutils"
	"study-companion-be/internal/repository/specification"
	"study-companion-be/internal/repository/unitofwork"
	"study-companion-be/pkg/events"
	"study-companion-be/pkg/extract"
	"study-companion-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatService interface {
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error)
	Flashcards(ctx context.Context, req *dto.FlashcardsRequest) (*dto.FlashcardsResponse, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	llmProvider      llm.LLMProvider
	modelName        string
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	modelName string,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		llmProvider:      llmProvider,
		modelName:        modelName,
		publisherService: publisherService,
		logger:           log,
	}
}

// SendMessage runs one exchange: completion first, then the user message, then
// the ai message, then the session counters. The two message writes are not
// wrapped in a transaction; an ai-side write failure leaves an orphan user
// message behind, which callers treat as a failed exchange.
//
// Each call is stateless from the model's perspective: prior turns are NOT
// replayed, only the caller-supplied context string is injected.
func (s *chatService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("Session not found")
	}

	history := []llm.Message{
		{Role: "system", Content: s.buildSystemPrompt(req.Context)},
		{Role: "user", Content: req.Message},
	}

	aiText, err := s.llmProvider.Chat(ctx, history,
		llm.WithTemperature(constant.ChatTemperature),
		llm.WithMaxTokens(constant.ChatMaxTokens),
	)
	if err != nil {
		return nil, serverutils.NewCompletionFailedError(err)
	}

	now := time.Now()
	userMessage := entity.ChatMessage{
		Id:        uuid.New(),
		Content:   req.Message,
		Sender:    constant.ChatSenderUser,
		SessionId: session.Id,
		CreatedAt: now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, serverutils.NewStoreWriteFailedError(err)
	}

	modelName := s.modelName
	aiMessage := entity.ChatMessage{
		Id:        uuid.New(),
		Content:   aiText,
		Sender:    constant.ChatSenderAi,
		SessionId: session.Id,
		AiModel:   &modelName,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &aiMessage); err != nil {
		return nil, serverutils.NewStoreWriteFailedError(err)
	}

	// Rolling counters; concurrent exchanges race with last-write-wins.
	session.MessageCount += 2
	session.LastMessage = req.Message
	updatedAt := time.Now()
	session.UpdatedAt = &updatedAt
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, serverutils.NewStoreWriteFailedError(err)
	}

	s.publishActivity(ctx, events.TypeExchangeCompleted, map[string]interface{}{
		"session_id": session.Id,
		"user_id":    session.UserId,
	})

	return &dto.SendMessageResponse{
		UserMessage: messageToResponse(&userMessage),
		AiMessage:   messageToResponse(&aiMessage),
	}, nil
}

func (s *chatService) Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	history := []llm.Message{
		{Role: "system", Content: constant.SummarySystemPrompt},
		{Role: "user", Content: fmt.Sprintf(constant.SummaryUserPromptFormat, req.Text)},
	}

	summary, err := s.llmProvider.Chat(ctx, history,
		llm.WithTemperature(constant.SummaryTemperature),
		llm.WithMaxTokens(constant.SummaryMaxTokens),
	)
	if err != nil {
		return nil, serverutils.NewCompletionFailedError(err)
	}

	return &dto.SummarizeResponse{Summary: summary}, nil
}

func (s *chatService) Flashcards(ctx context.Context, req *dto.FlashcardsRequest) (*dto.FlashcardsResponse, error) {
	history := []llm.Message{
		{Role: "system", Content: constant.FlashcardSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(constant.FlashcardUserPromptFormat, req.Text)},
	}

	content, err := s.llmProvider.Chat(ctx, history,
		llm.WithTemperature(constant.FlashcardTemperature),
		llm.WithMaxTokens(constant.FlashcardMaxTokens),
	)
	if err != nil {
		return nil, serverutils.NewCompletionFailedError(err)
	}

	if cards, ok := parseFlashcards(content); ok {
		return &dto.FlashcardsResponse{Flashcards: cards}, nil
	}

	s.logger.Warn("chat", "could not parse flashcards as JSON, returning raw content", nil)
	return &dto.FlashcardsResponse{Flashcards: content}, nil
}

func (s *chatService) buildSystemPrompt(contextText string) string {
	if contextText == "" {
		return constant.StudyCompanionSystemPrompt
	}
	excerpt := extract.Excerpt(contextText, constant.ContextExcerptLimit)
	return constant.StudyCompanionSystemPrompt + "\n\n" + constant.ContextPreamble + excerpt
}

// parseFlashcards extracts the first JSON array from model output.
// Best effort: models often wrap the array in prose or code fences.
func parseFlashcards(content string) ([]dto.Flashcard, bool) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	var cards []dto.Flashcard
	if err := json.Unmarshal([]byte(content[start:end+1]), &cards); err != nil {
		return nil, false
	}
	return cards, true
}

func (s *chatService) publishActivity(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.logger.Warn("chat", "failed to publish activity event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
