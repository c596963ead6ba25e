package service

import (
	"context"
	"time"

	"study-companion-be/internal/constant"
	"study-companion-be/internal/dto"
	"study-companion-be/internal/entity"
	"study-companion-be/internal/pkg/logger"
	"study-companion-be/internal/pkg/serverutils"
	"study-companion-be/internal/repository/specification"
	"study-companion-be/internal/repository/unitofwork"
	"study-companion-be/pkg/events"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetAll(ctx context.Context, userId string) ([]*dto.SessionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetMessages(ctx context.Context, id uuid.UUID) ([]*dto.MessageResponse, error)
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	title := req.Title
	if title == "" {
		title = constant.DefaultSessionTitle
	}
	userId := req.UserId
	if userId == "" {
		userId = constant.DefaultUserId
	}

	now := time.Now()
	session := entity.ChatSession{
		Id:           uuid.New(),
		UserId:       userId,
		Title:        title,
		MessageCount: 0,
		LastMessage:  "",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    &now,
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, serverutils.NewStoreWriteFailedError(err)
	}

	s.publishActivity(ctx, events.TypeSessionCreated, map[string]interface{}{
		"session_id": session.Id,
		"user_id":    session.UserId,
	})

	return sessionToResponse(&session), nil
}

func (s *sessionService) GetAll(ctx context.Context, userId string) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if userId != "" {
		specs = append(specs, specification.ByUserID{UserID: userId})
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, sessionToResponse(session))
	}
	return response, nil
}

func (s *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("Session not found")
	}

	return sessionToResponse(session), nil
}

func (s *sessionService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("Session not found")
	}

	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.IsActive != nil {
		session.IsActive = *req.IsActive
	}
	now := time.Now()
	session.UpdatedAt = &now

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, serverutils.NewStoreWriteFailedError(err)
	}

	return sessionToResponse(session), nil
}

// Delete removes a session's messages first, then the session itself. The
// message bulk delete commits as one batch; a failure between the two phases
// leaves orphaned state with no automatic repair.
func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.NewNotFoundError("Session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return serverutils.NewStoreWriteFailedError(err)
	}
	if err := uow.ChatMessageRepository().DeleteAllBySessionId(ctx, id); err != nil {
		uow.Rollback()
		return serverutils.NewStoreWriteFailedError(err)
	}
	if err := uow.Commit(); err != nil {
		return serverutils.NewStoreWriteFailedError(err)
	}

	if err := uow.ChatSessionRepository().Delete(ctx, id); err != nil {
		return serverutils.NewStoreWriteFailedError(err)
	}

	s.publishActivity(ctx, events.TypeSessionDeleted, map[string]interface{}{
		"session_id": id,
	})

	return nil
}

func (s *sessionService) GetMessages(ctx context.Context, id uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("Session not found")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, messageToResponse(msg))
	}
	return response, nil
}

// publishActivity forwards an event to the activity bus; delivery is
// auxiliary, so failures are logged and never fail the request.
func (s *sessionService) publishActivity(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.logger.Warn("session", "failed to publish activity event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func sessionToResponse(session *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:           session.Id,
		Title:        session.Title,
		UserId:       session.UserId,
		MessageCount: session.MessageCount,
		LastMessage:  session.LastMessage,
		IsActive:     session.IsActive,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
}

func messageToResponse(msg *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        msg.Id,
		Content:   msg.Content,
		Sender:    msg.Sender,
		Timestamp: msg.CreatedAt,
		SessionId: msg.SessionId,
		AiModel:   msg.AiModel,
	}
}
