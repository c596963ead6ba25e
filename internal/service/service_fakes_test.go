package service

import (
	"context"
	"sort"
	"sync"

	"study-companion-be/internal/entity"
	"study-companion-be/internal/repository/contract"
	"study-companion-be/internal/repository/specification"
	"study-companion-be/internal/repository/unitofwork"
	"study-companion-be/pkg/events"
	"study-companion-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. Specifications are interpreted
// by type switch, mirroring what the gorm implementations do in SQL.

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.BaseEvent
	err    error
}

func (p *capturingPublisher) Publish(ctx context.Context, event events.BaseEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type stubLLM struct {
	reply   string
	err     error
	history []llm.Message
	options llm.Options
	calls   int
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	s.history = history
	var opts llm.Options
	for _, apply := range options {
		apply(&opts)
	}
	s.options = opts
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakeSessionRepo struct {
	sessions  map[uuid.UUID]*entity.ChatSession
	createErr error
	updateErr error
	deleteErr error
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	matches, _ := r.FindAll(ctx, specs...)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, s := range r.sessions {
		copied := *s
		out = append(out, &copied)
	}

	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			out = filterSessions(out, func(s *entity.ChatSession) bool { return s.Id == sp.ID })
		case specification.ByUserID:
			out = filterSessions(out, func(s *entity.ChatSession) bool { return s.UserId == sp.UserID })
		case specification.OrderBy:
			sortSessions(out, sp)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func filterSessions(in []*entity.ChatSession, keep func(*entity.ChatSession) bool) []*entity.ChatSession {
	var out []*entity.ChatSession
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func sortSessions(in []*entity.ChatSession, order specification.OrderBy) {
	sort.SliceStable(in, func(i, j int) bool {
		var less bool
		switch order.Field {
		case "updated_at":
			ti, tj := in[i].CreatedAt, in[j].CreatedAt
			if in[i].UpdatedAt != nil {
				ti = *in[i].UpdatedAt
			}
			if in[j].UpdatedAt != nil {
				tj = *in[j].UpdatedAt
			}
			less = ti.Before(tj)
		default:
			less = in[i].CreatedAt.Before(in[j].CreatedAt)
		}
		if order.Desc {
			return !less
		}
		return less
	})
}

type fakeMessageRepo struct {
	messages  []*entity.ChatMessage
	createErr error
	// createErrAfter fails Create once the repo already holds n messages.
	createErrAfter int
	deleteErr      error
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.createErr != nil && len(r.messages) >= r.createErrAfter {
		return r.createErr
	}
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	out := make([]*entity.ChatMessage, 0, len(r.messages))
	for _, m := range r.messages {
		copied := *m
		out = append(out, &copied)
	}

	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.BySessionID:
			filtered := out[:0]
			for _, m := range out {
				if m.SessionId == sp.SessionID {
					filtered = append(filtered, m)
				}
			}
			out = filtered
		case specification.OrderBy:
			order := sp
			sort.SliceStable(out, func(i, j int) bool {
				less := out[i].CreatedAt.Before(out[j].CreatedAt)
				if order.Desc {
					return !less
				}
				return less
			})
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func (r *fakeMessageRepo) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	var kept []*entity.ChatMessage
	for _, m := range r.messages {
		if m.SessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

type fakeFileRepo struct {
	files     map[uuid.UUID]*entity.FileRecord
	createErr error
	deleteErr error
}

func (r *fakeFileRepo) Create(ctx context.Context, file *entity.FileRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *file
	r.files[file.Id] = &copied
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.files, id)
	return nil
}

func (r *fakeFileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileRecord, error) {
	matches, _ := r.FindAll(ctx, specs...)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeFileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileRecord, error) {
	var out []*entity.FileRecord
	for _, f := range r.files {
		copied := *f
		out = append(out, &copied)
	}

	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			filtered := out[:0]
			for _, f := range out {
				if f.Id == sp.ID {
					filtered = append(filtered, f)
				}
			}
			out = filtered
		case specification.OrderBy:
			order := sp
			sort.SliceStable(out, func(i, j int) bool {
				less := out[i].UploadedAt.Before(out[j].UploadedAt)
				if order.Desc {
					return !less
				}
				return less
			})
		}
	}
	return out, nil
}

func (r *fakeFileRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

type fakeUnitOfWork struct {
	sessionRepo *fakeSessionRepo
	messageRepo *fakeMessageRepo
	fileRepo    *fakeFileRepo

	beginErr  error
	commitErr error

	begins    int
	commits   int
	rollbacks int
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	u.begins++
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.commitErr != nil {
		return u.commitErr
	}
	u.commits++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.rollbacks++
	return nil
}

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessionRepo
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.messageRepo
}

func (u *fakeUnitOfWork) FileRepository() contract.FileRepository {
	return u.fileRepo
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeFactory() (*fakeFactory, *fakeUnitOfWork) {
	uow := &fakeUnitOfWork{
		sessionRepo: &fakeSessionRepo{sessions: map[uuid.UUID]*entity.ChatSession{}},
		messageRepo: &fakeMessageRepo{},
		fileRepo:    &fakeFileRepo{files: map[uuid.UUID]*entity.FileRecord{}},
	}
	return &fakeFactory{uow: uow}, uow
}
