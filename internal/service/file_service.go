package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"study-companion-be/internal/dto"
	"study-companion-be/internal/entity"
	"study-companion-be/internal/pkg/logger"
	"study-companion-be/internal/pkg/serverutils"
	"study-companion-be/internal/repository/memory"
	"study-companion-be/internal/repository/specification"
	"study-companion-be/internal/repository/unitofwork"
	"study-companion-be/pkg/events"
	"study-companion-be/pkg/extract"

	"github.com/google/uuid"
)

type IFileService interface {
	Ingest(ctx context.Context, file *multipart.FileHeader) (*dto.FileRecordResponse, error)
	GetAll(ctx context.Context) ([]*dto.FileRecordResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.FileRecordResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileService struct {
	uowFactory       unitofwork.RepositoryFactory
	cache            *memory.FileRecordCache
	publisherService IPublisherService
	logger           logger.ILogger
	uploadDir        string
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.FileRecordCache,
	publisherService IPublisherService,
	log logger.ILogger,
	uploadDir string,
) IFileService {
	return &fileService{
		uowFactory:       uowFactory,
		cache:            cache,
		publisherService: publisherService,
		logger:           log,
		uploadDir:        uploadDir,
	}
}

// Ingest extracts text from an uploaded binary and persists the record.
// The temporary binary is removed unconditionally, success or failure, so
// uploads never accumulate on disk.
func (s *fileService) Ingest(ctx context.Context, file *multipart.FileHeader) (*dto.FileRecordResponse, error) {
	// Reject unsupported extensions before anything touches the store.
	if !extract.Supported(file.Filename) {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		return nil, serverutils.NewUnsupportedFileTypeError(ext)
	}

	uploadedAt := time.Now()

	tmpPath, err := s.saveTemp(file)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			s.logger.Warn("file", "failed to remove temporary upload", map[string]interface{}{
				"path":  tmpPath,
				"error": err.Error(),
			})
		}
	}()

	result, err := extract.FromFile(tmpPath, file.Filename, file.Size)
	if err != nil {
		return nil, fmt.Errorf("process file: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record := entity.FileRecord{
		Id:          uuid.New(),
		Name:        file.Filename,
		Size:        file.Size,
		Type:        file.Header.Get("Content-Type"),
		Text:        result.Text,
		Metadata:    result.Metadata,
		UploadedAt:  uploadedAt,
		ProcessedAt: time.Now(),
	}
	if err := uow.FileRepository().Create(ctx, &record); err != nil {
		return nil, serverutils.NewStoreWriteFailedError(err)
	}

	s.cache.Save(&record)
	s.publishActivity(ctx, events.TypeFileIngested, map[string]interface{}{
		"file_id": record.Id,
		"name":    record.Name,
		"size":    record.Size,
	})

	return fileToResponse(&record), nil
}

func (s *fileService) GetAll(ctx context.Context) ([]*dto.FileRecordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.FileRepository().FindAll(ctx,
		specification.OrderBy{Field: "uploaded_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.FileRecordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, fileToResponse(record))
	}
	return response, nil
}

func (s *fileService) Show(ctx context.Context, id uuid.UUID) (*dto.FileRecordResponse, error) {
	if record, found := s.cache.Get(id); found {
		return fileToResponse(record), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, serverutils.NewNotFoundError("File not found")
	}

	s.cache.Save(record)
	return fileToResponse(record), nil
}

func (s *fileService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.FileRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if record == nil {
		return serverutils.NewNotFoundError("File not found")
	}

	if err := uow.FileRepository().Delete(ctx, id); err != nil {
		return serverutils.NewStoreWriteFailedError(err)
	}
	s.cache.Delete(id)

	s.publishActivity(ctx, events.TypeFileDeleted, map[string]interface{}{
		"file_id": id,
	})

	return nil
}

func (s *fileService) saveTemp(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmpPath := filepath.Join(s.uploadDir, fmt.Sprintf("upload-%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}

func (s *fileService) publishActivity(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.logger.Warn("file", "failed to publish activity event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func fileToResponse(record *entity.FileRecord) *dto.FileRecordResponse {
	return &dto.FileRecordResponse{
		Id:          record.Id,
		Name:        record.Name,
		Size:        record.Size,
		Type:        record.Type,
		Text:        record.Text,
		Metadata:    record.Metadata,
		UploadedAt:  record.UploadedAt,
		ProcessedAt: record.ProcessedAt,
	}
}
