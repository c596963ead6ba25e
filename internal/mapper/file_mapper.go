package mapper

import (
	"time"

	"study-companion-be/internal/entity"
	"study-companion-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) FileRecordToEntity(f *model.FileRecord) *entity.FileRecord {
	if f == nil {
		return nil
	}

	var deletedAt *time.Time
	if f.DeletedAt.Valid {
		t := f.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.FileRecord{
		Id:          f.Id,
		Name:        f.Name,
		Size:        f.Size,
		Type:        f.Type,
		Text:        f.Text,
		Metadata:    map[string]interface{}(f.Metadata),
		UploadedAt:  f.UploadedAt,
		ProcessedAt: f.ProcessedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   f.DeletedAt.Valid,
	}
}

func (m *FileMapper) FileRecordToModel(f *entity.FileRecord) *model.FileRecord {
	if f == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if f.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *f.DeletedAt, Valid: true}
	} else if f.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.FileRecord{
		Id:          f.Id,
		Name:        f.Name,
		Size:        f.Size,
		Type:        f.Type,
		Text:        f.Text,
		Metadata:    datatypes.JSONMap(f.Metadata),
		UploadedAt:  f.UploadedAt,
		ProcessedAt: f.ProcessedAt,
		DeletedAt:   deletedAt,
	}
}
