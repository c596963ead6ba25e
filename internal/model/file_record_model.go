package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FileRecord struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string            `gorm:"type:text;not null"`
	Size        int64             `gorm:"not null"`
	Type        string            `gorm:"type:varchar(255);not null"` // mime type as reported by the client
	Text        string            `gorm:"type:text;not null"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	UploadedAt  time.Time         `gorm:"not null;index"`
	ProcessedAt time.Time         `gorm:"not null"`
	DeletedAt   gorm.DeletedAt    `gorm:"index"`
}

func (FileRecord) TableName() string {
	return "file_records"
}
