package entity

import (
	"time"

	"github.com/google/uuid"
)

type FileRecord struct {
	Id          uuid.UUID
	Name        string
	Size        int64
	Type        string
	Text        string
	Metadata    map[string]interface{}
	UploadedAt  time.Time
	ProcessedAt time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
