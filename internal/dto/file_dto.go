package dto

import (
	"time"

	"github.com/google/uuid"
)

type FileRecordResponse struct {
	Id          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Size        int64                  `json:"size"`
	Type        string                 `json:"type"`
	Text        string                 `json:"text"`
	Metadata    map[string]interface{} `json:"metadata"`
	UploadedAt  time.Time              `json:"uploadedAt"`
	ProcessedAt time.Time              `json:"processedAt"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}
