package memory

import (
	"time"

	"study-companion-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// FileRecordCache keeps recently read file records in memory. Records are
// immutable after ingestion, so entries only need invalidation on delete.
type FileRecordCache struct {
	cache *cache.Cache
}

func NewFileRecordCache() *FileRecordCache {
	// Default expiration 30 minutes, purge sweep every 10 minutes.
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &FileRecordCache{
		cache: c,
	}
}

func (r *FileRecordCache) Save(file *entity.FileRecord) {
	r.cache.Set(file.Id.String(), file, cache.DefaultExpiration)
}

func (r *FileRecordCache) Get(id uuid.UUID) (*entity.FileRecord, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.FileRecord), true
	}
	return nil, false
}

func (r *FileRecordCache) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}
