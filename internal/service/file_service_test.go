package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"study-companion-be/internal/entity"
	"study-companion-be/internal/pkg/serverutils"
	"study-companion-be/internal/repository/memory"
	"study-companion-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newFileService(t *testing.T, factory *fakeFactory, publisher IPublisherService) (IFileService, *memory.FileRecordCache) {
	t.Helper()
	cache := memory.NewFileRecordCache()
	svc := NewFileService(factory, cache, publisher, nopLogger{}, t.TempDir())
	return svc, cache
}

// makeFileHeader builds a real multipart.FileHeader the same way fiber's
// ctx.FormFile does, by round-tripping a multipart form.
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	if len(files) != 1 {
		t.Fatalf("expected one file part, got %d", len(files))
	}
	return files[0]
}

func TestFileIngestRoundTrip(t *testing.T) {
	factory, uow := newFakeFactory()
	publisher := &capturingPublisher{}
	svc, cache := newFileService(t, factory, publisher)

	content := []byte("Meiosis halves the chromosome number.")
	fh := makeFileHeader(t, "notes.txt", "text/plain", content)

	resp, err := svc.Ingest(context.Background(), fh)
	assert.NoError(t, err)

	assert.Equal(t, "notes.txt", resp.Name)
	assert.Equal(t, int64(len(content)), resp.Size)
	assert.Equal(t, "text/plain", resp.Type)
	assert.Equal(t, string(content), resp.Text)
	assert.Equal(t, "notes.txt", resp.Metadata["title"])
	assert.False(t, resp.ProcessedAt.Before(resp.UploadedAt))

	// Persisted and cached.
	assert.Len(t, uow.fileRepo.files, 1)
	cached, found := cache.Get(resp.Id)
	assert.True(t, found)
	assert.Equal(t, resp.Text, cached.Text)

	assert.Equal(t, []string{events.TypeFileIngested}, publisher.types())
}

func TestFileIngestUnsupportedTypeWritesNothing(t *testing.T) {
	factory, uow := newFakeFactory()
	publisher := &capturingPublisher{}
	svc, _ := newFileService(t, factory, publisher)

	fh := makeFileHeader(t, "malware.exe", "application/octet-stream", []byte{0x4d, 0x5a})

	resp, err := svc.Ingest(context.Background(), fh)
	assert.Nil(t, resp)

	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, serverutils.KindUnsupportedFileType, appErr.Kind)
	assert.Equal(t, 400, appErr.Code)

	assert.Empty(t, uow.fileRepo.files)
	assert.Empty(t, publisher.types())
}

func TestFileIngestStoreFailure(t *testing.T) {
	factory, uow := newFakeFactory()
	svc, _ := newFileService(t, factory, &capturingPublisher{})
	uow.fileRepo.createErr = assert.AnError

	fh := makeFileHeader(t, "notes.txt", "text/plain", []byte("text"))

	resp, err := svc.Ingest(context.Background(), fh)
	assert.Nil(t, resp)

	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, serverutils.KindStoreWriteFailed, appErr.Kind)
}

func TestFileIngestRemovesTemporaryUpload(t *testing.T) {
	factory, _ := newFakeFactory()
	uploadDir := t.TempDir()
	svc := NewFileService(factory, memory.NewFileRecordCache(), &capturingPublisher{}, nopLogger{}, uploadDir)

	fh := makeFileHeader(t, "notes.txt", "text/plain", []byte("text"))
	_, err := svc.Ingest(context.Background(), fh)
	assert.NoError(t, err)

	entries, err := os.ReadDir(uploadDir)
	assert.NoError(t, err)
	for _, e := range entries {
		assert.Fail(t, "leftover upload", filepath.Join(uploadDir, e.Name()))
	}
}

func TestFileGetAllOrderedByUploadTime(t *testing.T) {
	factory, uow := newFakeFactory()
	svc, _ := newFileService(t, factory, &capturingPublisher{})

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		id := uuid.New()
		uow.fileRepo.files[id] = &entity.FileRecord{
			Id:         id,
			Name:       "f",
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	records, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i-1].UploadedAt.Before(records[i].UploadedAt))
	}
}

func TestFileShowServesFromCache(t *testing.T) {
	factory, uow := newFakeFactory()
	svc, cache := newFileService(t, factory, &capturingPublisher{})

	id := uuid.New()
	record := &entity.FileRecord{Id: id, Name: "notes.txt", Text: "cached text"}
	cache.Save(record)

	// Nothing in the store; a cache hit must still answer.
	resp, err := svc.Show(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "cached text", resp.Text)
	assert.Empty(t, uow.fileRepo.files)
}

func TestFileShowMissPopulatesCache(t *testing.T) {
	factory, uow := newFakeFactory()
	svc, cache := newFileService(t, factory, &capturingPublisher{})

	id := uuid.New()
	uow.fileRepo.files[id] = &entity.FileRecord{Id: id, Name: "notes.txt", Text: "stored text"}

	resp, err := svc.Show(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "stored text", resp.Text)

	cached, found := cache.Get(id)
	assert.True(t, found)
	assert.Equal(t, "stored text", cached.Text)
}

func TestFileShowNotFound(t *testing.T) {
	factory, _ := newFakeFactory()
	svc, _ := newFileService(t, factory, &capturingPublisher{})

	resp, err := svc.Show(context.Background(), uuid.New())
	assert.Nil(t, resp)
	assert.True(t, serverutils.IsNotFound(err))
}

func TestFileDeleteEvictsCache(t *testing.T) {
	factory, uow := newFakeFactory()
	publisher := &capturingPublisher{}
	svc, cache := newFileService(t, factory, publisher)

	id := uuid.New()
	record := &entity.FileRecord{Id: id, Name: "notes.txt"}
	uow.fileRepo.files[id] = record
	cache.Save(record)

	err := svc.Delete(context.Background(), id)
	assert.NoError(t, err)

	assert.Empty(t, uow.fileRepo.files)
	_, found := cache.Get(id)
	assert.False(t, found)
	assert.Equal(t, []string{events.TypeFileDeleted}, publisher.types())
}

func TestFileDeleteNotFound(t *testing.T) {
	factory, _ := newFakeFactory()
	svc, _ := newFileService(t, factory, &capturingPublisher{})

	err := svc.Delete(context.Background(), uuid.New())
	assert.True(t, serverutils.IsNotFound(err))
}
