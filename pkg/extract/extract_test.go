package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		file string
		want bool
	}{
		{name: "pdf", file: "notes.pdf", want: true},
		{name: "txt", file: "notes.txt", want: true},
		{name: "doc", file: "notes.doc", want: true},
		{name: "docx", file: "notes.docx", want: true},
		{name: "uppercase extension", file: "NOTES.PDF", want: true},
		{name: "executable", file: "virus.exe", want: false},
		{name: "image", file: "diagram.png", want: false},
		{name: "no extension", file: "README", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.file))
		})
	}
}

func TestFromFileText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload-1-notes.txt")
	content := "Photosynthesis converts light energy into chemical energy."
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := FromFile(path, "notes.txt", int64(len(content)))
	assert.NoError(t, err)
	assert.Equal(t, content, result.Text)
	assert.Equal(t, "notes.txt", result.Metadata["title"])
	assert.Equal(t, int64(len(content)), result.Metadata["size"])
	assert.Equal(t, "utf8", result.Metadata["encoding"])
}

func TestFromFileDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload-1-summary.docx")
	content := "Chapter one covers cell division."
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := FromFile(path, "summary.docx", int64(len(content)))
	assert.NoError(t, err)
	assert.Equal(t, content, result.Text)
	assert.Equal(t, "document", result.Metadata["type"])
}

func TestFromFileUnsupported(t *testing.T) {
	result, err := FromFile("/tmp/whatever", "archive.zip", 10)
	assert.Nil(t, result)

	var unsupported *UnsupportedTypeError
	assert.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".zip", unsupported.Extension)
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		check  func(t *testing.T, got string)
	}{
		{
			name:   "short text returned whole",
			text:   "Short note.",
			maxLen: 100,
			check: func(t *testing.T, got string) {
				assert.Equal(t, "Short note.", got)
			},
		},
		{
			name:   "cuts on sentence boundary",
			text:   "First sentence here. Second sentence follows. Third one is dropped entirely by the limit.",
			maxLen: 50,
			check: func(t *testing.T, got string) {
				assert.True(t, len(got) <= 50, "len=%d", len(got))
				assert.True(t, strings.HasSuffix(got, "."))
				assert.Contains(t, got, "First sentence here")
			},
		},
		{
			name:   "single run longer than limit hard cuts",
			text:   strings.Repeat("a", 300),
			maxLen: 100,
			check: func(t *testing.T, got string) {
				assert.Len(t, got, 100)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.text, tt.maxLen)
			assert.LessOrEqual(t, len(got), tt.maxLen)
			tt.check(t, got)
		})
	}
}
