package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Result holds extracted plain text plus extractor-specific metadata.
type Result struct {
	Text     string
	Metadata map[string]interface{}
}

// UnsupportedTypeError is returned for extensions no extractor handles.
type UnsupportedTypeError struct {
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Extension)
}

// Supported reports whether an extractor exists for the file name's extension.
func Supported(originalName string) bool {
	switch strings.ToLower(filepath.Ext(originalName)) {
	case ".pdf", ".txt", ".doc", ".docx":
		return true
	}
	return false
}

// FromFile dispatches on the original file name's extension and extracts
// plain text from the binary at path.
func FromFile(path, originalName string, size int64) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".pdf":
		return fromPDF(path, originalName)
	case ".txt":
		return fromText(path, originalName, size)
	case ".doc", ".docx":
		// Treated as text for now; a dedicated converter would go here.
		return fromDoc(path, originalName, size)
	default:
		return nil, &UnsupportedTypeError{Extension: ext}
	}
}

func fromPDF(path, originalName string) (*Result, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdf processing failed: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("pdf processing failed: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return nil, fmt.Errorf("pdf processing failed: %w", err)
	}

	return &Result{
		Text: buf.String(),
		Metadata: map[string]interface{}{
			"title": originalName,
			"pages": reader.NumPage(),
		},
	}, nil
}

func fromText(path, originalName string, size int64) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text processing failed: %w", err)
	}

	return &Result{
		Text: string(raw),
		Metadata: map[string]interface{}{
			"title":    originalName,
			"size":     size,
			"encoding": "utf8",
		},
	}, nil
}

func fromDoc(path, originalName string, size int64) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document processing failed: %w", err)
	}

	return &Result{
		Text: string(raw),
		Metadata: map[string]interface{}{
			"title": originalName,
			"size":  size,
			"type":  "document",
		},
	}, nil
}
