package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind classifies failures for HTTP status mapping.
type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindNotFound            ErrorKind = "not_found"
	KindUnsupportedFileType ErrorKind = "unsupported_file_type"
	KindCompletionFailed    ErrorKind = "completion_failed"
	KindStoreWriteFailed    ErrorKind = "store_write_failed"
	KindUnknown             ErrorKind = "unknown"
)

// AppError is the only error type the handler boundary understands; everything
// else maps to 500.
type AppError struct {
	Kind    ErrorKind
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Code: fiber.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: fiber.StatusNotFound, Message: message}
}

func NewUnsupportedFileTypeError(ext string) *AppError {
	return &AppError{
		Kind:    KindUnsupportedFileType,
		Code:    fiber.StatusBadRequest,
		Message: fmt.Sprintf("Invalid file type %q. Only PDF, TXT, DOC, and DOCX files are allowed.", ext),
	}
}

func NewCompletionFailedError(err error) *AppError {
	return &AppError{
		Kind:    KindCompletionFailed,
		Code:    fiber.StatusInternalServerError,
		Message: "Failed to generate AI response",
		Err:     err,
	}
}

func NewStoreWriteFailedError(err error) *AppError {
	return &AppError{
		Kind:    KindStoreWriteFailed,
		Code:    fiber.StatusInternalServerError,
		Message: "Failed to persist data",
		Err:     err,
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindNotFound
}
