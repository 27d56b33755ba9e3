package smallize

import (
	"errors"
	"fmt"
)

// Error types for smallize operations
var (
	// ErrNotFound is returned when the source path does not exist
	ErrNotFound = &SmallizeError{Code: "NOT_FOUND", Message: "file not found"}

	// ErrNotAFile is returned when the source path is a directory or special file
	ErrNotAFile = &SmallizeError{Code: "NOT_A_FILE", Message: "not a file"}

	// ErrInvalidSize is returned when the segment size is not a positive number
	ErrInvalidSize = &SmallizeError{Code: "INVALID_SIZE", Message: "segment size must be a positive number"}

	// ErrNoSplitNeeded is returned when the file already fits in one segment.
	// It is informational, callers should treat it as success.
	ErrNoSplitNeeded = &SmallizeError{Code: "NO_SPLIT_NEEDED", Message: "file size is smaller than the segment size, no need to split"}

	// ErrReadFailed is returned when the source file cannot be read
	ErrReadFailed = &SmallizeError{Code: "READ_FAILED", Message: "failed to read source file"}

	// ErrWriteFailed is returned when the output directory or a part file cannot be written
	ErrWriteFailed = &SmallizeError{Code: "WRITE_FAILED", Message: "failed to write part"}
)

// SmallizeError represents a structured error in smallize operations
type SmallizeError struct {
	Code    string                 // Error code for programmatic handling
	Message string                 // Human-readable error message
	Cause   error                  // Underlying error, if any
	Details map[string]interface{} // Additional context
}

// Error implements the error interface
func (e *SmallizeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("[%s] %s (details: %v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *SmallizeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a SmallizeError with the same code, so
// errors.Is(err, ErrNotFound) holds for derived errors.
func (e *SmallizeError) Is(target error) bool {
	t, ok := target.(*SmallizeError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause adds a cause to the error
func (e *SmallizeError) WithCause(cause error) *SmallizeError {
	return &SmallizeError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
		Details: e.Details,
	}
}

// WithDetail adds a detail key-value pair to the error
func (e *SmallizeError) WithDetail(key string, value interface{}) *SmallizeError {
	details := make(map[string]interface{})
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &SmallizeError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Details: details,
	}
}

// WithMessage overrides the error message
func (e *SmallizeError) WithMessage(message string) *SmallizeError {
	return &SmallizeError{
		Code:    e.Code,
		Message: message,
		Cause:   e.Cause,
		Details: e.Details,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(path string, cause error) error {
	return ErrNotFound.
		WithDetail("path", path).
		WithCause(cause)
}

// NewNotAFileError creates a not a file error
func NewNotAFileError(path string) error {
	return ErrNotAFile.WithDetail("path", path)
}

// NewInvalidSizeError creates an invalid size error for the raw user input
func NewInvalidSizeError(input string) error {
	return ErrInvalidSize.WithDetail("input", input)
}

// NewNoSplitNeededError creates a no split needed notice
func NewNoSplitNeededError(path string, fileSize, segmentSize int64) error {
	return ErrNoSplitNeeded.
		WithDetail("path", path).
		WithDetail("fileSize", fileSize).
		WithDetail("segmentSize", segmentSize)
}

// NewReadError creates a read error
func NewReadError(path string, cause error) error {
	return ErrReadFailed.
		WithDetail("path", path).
		WithCause(cause)
}

// NewWriteError creates a write error
func NewWriteError(path string, cause error) error {
	return ErrWriteFailed.
		WithDetail("path", path).
		WithCause(cause)
}

// GetErrorCode extracts the error code from a SmallizeError
func GetErrorCode(err error) string {
	var smallizeErr *SmallizeError
	if errors.As(err, &smallizeErr) {
		return smallizeErr.Code
	}
	return ""
}

// IsNoSplitNeeded reports whether err is the informational no-op signal.
func IsNoSplitNeeded(err error) bool {
	return errors.Is(err, ErrNoSplitNeeded)
}

// Process exit codes, one per failure kind.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalidSize = 2
	ExitNotFound    = 3
	ExitNotAFile    = 4
	ExitIO          = 5
)

// ExitCode maps err to the process exit code for its failure kind.
// NoSplitNeeded is a success.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetErrorCode(err) {
	case ErrNoSplitNeeded.Code:
		return ExitOK
	case ErrInvalidSize.Code:
		return ExitInvalidSize
	case ErrNotFound.Code:
		return ExitNotFound
	case ErrNotAFile.Code:
		return ExitNotAFile
	case ErrReadFailed.Code, ErrWriteFailed.Code:
		return ExitIO
	default:
		return ExitFailure
	}
}
