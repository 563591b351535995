package filler

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/benjaminschreck/go-docxfill/pkg/filler/archive"
)

// Kind classifies a failure for callers that only need the broad category
type Kind int

const (
	KindUnknown Kind = iota
	KindIo
	KindArchive
	KindValidation
	KindProcessing
)

func (k Kind) String() string {
	switch k {
	case KindIo:
		return "io"
	case KindArchive:
		return "archive"
	case KindValidation:
		return "validation"
	case KindProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// ValidationCode identifies a validation failure. The value doubles as the message id.
type ValidationCode string

const (
	CodeEmptyTokenSet       ValidationCode = "valid-no-tokens"
	CodeDuplicateToken      ValidationCode = "valid-token-duplicity"
	CodeEmptyValueSet       ValidationCode = "valid-missing-input"
	CodeCountMismatch       ValidationCode = "valid-count-mismatch"
	CodeBadExtension        ValidationCode = "valid-no-docx-suffix"
	CodeDuplicateOutputName ValidationCode = "valid-same-output-filename"
	CodeEmptySeparator      ValidationCode = "valid-empty-separator"
)

// ProcessingCode identifies a processing failure. The value doubles as the message id.
type ProcessingCode string

const (
	CodeNoPrimaryEntry   ProcessingCode = "docx-filler-fail-load"
	CodeNoTemplateLoaded ProcessingCode = "ui-docx-no-template"
	CodeTargetExists     ProcessingCode = "docx-filler-fail-overwrite"
)

// Message ids for document errors
const (
	MessageIoFailure      = "docx-filler-fail-io"
	MessageArchiveFailure = "docx-filler-fail-archive"
	MessageLineMismatch   = "valid-line-mismatch"
)

// Localizable is implemented by every error in this package.
// MessageArgs values are strings, ints or errors; error values are expected
// to be localized recursively.
type Localizable interface {
	error
	MessageID() string
	MessageArgs() map[string]any
}

// ValidationError reports inconsistent tokens, values or output names
type ValidationError struct {
	Code   ValidationCode
	Token  string
	Path   string
	Tokens int
	Values int
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeEmptyTokenSet:
		return "validation error: no tokens found"
	case CodeDuplicateToken:
		return fmt.Sprintf("validation error: duplicate token %s", e.Token)
	case CodeEmptyValueSet:
		return "validation error: no input values"
	case CodeCountMismatch:
		return fmt.Sprintf("validation error: %d tokens but %d values", e.Tokens, e.Values)
	case CodeBadExtension:
		return fmt.Sprintf("validation error: output file %q must end with %s", e.Path, Extension)
	case CodeDuplicateOutputName:
		return fmt.Sprintf("validation error: output file %q would be generated more than once", e.Path)
	case CodeEmptySeparator:
		return "validation error: value separator is empty"
	}
	return fmt.Sprintf("validation error: %s", e.Code)
}

func (e *ValidationError) MessageID() string {
	return string(e.Code)
}

func (e *ValidationError) MessageArgs() map[string]any {
	switch e.Code {
	case CodeDuplicateToken:
		return map[string]any{"token": e.Token}
	case CodeCountMismatch:
		return map[string]any{"tokens": e.Tokens, "values": e.Values}
	case CodeBadExtension, CodeDuplicateOutputName:
		return map[string]any{"filename": e.Path}
	}
	return nil
}

// LineError wraps a validation failure found on one line of batch input
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func (e *LineError) MessageID() string {
	return MessageLineMismatch
}

func (e *LineError) MessageArgs() map[string]any {
	return map[string]any{"line": e.Line, "details": e.Err}
}

// ProcessingError reports a template that cannot be processed in its current state
type ProcessingError struct {
	Code ProcessingCode
	Path string
}

func (e *ProcessingError) Error() string {
	switch e.Code {
	case CodeNoPrimaryEntry:
		if e.Path != "" {
			return fmt.Sprintf("processing error: %s has no %s", e.Path, PrimaryEntry)
		}
		return fmt.Sprintf("processing error: template has no %s", PrimaryEntry)
	case CodeNoTemplateLoaded:
		return "processing error: no template loaded"
	case CodeTargetExists:
		return fmt.Sprintf("processing error: refusing to overwrite existing file %q", e.Path)
	}
	return fmt.Sprintf("processing error: %s", e.Code)
}

func (e *ProcessingError) MessageID() string {
	return string(e.Code)
}

func (e *ProcessingError) MessageArgs() map[string]any {
	if e.Path == "" {
		return nil
	}
	return map[string]any{"filename": e.Path}
}

// DocumentError represents a filesystem or container failure while reading or writing a document
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	}
	return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Kind tells filesystem failures apart from malformed containers
func (e *DocumentError) Kind() Kind {
	var fe *archive.FormatError
	if errors.As(e.Cause, &fe) {
		return KindArchive
	}
	return KindIo
}

func (e *DocumentError) MessageID() string {
	if e.Kind() == KindArchive {
		return MessageArchiveFailure
	}
	return MessageIoFailure
}

func (e *DocumentError) MessageArgs() map[string]any {
	return map[string]any{"filename": e.Path, "details": e.Cause.Error()}
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// KindOf classifies err. A LineError is a validation failure.
func KindOf(err error) Kind {
	var (
		ve *ValidationError
		le *LineError
		pe *ProcessingError
		de *DocumentError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &le), errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &pe):
		return KindProcessing
	case errors.As(err, &de):
		return de.Kind()
	}
	var fe *archive.FormatError
	if errors.As(err, &fe) {
		return KindArchive
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return KindIo
	}
	return KindUnknown
}

// IsValidationError checks if an error is a validation failure, line-wrapped or not
func IsValidationError(err error) bool {
	return KindOf(err) == KindValidation
}

// IsProcessingError checks if an error is a processing failure
func IsProcessingError(err error) bool {
	return KindOf(err) == KindProcessing
}

// HasCode reports whether err is, or wraps, a validation or processing error with the given code
func HasCode[C ValidationCode | ProcessingCode](err error, code C) bool {
	switch c := any(code).(type) {
	case ValidationCode:
		var ve *ValidationError
		return errors.As(err, &ve) && ve.Code == c
	case ProcessingCode:
		var pe *ProcessingError
		return errors.As(err, &pe) && pe.Code == c
	}
	return false
}
