package resume

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/parsing"
)

// User-facing messages.
const (
	MsgFileRequired      = "Resume file required!"
	MsgInvalidFileType   = "Invalid file type. Please upload a PNG, JPG, or WEBP image."
	MsgInsufficientText  = "Could not extract sufficient text from resume image"
	MsgProcessingFailure = "Failed to process resume"
)

// InputValidationError is a bad upload; nothing external was called.
type InputValidationError struct {
	Message string
}

func (e *InputValidationError) Error() string {
	return e.Message
}

// InsufficientTextError means OCR found too little text to be a resume.
type InsufficientTextError struct {
	Length int
	Min    int
}

func (e *InsufficientTextError) Error() string {
	return fmt.Sprintf("extracted text too short: %d characters, need %d", e.Length, e.Min)
}

// UpstreamServiceError wraps a failing OCR or model call.
type UpstreamServiceError struct {
	Service string
	Cause   error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Cause)
}

func (e *UpstreamServiceError) Unwrap() error {
	return e.Cause
}

// ExtractionFormatError is model output that could not be parsed.
type ExtractionFormatError = parsing.ParseError
