package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/jobboard/internal/profile"
	"github.com/jonathan/jobboard/internal/resume"
)

// Client-facing messages not owned by the resume package.
const (
	MsgProfileDataRequired  = "Profile data is required"
	MsgInvalidMergeOption   = "Invalid merge option. Use 'replace' or 'merge'"
	MsgInvalidBody          = "Invalid request body"
	MsgUserNotFound         = "User not found"
	MsgSkillExists          = "Skill already exists"
	MsgSkillNotFound        = "Skill not found"
	MsgInvalidProfileFields = "Name cannot be empty and fields must be within length limits"
	MsgFileTooLarge         = "Resume file is too large"
	MsgProfileConflict      = "Profile was changed by another request. Please retry."
	MsgProfileFailure       = "Failed to update profile"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUploadTooLarge is a multipart body over the configured cap.
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		inputErr    *resume.InputValidationError
		textErr     *resume.InsufficientTextError
		validErr    *ErrValidation
		tooLarge    *ErrUploadTooLarge
		notFound    *profile.NotFoundError
		skillExists *profile.SkillExistsError
		skillGone   *profile.SkillNotFoundError
		badEntry    *profile.InvalidEntryError
		entryExists *profile.EntryExistsError
		entryGone   *profile.EntryNotFoundError
	)
	switch {
	case errors.As(err, &inputErr), errors.As(err, &textErr), errors.As(err, &validErr), errors.As(err, &skillExists),
		errors.As(err, &badEntry), errors.As(err, &entryExists):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notFound), errors.As(err, &skillGone), errors.As(err, &entryGone):
		return http.StatusNotFound
	case errors.Is(err, profile.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message shown to the caller. Server-side failures
// get fallback so upstream details never leak.
func PublicMessage(err error, fallback string) string {
	var (
		inputErr *resume.InputValidationError
		textErr  *resume.InsufficientTextError
		validErr *ErrValidation
		badEntry *profile.InvalidEntryError
	)
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Message
	case errors.As(err, &badEntry):
		return badEntry.Message()
	case errors.As(err, &textErr):
		return resume.MsgInsufficientText
	case errors.As(err, &validErr):
		return validErr.Message
	}

	var (
		tooLarge    *ErrUploadTooLarge
		notFound    *profile.NotFoundError
		skillExists *profile.SkillExistsError
		skillGone   *profile.SkillNotFoundError
		entryExists *profile.EntryExistsError
		entryGone   *profile.EntryNotFoundError
	)
	switch {
	case errors.As(err, &tooLarge):
		return MsgFileTooLarge
	case errors.As(err, &notFound):
		return MsgUserNotFound
	case errors.As(err, &skillExists):
		return MsgSkillExists
	case errors.As(err, &skillGone):
		return MsgSkillNotFound
	case errors.As(err, &entryExists):
		return entryExists.Section.Label() + " already exists"
	case errors.As(err, &entryGone):
		return entryGone.Section.Label() + " not found"
	case errors.Is(err, profile.ErrVersionConflict):
		return MsgProfileConflict
	}
	return fallback
}
