package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobboard/internal/parsing"
	"github.com/jonathan/jobboard/internal/profile"
	"github.com/jonathan/jobboard/internal/resume"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "profileData", Message: MsgProfileDataRequired}
	assert.Contains(t, err.Error(), "profileData")
	assert.Contains(t, err.Error(), MsgProfileDataRequired)
}

func TestHTTPStatusAndPublicMessage(t *testing.T) {
	const fallback = "opaque"

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"input validation", &resume.InputValidationError{Message: resume.MsgInvalidFileType}, http.StatusBadRequest, resume.MsgInvalidFileType},
		{"insufficient text", &resume.InsufficientTextError{Length: 3, Min: 50}, http.StatusBadRequest, resume.MsgInsufficientText},
		{"request validation", &ErrValidation{Field: "x", Message: "bad x"}, http.StatusBadRequest, "bad x"},
		{"skill exists", &profile.SkillExistsError{Name: "Go"}, http.StatusBadRequest, MsgSkillExists},
		{"too large", &ErrUploadTooLarge{Limit: 10}, http.StatusRequestEntityTooLarge, MsgFileTooLarge},
		{"profile missing", &profile.NotFoundError{UserID: uuid.New()}, http.StatusNotFound, MsgUserNotFound},
		{"wrapped profile missing", fmt.Errorf("update: %w", &profile.NotFoundError{}), http.StatusNotFound, MsgUserNotFound},
		{"skill missing", &profile.SkillNotFoundError{SkillID: "x"}, http.StatusNotFound, MsgSkillNotFound},
		{"invalid entry", &profile.InvalidEntryError{Section: profile.SectionEducation}, http.StatusBadRequest, "Degree and institution are required"},
		{"entry exists", &profile.EntryExistsError{Section: profile.SectionProjects}, http.StatusBadRequest, "Project already exists"},
		{"entry missing", &profile.EntryNotFoundError{Section: profile.SectionExperience, EntryID: "e9"}, http.StatusNotFound, "Experience not found"},
		{"version conflict", profile.ErrVersionConflict, http.StatusConflict, MsgProfileConflict},
		{"format error", &parsing.ParseError{Message: "no JSON object found"}, http.StatusInternalServerError, fallback},
		{"upstream error", &resume.UpstreamServiceError{Service: "ocr", Cause: errors.New("boom")}, http.StatusInternalServerError, fallback},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, HTTPStatus(tt.err))
			assert.Equal(t, tt.wantMessage, PublicMessage(tt.err, fallback))
		})
	}
}
