package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobboard/internal/parsing"
	"github.com/jonathan/jobboard/internal/profile"
	"github.com/jonathan/jobboard/internal/resume"
	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/types"
)

// uploadField is the multipart field carrying the resume image.
const uploadField = "resume"

// multipartOverhead allows for boundaries and headers around the file.
const multipartOverhead = 1 << 20

// handleProcessResume extracts application autofill data from a resume image.
func (s *Server) handleProcessResume(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.failure(w, r, err, resume.MsgProcessingFailure)
		return
	}

	result, err := s.pipeline.ProcessApplication(r.Context(), up)
	if err != nil {
		s.failure(w, r, err, resume.MsgProcessingFailure)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "Resume processed successfully",
		"data":          result.Data,
		"extractedText": result.ExtractedText,
	})
}

// handleProcessProfile extracts structured profile data from a resume image.
// Nothing is persisted; the caller reviews the data and submits it to
// update-profile.
func (s *Server) handleProcessProfile(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.failure(w, r, err, resume.MsgProcessingFailure)
		return
	}

	result, err := s.pipeline.ProcessProfile(r.Context(), up)
	if err != nil {
		s.failure(w, r, err, resume.MsgProcessingFailure)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "Resume processed successfully for profile",
		"data":          result.Data,
		"extractedText": result.ExtractedText,
	})
}

// updateProfileBody is decoded loosely so client-supplied profile data goes
// through the same sanitizer as model output.
type updateProfileBody struct {
	ProfileData    map[string]any        `json:"profileData"`
	MergeOption    string                `json:"mergeOption"`
	SectionOptions *types.SectionOptions `json:"sectionOptions"`
}

// handleUpdateProfile reconciles extracted data into the caller's profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var body updateProfileBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.failure(w, r, &ErrValidation{Field: "body", Message: MsgInvalidBody}, MsgProfileFailure)
		return
	}

	req := &types.UpdateProfileRequest{
		MergeOption:    body.MergeOption,
		SectionOptions: body.SectionOptions,
	}
	if body.ProfileData != nil {
		req.ProfileData = parsing.SanitizeProfile(body.ProfileData)
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, updateValidationError(err), MsgProfileFailure)
		return
	}

	user, err := s.profiles.ApplyExtraction(r.Context(), userID, req.ProfileData, profile.PoliciesFor(req))
	if err != nil {
		s.failure(w, r, err, MsgProfileFailure)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Profile updated successfully with resume data",
		"user":    user,
	})
}

// updateValidationError turns validator output into a caller-facing error.
func updateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if verrs[0].Field() == "ProfileData" {
			return &ErrValidation{Field: "profileData", Message: MsgProfileDataRequired}
		}
		return &ErrValidation{Field: verrs[0].Field(), Message: MsgInvalidMergeOption}
	}
	return &ErrValidation{Field: "body", Message: MsgInvalidBody}
}

// readUpload pulls the resume file out of a multipart request.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*resume.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+multipartOverhead)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrUploadTooLarge{Limit: s.maxUpload}
		}
		return nil, &resume.InputValidationError{Message: resume.MsgFileRequired}
	}
	defer file.Close()

	if header.Size > s.maxUpload {
		return nil, &ErrUploadTooLarge{Limit: s.maxUpload}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &resume.InputValidationError{Message: resume.MsgFileRequired}
	}

	return &resume.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
