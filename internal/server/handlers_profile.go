package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/jobboard/internal/profile"
	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/types"
)

// handleGetProfile returns the caller's profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	user, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		s.failure(w, r, err, MsgProfileFailure)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

// handleAddSkill adds one skill to the caller's profile.
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var req types.AddSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, r, &ErrValidation{Field: "body", Message: MsgInvalidBody}, MsgProfileFailure)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		s.failure(w, r, &ErrValidation{Field: "name", Message: "Skill name is required"}, MsgProfileFailure)
		return
	}

	user, err := s.profiles.AddSkill(r.Context(), userID, &req)
	if err != nil {
		s.failure(w, r, err, MsgProfileFailure)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Skill added successfully",
		"user":    user,
	})
}

// handleRemoveSkill deletes one skill by id.
func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	user, err := s.profiles.RemoveSkill(r.Context(), userID, r.PathValue("skill_id"))
	if err != nil {
		s.failure(w, r, err, MsgProfileFailure)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Skill removed successfully",
		"user":    user,
	})
}

// handleUpdateInfo edits the caller's personal details.
func (s *Server) handleUpdateInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
		return
	}

	var req types.UpdateInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, r, &ErrValidation{Field: "body", Message: MsgInvalidBody}, MsgProfileFailure)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, &ErrValidation{Field: "profile", Message: MsgInvalidProfileFields}, MsgProfileFailure)
		return
	}

	user, err := s.profiles.UpdateInfo(r.Context(), userID, &req)
	if err != nil {
		s.failure(w, r, err, MsgProfileFailure)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// handleAddEntry returns the handler that appends one entry to section.
func (s *Server) handleAddEntry(section profile.Section) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.GetUserID(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
			return
		}

		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			s.failure(w, r, &ErrValidation{Field: "body", Message: MsgInvalidBody}, MsgProfileFailure)
			return
		}

		user, err := s.profiles.AddEntry(r.Context(), userID, section, raw)
		if err != nil {
			s.failure(w, r, err, MsgProfileFailure)
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success": true,
			"message": section.Label() + " added successfully",
			"user":    user,
		})
	}
}

// handleRemoveEntry returns the handler that deletes one entry of section by id.
func (s *Server) handleRemoveEntry(section profile.Section) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.GetUserID(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, middleware.MsgUnauthorized)
			return
		}

		user, err := s.profiles.RemoveEntry(r.Context(), userID, section, r.PathValue("entry_id"))
		if err != nil {
			s.failure(w, r, err, MsgProfileFailure)
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success": true,
			"message": section.Label() + " removed successfully",
			"user":    user,
		})
	}
}
