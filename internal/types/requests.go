package types

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SectionOptions overrides the merge policy for individual sections.
type SectionOptions struct {
	Experience string `json:"experience,omitempty" validate:"omitempty,oneof=replace merge"`
	Education  string `json:"education,omitempty" validate:"omitempty,oneof=replace merge"`
	Projects   string `json:"projects,omitempty" validate:"omitempty,oneof=replace merge"`
	Skills     string `json:"skills,omitempty" validate:"omitempty,oneof=replace merge"`
}

// UpdateProfileRequest applies previously extracted data to the caller's profile.
type UpdateProfileRequest struct {
	ProfileData    *ExtractedProfileData `json:"profileData" validate:"required"`
	MergeOption    string                `json:"mergeOption,omitempty" validate:"omitempty,oneof=replace merge"`
	SectionOptions *SectionOptions       `json:"sectionOptions,omitempty"`
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	return validate.Struct(r)
}

// Policy returns the request-wide policy, defaulting to replace.
func (r *UpdateProfileRequest) Policy() MergePolicy {
	if r.MergeOption == "" {
		return PolicyReplace
	}
	return MergePolicy(r.MergeOption)
}

// AddSkillRequest adds one skill to the caller's profile.
type AddSkillRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

// Validate validates the AddSkillRequest using the validator.
func (r *AddSkillRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateInfoRequest edits the caller's personal details. Omitted fields are
// left unchanged; an empty string clears phone or bio.
type UpdateInfoRequest struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone    *string   `json:"phone,omitempty" validate:"omitempty,max=40"`
	Bio      *string   `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location *Location `json:"location,omitempty"`
}

// ErrEmptyName rejects an update that would blank the profile name.
var ErrEmptyName = errors.New("name cannot be empty")

// Validate validates the UpdateInfoRequest using the validator.
func (r *UpdateInfoRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return ErrEmptyName
	}
	return validate.Struct(r)
}
