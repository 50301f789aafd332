package profile

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrVersionConflict is returned by Store.SaveProfile when the stored
// version no longer matches the one that was read.
var ErrVersionConflict = errors.New("profile was modified concurrently")

// NotFoundError means the target profile does not exist.
type NotFoundError struct {
	UserID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile %s not found", e.UserID)
}

// SkillExistsError rejects a skill whose name is already on the profile.
type SkillExistsError struct {
	Name string
}

func (e *SkillExistsError) Error() string {
	return fmt.Sprintf("skill %q already exists", e.Name)
}

// SkillNotFoundError means no skill with the given id is on the profile.
type SkillNotFoundError struct {
	SkillID string
}

func (e *SkillNotFoundError) Error() string {
	return fmt.Sprintf("skill %s not found", e.SkillID)
}

// InvalidEntryError rejects an entry that lacks its identifying fields.
type InvalidEntryError struct {
	Section Section
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("%s entry is missing required fields", e.Section)
}

// Message names the fields the section requires.
func (e *InvalidEntryError) Message() string {
	switch e.Section {
	case SectionExperience:
		return "Job title and company are required"
	case SectionEducation:
		return "Degree and institution are required"
	case SectionProjects:
		return "Project title and description are required"
	}
	return "Invalid entry"
}

// EntryExistsError rejects an entry whose key is already in the section.
type EntryExistsError struct {
	Section Section
}

func (e *EntryExistsError) Error() string {
	return fmt.Sprintf("%s entry already exists", e.Section)
}

// EntryNotFoundError means no entry with the given id is in the section.
type EntryNotFoundError struct {
	Section Section
	EntryID string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("%s entry %s not found", e.Section, e.EntryID)
}
