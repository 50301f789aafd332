package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/parsing"
	"github.com/jonathan/jobboard/internal/types"
)

// Section names an editable entry collection of a profile.
type Section string

// Entry sections. Skills have their own endpoints.
const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionProjects   Section = "projects"
)

// Sections lists the entry sections in profile order.
var Sections = []Section{SectionExperience, SectionEducation, SectionProjects}

// Label is the singular display name used in messages.
func (s Section) Label() string {
	switch s {
	case SectionExperience:
		return "Experience"
	case SectionEducation:
		return "Education"
	case SectionProjects:
		return "Project"
	}
	return string(s)
}

// AddEntry parses raw into an entry of section and appends it. An entry
// whose key (title and company, degree and institution, project title) is
// already present is rejected.
func (s *Service) AddEntry(ctx context.Context, userID uuid.UUID, section Section, raw map[string]any) (*types.UserProfile, error) {
	var add func(p *types.UserProfile) bool

	switch section {
	case SectionExperience:
		e, ok := parsing.ParseExperience(raw)
		if !ok {
			return nil, &InvalidEntryError{Section: section}
		}
		add = func(p *types.UserProfile) (added bool) {
			p.Experience, added = appendEntry(p.Experience, e, experienceKey)
			return added
		}
	case SectionEducation:
		e, ok := parsing.ParseEducation(raw)
		if !ok {
			return nil, &InvalidEntryError{Section: section}
		}
		add = func(p *types.UserProfile) (added bool) {
			p.Education, added = appendEntry(p.Education, e, educationKey)
			return added
		}
	case SectionProjects:
		pr, ok := parsing.ParseProject(raw)
		if !ok {
			return nil, &InvalidEntryError{Section: section}
		}
		add = func(p *types.UserProfile) (added bool) {
			p.Projects, added = appendEntry(p.Projects, pr, projectKey)
			return added
		}
	default:
		return nil, fmt.Errorf("unknown profile section %q", section)
	}

	return s.update(ctx, userID, func(p *types.UserProfile) (*types.UserProfile, error) {
		next := p.Clone()
		if !add(next) {
			return nil, &EntryExistsError{Section: section}
		}
		return next, nil
	})
}

// RemoveEntry deletes the entry with the given id from section.
func (s *Service) RemoveEntry(ctx context.Context, userID uuid.UUID, section Section, entryID string) (*types.UserProfile, error) {
	return s.update(ctx, userID, func(p *types.UserProfile) (*types.UserProfile, error) {
		next := p.Clone()
		var removed bool
		switch section {
		case SectionExperience:
			next.Experience, removed = deleteEntry(next.Experience, entryID, func(e types.Experience) string { return e.ID })
		case SectionEducation:
			next.Education, removed = deleteEntry(next.Education, entryID, func(e types.Education) string { return e.ID })
		case SectionProjects:
			next.Projects, removed = deleteEntry(next.Projects, entryID, func(p types.Project) string { return p.ID })
		default:
			return nil, fmt.Errorf("unknown profile section %q", section)
		}
		if !removed {
			return nil, &EntryNotFoundError{Section: section, EntryID: entryID}
		}
		return next, nil
	})
}

// UpdateInfo edits the personal details. Nil fields are left as they are;
// the email is the account identity and is not editable here.
func (s *Service) UpdateInfo(ctx context.Context, userID uuid.UUID, req *types.UpdateInfoRequest) (*types.UserProfile, error) {
	return s.update(ctx, userID, func(p *types.UserProfile) (*types.UserProfile, error) {
		next := p.Clone()
		if req.Name != nil {
			next.Name = strings.TrimSpace(*req.Name)
		}
		if req.Phone != nil {
			next.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Bio != nil {
			next.Bio = strings.TrimSpace(*req.Bio)
		}
		if req.Location != nil {
			next.Location = types.Location{
				City:    strings.TrimSpace(req.Location.City),
				Country: strings.TrimSpace(req.Location.Country),
			}
		}
		return next, nil
	})
}

func appendEntry[T any](entries []T, entry T, key func(T) string) ([]T, bool) {
	k := key(entry)
	for _, e := range entries {
		if key(e) == k {
			return entries, false
		}
	}
	return append(entries, entry), true
}

func deleteEntry[T any](entries []T, id string, idOf func(T) string) ([]T, bool) {
	kept := make([]T, 0, len(entries))
	for _, e := range entries {
		if idOf(e) != id {
			kept = append(kept, e)
		}
	}
	return kept, len(kept) < len(entries)
}
