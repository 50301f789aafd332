// Package types provides type definitions for structured data shared by the
// resume pipeline, profile reconciliation and the HTTP layer.
package types

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SkillCategory groups skills on a profile.
type SkillCategory string

// Skill categories, in classifier precedence order.
const (
	CategoryProgramming SkillCategory = "Programming"
	CategoryFramework   SkillCategory = "Framework"
	CategoryDatabase    SkillCategory = "Database"
	CategoryTool        SkillCategory = "Tool"
	CategorySoftSkill   SkillCategory = "Soft Skill"
	CategoryOther       SkillCategory = "Other"
)

// SkillLevel is a self-assessed proficiency.
type SkillLevel string

// Valid skill levels.
const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

var skillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// ParseSkillLevel matches s case-insensitively against the valid levels.
func ParseSkillLevel(s string) (SkillLevel, bool) {
	s = strings.TrimSpace(s)
	for _, l := range skillLevels {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}
	return "", false
}

// ProjectStatus is the lifecycle state of a portfolio project.
type ProjectStatus string

// Valid project statuses.
const (
	StatusCompleted  ProjectStatus = "Completed"
	StatusInProgress ProjectStatus = "In Progress"
	StatusOnHold     ProjectStatus = "On Hold"
)

var projectStatuses = []ProjectStatus{StatusCompleted, StatusInProgress, StatusOnHold}

// ParseProjectStatus matches s case-insensitively, accepting "in-progress"
// and "in_progress" spellings.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	for _, st := range projectStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// MergePolicy selects how an extracted section is applied to a profile.
type MergePolicy string

// Merge policies.
const (
	PolicyReplace MergePolicy = "replace"
	PolicyMerge   MergePolicy = "merge"
)

// Location is a coarse city/country pair.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// IsEmpty reports whether neither field is set.
func (l Location) IsEmpty() bool {
	return l.City == "" && l.Country == ""
}

// PersonalInfo holds the identity fields found on a resume.
type PersonalInfo struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Bio      string   `json:"bio"`
	Location Location `json:"location"`
}

// Experience is a single position held.
type Experience struct {
	ID           string   `json:"id,omitempty"`
	JobTitle     string   `json:"jobTitle"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	IsCurrentJob bool     `json:"isCurrentJob"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills"`
}

// Education is a single degree or course of study.
type Education struct {
	ID           string `json:"id,omitempty"`
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Grade        string `json:"grade"`
	Description  string `json:"description"`
}

// Project is a portfolio entry.
type Project struct {
	ID           string        `json:"id,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Technologies []string      `json:"technologies"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	ProjectURL   string        `json:"projectUrl"`
	GithubURL    string        `json:"githubUrl"`
	Status       ProjectStatus `json:"status"`
}

// Skill is a named, categorized competency.
type Skill struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name"`
	Level    SkillLevel    `json:"level"`
	Category SkillCategory `json:"category"`
}

// ExtractedProfileData is the sanitized result of profile extraction.
// It is returned to the caller and only persisted by a later reconcile call.
type ExtractedProfileData struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Projects     []Project    `json:"projects"`
	Skills       []Skill      `json:"skills"`
}

// ApplicationAutofill is the data used to prefill a job application form.
type ApplicationAutofill struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	CoverLetter string `json:"coverLetter"`
}

// UserProfile is the persisted job-seeker profile. Credentials live
// elsewhere and are never loaded into this type.
type UserProfile struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Role       string       `json:"role"`
	Bio        string       `json:"bio"`
	Location   Location     `json:"location"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Projects   []Project    `json:"projects"`
	Skills     []Skill      `json:"skills"`
	Version    int          `json:"version"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy of the profile.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Experience = slices.Clone(p.Experience)
	for i := range c.Experience {
		c.Experience[i].Skills = slices.Clone(c.Experience[i].Skills)
	}
	c.Education = slices.Clone(p.Education)
	c.Projects = slices.Clone(p.Projects)
	for i := range c.Projects {
		c.Projects[i].Technologies = slices.Clone(c.Projects[i].Technologies)
	}
	c.Skills = slices.Clone(p.Skills)
	return &c
}
