package parsing

import (
	"strconv"
	"strings"

	"github.com/jonathan/jobboard/internal/skills"
	"github.com/jonathan/jobboard/internal/types"
)

// SanitizeProfile converts a decoded extraction into ExtractedProfileData.
// It never fails: values of the wrong type read as empty and entries that
// miss their identifying fields are dropped. Sections are never nil.
func SanitizeProfile(raw map[string]any) *types.ExtractedProfileData {
	return &types.ExtractedProfileData{
		PersonalInfo: sanitizePersonalInfo(object(raw["personalInfo"])),
		Experience:   sanitizeExperience(list(raw["experience"])),
		Education:    sanitizeEducation(list(raw["education"])),
		Projects:     sanitizeProjects(list(raw["projects"])),
		Skills:       sanitizeSkills(list(raw["skills"])),
	}
}

// SanitizeApplication trims the autofill fields.
func SanitizeApplication(raw map[string]any) types.ApplicationAutofill {
	return types.ApplicationAutofill{
		Name:        str(raw["name"]),
		Email:       str(raw["email"]),
		Phone:       str(raw["phone"]),
		Address:     locationString(raw["address"]),
		CoverLetter: str(raw["coverLetter"]),
	}
}

func sanitizePersonalInfo(m map[string]any) types.PersonalInfo {
	return types.PersonalInfo{
		Name:     str(m["name"]),
		Email:    str(m["email"]),
		Phone:    str(m["phone"]),
		Bio:      str(m["bio"]),
		Location: sanitizeLocation(m["location"]),
	}
}

func sanitizeLocation(v any) types.Location {
	switch loc := v.(type) {
	case map[string]any:
		return types.Location{City: str(loc["city"]), Country: str(loc["country"])}
	case string:
		// "Pune, Maharashtra, India" -> city "Pune, Maharashtra", country "India"
		loc = strings.TrimSpace(loc)
		if idx := strings.LastIndex(loc, ","); idx >= 0 {
			return types.Location{
				City:    strings.TrimSpace(loc[:idx]),
				Country: strings.TrimSpace(loc[idx+1:]),
			}
		}
		return types.Location{City: loc}
	}
	return types.Location{}
}

func sanitizeExperience(items []any) []types.Experience {
	out := make([]types.Experience, 0, len(items))
	for _, item := range items {
		if e, ok := ParseExperience(object(item)); ok {
			out = append(out, e)
		}
	}
	return out
}

// ParseExperience builds one experience entry. It reports false when the
// job title or company is missing.
func ParseExperience(m map[string]any) (types.Experience, bool) {
	e := types.Experience{
		JobTitle:     str(m["jobTitle"]),
		Company:      str(m["company"]),
		Location:     locationString(m["location"]),
		StartDate:    normalizeDate(str(m["startDate"])),
		EndDate:      str(m["endDate"]),
		IsCurrentJob: boolean(m["isCurrentJob"]),
		Description:  str(m["description"]),
		Skills:       strList(m["skills"]),
	}
	if e.JobTitle == "" || e.Company == "" {
		return types.Experience{}, false
	}
	if isOngoing(e.EndDate) {
		e.EndDate = ""
		e.IsCurrentJob = true
	} else {
		e.EndDate = normalizeDate(e.EndDate)
	}
	return e, true
}

func sanitizeEducation(items []any) []types.Education {
	out := make([]types.Education, 0, len(items))
	for _, item := range items {
		if e, ok := ParseEducation(object(item)); ok {
			out = append(out, e)
		}
	}
	return out
}

// ParseEducation builds one education entry. It reports false when the
// degree or institution is missing.
func ParseEducation(m map[string]any) (types.Education, bool) {
	e := types.Education{
		Degree:       str(m["degree"]),
		Institution:  str(m["institution"]),
		FieldOfStudy: str(m["fieldOfStudy"]),
		StartDate:    normalizeDate(str(m["startDate"])),
		EndDate:      normalizeDate(str(m["endDate"])),
		Grade:        str(m["grade"]),
		Description:  str(m["description"]),
	}
	if e.Degree == "" || e.Institution == "" {
		return types.Education{}, false
	}
	return e, true
}

func sanitizeProjects(items []any) []types.Project {
	out := make([]types.Project, 0, len(items))
	for _, item := range items {
		if p, ok := ParseProject(object(item)); ok {
			out = append(out, p)
		}
	}
	return out
}

// ParseProject builds one project entry. It reports false when the title
// or description is missing. Unknown statuses read as Completed.
func ParseProject(m map[string]any) (types.Project, bool) {
	p := types.Project{
		Title:        str(m["title"]),
		Description:  str(m["description"]),
		Technologies: strList(m["technologies"]),
		StartDate:    normalizeDate(str(m["startDate"])),
		EndDate:      normalizeDate(str(m["endDate"])),
		ProjectURL:   str(m["projectUrl"]),
		GithubURL:    str(m["githubUrl"]),
	}
	if p.Title == "" || p.Description == "" {
		return types.Project{}, false
	}
	status, ok := types.ParseProjectStatus(str(m["status"]))
	if !ok {
		status = types.StatusCompleted
	}
	p.Status = status
	return p, true
}

func sanitizeSkills(items []any) []types.Skill {
	out := make([]types.Skill, 0, len(items))
	for _, item := range items {
		var name, level, hint string
		switch v := item.(type) {
		case string:
			name = strings.TrimSpace(v)
		case map[string]any:
			name = str(v["name"])
			level = str(v["level"])
			hint = str(v["category"])
		}
		if name == "" {
			continue
		}
		out = append(out, NewSkill(name, level, hint))
	}
	return out
}

// NewSkill builds a skill with a coerced level and a classified category.
func NewSkill(name, level, categoryHint string) types.Skill {
	lvl, ok := types.ParseSkillLevel(level)
	if !ok {
		lvl = types.LevelIntermediate
	}
	return types.Skill{
		Name:     strings.TrimSpace(name),
		Level:    lvl,
		Category: skills.Classify(categoryHint, name),
	}
}

func object(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// list reads a section. A lone object is one entry and a string is split
// on commas.
func list(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case map[string]any:
		return []any{l}
	case string:
		parts := strings.Split(l, ",")
		out := make([]any, 0, len(parts))
		for _, part := range parts {
			out = append(out, part)
		}
		return out
	}
	return nil
}

func str(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

func boolean(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	}
	return false
}

// strList keeps the non-empty strings of a list. A single comma-separated
// string is split.
func strList(v any) []string {
	var items []any
	switch l := v.(type) {
	case []any:
		items = l
	case string:
		for _, part := range strings.Split(l, ",") {
			items = append(items, part)
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := str(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func locationString(v any) string {
	if m, ok := v.(map[string]any); ok {
		parts := make([]string, 0, 2)
		for _, key := range []string{"city", "country"} {
			if s := str(m[key]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return str(v)
}
