// Package profile applies extracted resume data to persisted job-seeker
// profiles.
package profile

import (
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

// Policies holds the merge policy of each collection section.
type Policies struct {
	Experience types.MergePolicy
	Education  types.MergePolicy
	Projects   types.MergePolicy
	Skills     types.MergePolicy
}

// Uniform applies one policy to every section.
func Uniform(p types.MergePolicy) Policies {
	return Policies{Experience: p, Education: p, Projects: p, Skills: p}
}

// PoliciesFor resolves the request-wide option and any per-section overrides.
func PoliciesFor(req *types.UpdateProfileRequest) Policies {
	pol := Uniform(req.Policy())
	if o := req.SectionOptions; o != nil {
		override(&pol.Experience, o.Experience)
		override(&pol.Education, o.Education)
		override(&pol.Projects, o.Projects)
		override(&pol.Skills, o.Skills)
	}
	return pol
}

func override(dst *types.MergePolicy, v string) {
	if v != "" {
		*dst = types.MergePolicy(v)
	}
}

// Reconcile returns a copy of existing with data applied; existing is not
// modified.
//
// Under replace, a non-empty incoming section replaces the stored one and an
// empty one leaves it alone. Under merge, incoming entries are appended
// unless an entry with the same key is already present. Personal fields are
// only filled when empty, except bio which is always taken when provided.
func Reconcile(existing *types.UserProfile, data *types.ExtractedProfileData, pol Policies) *types.UserProfile {
	out := existing.Clone()
	if out == nil || data == nil {
		return out
	}

	applyPersonalInfo(out, data.PersonalInfo)
	out.Experience = reconcileSection(out.Experience, data.Experience, pol.Experience, experienceKey)
	out.Education = reconcileSection(out.Education, data.Education, pol.Education, educationKey)
	out.Projects = reconcileSection(out.Projects, data.Projects, pol.Projects, projectKey)
	out.Skills = reconcileSection(out.Skills, data.Skills, pol.Skills, skillKey)
	return out
}

func applyPersonalInfo(p *types.UserProfile, info types.PersonalInfo) {
	fillEmpty(&p.Name, info.Name)
	fillEmpty(&p.Email, info.Email)
	fillEmpty(&p.Phone, info.Phone)
	fillEmpty(&p.Location.City, info.Location.City)
	fillEmpty(&p.Location.Country, info.Location.Country)
	if info.Bio != "" {
		p.Bio = info.Bio
	}
}

func fillEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

func reconcileSection[T any](current, incoming []T, policy types.MergePolicy, key func(T) string) []T {
	if len(incoming) == 0 {
		return current
	}

	if policy != types.PolicyMerge {
		return append([]T(nil), incoming...)
	}

	seen := make(map[string]bool, len(current)+len(incoming))
	for _, e := range current {
		seen[key(e)] = true
	}
	for _, e := range incoming {
		k := key(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		current = append(current, e)
	}
	return current
}

func experienceKey(e types.Experience) string { return e.JobTitle + "\x00" + e.Company }

func educationKey(e types.Education) string { return e.Degree + "\x00" + e.Institution }

func projectKey(p types.Project) string { return p.Title }

func skillKey(s types.Skill) string { return strings.ToLower(s.Name) }
