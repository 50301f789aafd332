package profile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/types"
)

func baseProfile() *types.UserProfile {
	return &types.UserProfile{
		ID:    uuid.New(),
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Bio:   "Old bio",
		Experience: []types.Experience{
			{ID: "e1", JobTitle: "Software Engineer", Company: "Acme Corp"},
		},
		Education: []types.Education{
			{ID: "d1", Degree: "BSc", Institution: "MIT"},
		},
		Projects: []types.Project{
			{ID: "p1", Title: "Portfolio", Description: "Site"},
		},
		Skills: []types.Skill{
			{ID: "s1", Name: "Go", Level: types.LevelExpert, Category: types.CategoryProgramming},
		},
	}
}

func extracted() *types.ExtractedProfileData {
	return &types.ExtractedProfileData{
		PersonalInfo: types.PersonalInfo{
			Name:     "J. Doe",
			Email:    "other@example.com",
			Phone:    "555-0100",
			Bio:      "New bio",
			Location: types.Location{City: "Berlin", Country: "Germany"},
		},
		Experience: []types.Experience{
			{JobTitle: "Software Engineer", Company: "Acme Corp", Description: "dup"},
			{JobTitle: "Intern", Company: "Beta"},
		},
		Education: []types.Education{
			{Degree: "BSc", Institution: "MIT"},
			{Degree: "MSc", Institution: "ETH"},
		},
		Projects: []types.Project{
			{Title: "Portfolio", Description: "dup"},
			{Title: "CLI", Description: "Tool"},
		},
		Skills: []types.Skill{
			{Name: "go", Level: types.LevelBeginner},
			{Name: "React", Level: types.LevelIntermediate, Category: types.CategoryFramework},
		},
	}
}

func TestReconcile_MergeSkipsDuplicates(t *testing.T) {
	got := Reconcile(baseProfile(), extracted(), Uniform(types.PolicyMerge))

	require.Len(t, got.Experience, 2)
	assert.Equal(t, "e1", got.Experience[0].ID)
	assert.Equal(t, "", got.Experience[0].Description, "existing entry untouched")
	assert.Equal(t, "Intern", got.Experience[1].JobTitle)

	require.Len(t, got.Education, 2)
	assert.Equal(t, "ETH", got.Education[1].Institution)

	require.Len(t, got.Projects, 2)
	assert.Equal(t, "CLI", got.Projects[1].Title)

	require.Len(t, got.Skills, 2, "skill names compare case-insensitively")
	assert.Equal(t, types.LevelExpert, got.Skills[0].Level)
	assert.Equal(t, "React", got.Skills[1].Name)
}

func TestReconcile_MergeDuplicateExperienceKeepsCount(t *testing.T) {
	existing := baseProfile()
	data := &types.ExtractedProfileData{
		Experience: []types.Experience{{JobTitle: "Software Engineer", Company: "Acme Corp"}},
	}

	got := Reconcile(existing, data, Uniform(types.PolicyMerge))
	assert.Len(t, got.Experience, len(existing.Experience))
}

func TestReconcile_MergeIsIdempotent(t *testing.T) {
	once := Reconcile(baseProfile(), extracted(), Uniform(types.PolicyMerge))
	twice := Reconcile(once, extracted(), Uniform(types.PolicyMerge))

	assert.Equal(t, once, twice)
}

func TestReconcile_MergeDeduplicatesWithinIncoming(t *testing.T) {
	data := &types.ExtractedProfileData{
		Skills: []types.Skill{{Name: "Rust"}, {Name: "rust"}},
	}
	got := Reconcile(baseProfile(), data, Uniform(types.PolicyMerge))
	assert.Len(t, got.Skills, 2)
}

func TestReconcile_ReplaceSwapsNonEmptySections(t *testing.T) {
	got := Reconcile(baseProfile(), extracted(), Uniform(types.PolicyReplace))

	assert.Equal(t, extracted().Experience, got.Experience)
	assert.Equal(t, extracted().Education, got.Education)
	assert.Equal(t, extracted().Projects, got.Projects)
	assert.Equal(t, extracted().Skills, got.Skills)
}

func TestReconcile_ReplaceWithEmptySectionsLeavesProfile(t *testing.T) {
	existing := baseProfile()
	empty := &types.ExtractedProfileData{
		Experience: []types.Experience{},
		Education:  nil,
	}

	got := Reconcile(existing, empty, Uniform(types.PolicyReplace))

	assert.Equal(t, existing.Experience, got.Experience)
	assert.Equal(t, existing.Education, got.Education)
	assert.Equal(t, existing.Projects, got.Projects)
	assert.Equal(t, existing.Skills, got.Skills)
}

func TestReconcile_PersonalInfo(t *testing.T) {
	existing := baseProfile()
	existing.Location.City = "Paris"

	got := Reconcile(existing, extracted(), Uniform(types.PolicyMerge))

	assert.Equal(t, "Jane Doe", got.Name, "populated name kept")
	assert.Equal(t, "jane@example.com", got.Email, "populated email kept")
	assert.Equal(t, "555-0100", got.Phone, "empty phone filled")
	assert.Equal(t, "New bio", got.Bio, "bio always overwritten")
	assert.Equal(t, "Paris", got.Location.City, "populated city kept")
	assert.Equal(t, "Germany", got.Location.Country, "empty country filled")
}

func TestReconcile_EmptyBioDoesNotClear(t *testing.T) {
	got := Reconcile(baseProfile(), &types.ExtractedProfileData{}, Uniform(types.PolicyReplace))
	assert.Equal(t, "Old bio", got.Bio)
}

func TestReconcile_DoesNotMutateExisting(t *testing.T) {
	existing := baseProfile()
	snapshot := existing.Clone()

	_ = Reconcile(existing, extracted(), Uniform(types.PolicyMerge))
	_ = Reconcile(existing, extracted(), Uniform(types.PolicyReplace))

	assert.Equal(t, snapshot, existing)
}

func TestReconcile_PerSectionPolicies(t *testing.T) {
	pol := Uniform(types.PolicyMerge)
	pol.Skills = types.PolicyReplace

	got := Reconcile(baseProfile(), extracted(), pol)

	assert.Len(t, got.Experience, 2)
	assert.Equal(t, extracted().Skills, got.Skills)
}

func TestReconcile_NilInputs(t *testing.T) {
	assert.Nil(t, Reconcile(nil, extracted(), Uniform(types.PolicyMerge)))

	existing := baseProfile()
	assert.Equal(t, existing, Reconcile(existing, nil, Uniform(types.PolicyMerge)))
}

func TestPoliciesFor(t *testing.T) {
	req := &types.UpdateProfileRequest{
		ProfileData:    &types.ExtractedProfileData{},
		MergeOption:    "merge",
		SectionOptions: &types.SectionOptions{Projects: "replace"},
	}
	assert.Equal(t, Policies{
		Experience: types.PolicyMerge,
		Education:  types.PolicyMerge,
		Projects:   types.PolicyReplace,
		Skills:     types.PolicyMerge,
	}, PoliciesFor(req))

	assert.Equal(t, Uniform(types.PolicyReplace), PoliciesFor(&types.UpdateProfileRequest{}))
}
