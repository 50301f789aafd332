package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobboard/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		hint string
		name string
		want types.SkillCategory
	}{
		{"", "React", types.CategoryFramework},
		{"", "PostgreSQL", types.CategoryDatabase},
		{"", "Leadership", types.CategorySoftSkill},
		{"", "JavaScript", types.CategoryProgramming},
		{"", "C++", types.CategoryProgramming},
		{"", "Go", types.CategoryProgramming},
		{"", "Node.js", types.CategoryFramework},
		{"", "Tailwind CSS", types.CategoryProgramming},
		{"", "SQL", types.CategoryDatabase},
		{"", "SQL Server", types.CategoryDatabase},
		{"", "Docker", types.CategoryTool},
		{"", "Google Cloud Platform", types.CategoryTool},
		{"", "Problem-solving", types.CategorySoftSkill},
		{"", "Project Management", types.CategorySoftSkill},
		{"", "Underwater Basket Weaving", types.CategoryOther},
		{"", "", types.CategoryOther},
		// hint words
		{"Programming Language", "Brainfuck", types.CategoryProgramming},
		{"framework", "Phoenix", types.CategoryFramework},
		{"NoSQL", "RavenDB", types.CategoryDatabase},
		{"IDE", "Emacs", types.CategoryTool},
		{"Soft Skill", "Patience", types.CategorySoftSkill},
		{"Other", "Cooking", types.CategoryOther},
		// rule order decides between hint and name
		{"Programming", "React", types.CategoryProgramming},
		{"Programming Languages", "React", types.CategoryProgramming},
		{"Frameworks", "MySQL", types.CategoryFramework},
		{"Database", "Docker", types.CategoryDatabase},
		{"Tools", "Leadership", types.CategoryTool},
		{"Leadership", "Docker", types.CategoryTool},
		// precedence: tool words fire before soft-skill words
		{"", "leadership training platform", types.CategoryTool},
		{"management software", "", types.CategoryTool},
	}

	for _, tt := range tests {
		t.Run(tt.hint+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.hint, tt.name))
		})
	}
}

func TestClassify_ShortNamesNeedExactMatch(t *testing.T) {
	assert.Equal(t, types.CategoryProgramming, Classify("", "R"))
	assert.Equal(t, types.CategoryOther, Classify("", "R&D"))
	assert.Equal(t, types.CategoryOther, Classify("", "Go-to-market"))
}

func TestClassify_IsDeterministicAndTotal(t *testing.T) {
	valid := map[types.SkillCategory]bool{
		types.CategoryProgramming: true,
		types.CategoryFramework:   true,
		types.CategoryDatabase:    true,
		types.CategoryTool:        true,
		types.CategorySoftSkill:   true,
		types.CategoryOther:       true,
	}
	inputs := []string{"", " ", "React", "Ünïcödé", "c#", "!!!", "Vue.js / Nuxt", "a b c d e f g", "(SQL)"}

	for _, hint := range inputs {
		for _, name := range inputs {
			first := Classify(hint, name)
			assert.True(t, valid[first], "unexpected category %q", first)
			assert.Equal(t, first, Classify(hint, name))
		}
	}
}
