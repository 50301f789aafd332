// Package skills assigns profile skills to categories.
package skills

import (
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

type rule struct {
	category types.SkillCategory
	exact    map[string]struct{}
	terms    map[string]struct{}
	words    map[string]struct{}
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{category: types.CategoryProgramming, exact: programmingExact, terms: programmingTerms, words: programmingWords},
	{category: types.CategoryFramework, terms: frameworkTerms, words: frameworkWords},
	{category: types.CategoryDatabase, terms: databaseTerms, words: databaseWords},
	{category: types.CategoryTool, terms: toolTerms, words: toolWords},
	{category: types.CategorySoftSkill, terms: softSkillTerms, words: softSkillWords},
}

// Classify returns the category for a skill. The hint is whatever category
// the source proposed and is only one more signal; it is never trusted as is.
// Classify is total: unmatched input is CategoryOther.
//
// Each rule sees both the name and the hint before the next rule is tried,
// so a hint word for an earlier category beats a known name in a later one.
func Classify(hint, name string) types.SkillCategory {
	h := newText(hint)
	n := newText(name)

	for _, r := range rules {
		if r.matches(n) || r.matches(h) {
			return r.category
		}
	}
	return types.CategoryOther
}

func (r rule) matches(t text) bool {
	return r.matchesWhole(t) || r.matchesPart(t)
}

func (r rule) matchesWhole(t text) bool {
	if t.full == "" {
		return false
	}
	if _, ok := r.exact[t.full]; ok {
		return true
	}
	_, ok := r.terms[t.full]
	return ok
}

func (r rule) matchesPart(t text) bool {
	for _, tok := range t.tokens {
		if _, ok := r.terms[tok]; ok {
			return true
		}
		if _, ok := r.words[tok]; ok {
			return true
		}
	}
	// Multi-word terms
	for term := range r.terms {
		if strings.Contains(term, " ") && strings.Contains(t.padded, " "+term+" ") {
			return true
		}
	}
	return false
}

type text struct {
	full   string
	tokens []string
	padded string
}

func newText(s string) text {
	full := strings.ToLower(strings.TrimSpace(s))
	tokens := strings.FieldsFunc(full, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', '/', '(', ')', '&', ';', ':', '|', '[', ']':
			return true
		}
		return false
	})
	for i, tok := range tokens {
		tokens[i] = strings.TrimRight(tok, ".")
	}
	return text{
		full:   full,
		tokens: tokens,
		padded: " " + strings.Join(tokens, " ") + " ",
	}
}
