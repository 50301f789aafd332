// Package observability provides structured logging and formatted output
// utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobboard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// PrintExtractedProfile outputs a human-readable summary of extracted
// profile data.
func (p *Printer) PrintExtractedProfile(data *types.ExtractedProfileData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	info := data.PersonalInfo
	sb.WriteString(fmt.Sprintf("Name:     %s\n", info.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", info.Email))
	if info.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", info.Phone))
	}
	if !info.Location.IsEmpty() {
		sb.WriteString(fmt.Sprintf("Location: %s\n", strings.Trim(info.Location.City+", "+info.Location.Country, ", ")))
	}
	sb.WriteString("\n")

	if len(data.Experience) > 0 {
		sb.WriteString("Experience:\n")
		writeList(&sb, len(data.Experience), maxItemsToShow, func(i int) string {
			e := data.Experience[i]
			end := e.EndDate
			if e.IsCurrentJob {
				end = "present"
			}
			return fmt.Sprintf("%s @ %s (%s – %s)", e.JobTitle, e.Company, e.StartDate, end)
		})
		sb.WriteString("\n")
	}

	if len(data.Education) > 0 {
		sb.WriteString("Education:\n")
		writeList(&sb, len(data.Education), 3, func(i int) string {
			e := data.Education[i]
			return fmt.Sprintf("%s, %s", e.Degree, e.Institution)
		})
		sb.WriteString("\n")
	}

	if len(data.Projects) > 0 {
		sb.WriteString("Projects:\n")
		writeList(&sb, len(data.Projects), 3, func(i int) string {
			pr := data.Projects[i]
			return fmt.Sprintf("%s [%s]", pr.Title, pr.Status)
		})
		sb.WriteString("\n")
	}

	if len(data.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(data.Skills)))
		byCategory := map[types.SkillCategory][]string{}
		var order []types.SkillCategory
		for _, s := range data.Skills {
			if _, seen := byCategory[s.Category]; !seen {
				order = append(order, s.Category)
			}
			byCategory[s.Category] = append(byCategory[s.Category], s.Name)
		}
		for _, cat := range order {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", cat, strings.Join(byCategory[cat], ", ")))
		}
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintApplication outputs the application autofill fields.
func (p *Printer) PrintApplication(app *types.ApplicationAutofill) {
	if app == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", app.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", app.Email))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", app.Phone))
	sb.WriteString(fmt.Sprintf("Address:  %s\n", app.Address))
	if app.CoverLetter != "" {
		sb.WriteString("\nCover letter:\n")
		sb.WriteString(clip(app.CoverLetter, 3*(boxWidth-4)))
	}

	p.printBox("APPLICATION AUTOFILL", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, n, limit int, item func(i int) string) {
	count := min(n, limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", item(i)))
	}
	if n > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", n-limit))
	}
}
