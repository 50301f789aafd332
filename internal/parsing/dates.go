package parsing

import (
	"regexp"
	"strings"
)

var (
	isoDate   = regexp.MustCompile(`^\d{4}(-(0[1-9]|1[0-2])(-(0[1-9]|[12]\d|3[01]))?)?$`)
	monthYear = regexp.MustCompile(`^([A-Za-z]+)\.?,?\s+(\d{4})$`)
	slashDate = regexp.MustCompile(`^(0?[1-9]|1[0-2])[/.](\d{4})$`)
)

var ongoing = map[string]bool{
	"present": true, "current": true, "now": true, "ongoing": true, "till date": true, "to date": true,
}

// isOngoing reports whether a date string marks a role as still running.
func isOngoing(s string) bool {
	return ongoing[strings.ToLower(strings.TrimSpace(s))]
}

// normalizeDate rewrites "Jan 2020", "January 2020" and "01/2020" to YYYY-MM.
// Anything else is returned trimmed but otherwise untouched.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isoDate.MatchString(s) {
		return s
	}
	if m := monthYear.FindStringSubmatch(s); m != nil {
		if month, ok := parseMonth(m[1]); ok {
			return m[2] + "-" + month
		}
	}
	if m := slashDate.FindStringSubmatch(s); m != nil {
		month := m[1]
		if len(month) == 1 {
			month = "0" + month
		}
		return m[2] + "-" + month
	}
	return s
}

var months = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "sept": "09", "oct": "10", "nov": "11", "dec": "12",
	"january": "01", "february": "02", "march": "03", "april": "04", "june": "06",
	"july": "07", "august": "08", "september": "09", "october": "10", "november": "11", "december": "12",
}

func parseMonth(name string) (string, bool) {
	m, ok := months[strings.ToLower(name)]
	return m, ok
}
