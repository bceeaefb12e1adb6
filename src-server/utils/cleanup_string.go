package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// CleanupTitle normalizes user-supplied event titles: strips
// surrounding spaces, title-cases, removes a trailing period.
func CleanupTitle(s string) string {
	s = strings.TrimSpace(s)
	s = titleCaser.String(s)
	s = strings.TrimSuffix(s, ".")
	return s
}
