package valueobject

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PersonName trims, collapses inner whitespace and title-cases a first or last
// name: "  jean-paul  " becomes "Jean-Paul", "ÉLODIE" becomes "Élodie".
func PersonName(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		return ""
	}
	// a Caser keeps state between calls, so build one per name
	return cases.Title(language.French).String(collapsed)
}
