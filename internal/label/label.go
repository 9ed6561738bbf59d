// Package label prepares feature display names for map labeling: two-line
// wrapping for long names, casing normalization for shouty source attributes,
// and the per-feature placement override table.
package label

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Wrap splits a display name onto two lines at the first space so it fits
// inside small polygons. Names without a space are returned unchanged; any
// further spaces are left alone.
func Wrap(name string) string {
	return strings.Replace(name, " ", "\n", 1)
}

// Display normalizes a raw attribute value for labeling. Sources that ship
// all-caps names (common in Esri layers) are title-cased; anything already
// mixed-case is trusted as-is.
func Display(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || !isAllUpper(name) {
		return name
	}
	return cases.Title(language.English).String(strings.ToLower(name))
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
