package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DisplayName joins name parts, preferring the local-script pair and
// falling back to the romanized pair when the local one is blank.
func DisplayName(localFirst, localLast, altFirst, altLast string) string {
	local := NormalizeSpace(localFirst + " " + localLast)
	if local != "" {
		return local
	}
	return NormalizeSpace(altFirst + " " + altLast)
}
