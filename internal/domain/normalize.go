package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal
// whitespace runs. It is applied to member names before storage and before
// household (FamilyHead) comparison.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PhoneDigits strips every non-digit rune from a phone string, so
// "010-1234-5678" and "01012345678" compare and search equal.
func PhoneDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
