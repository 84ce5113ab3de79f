package util

import "strings"

// OnlyDigits strips everything except ASCII digits, capped at maxLength
// digits when maxLength > 0. Train numbers and unit identifiers come from
// free-text fields so this runs before any registry lookup.
func OnlyDigits(s string, maxLength int) string {
	var builder strings.Builder

	for _, r := range s {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)

			if maxLength > 0 && builder.Len() == maxLength {
				break
			}
		}
	}

	return builder.String()
}

func ContainsString(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}

	return false
}

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}
