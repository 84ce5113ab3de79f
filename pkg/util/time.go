package util

import (
	"fmt"
	"strings"
	"time"
)

// FormatElapsed renders a duration as HH:MM:SS, the form stored on mission
// records.
func FormatElapsed(d time.Duration) string {
	totalSeconds := int(d.Seconds())

	return fmt.Sprintf("%02d:%02d:%02d", totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
}

// FormatDisplayDate turns an ISO date (2025-03-14) into the French display
// form (14/03/2025). Anything that does not look like an ISO date passes
// through untouched.
func FormatDisplayDate(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return isoDate
	}

	return fmt.Sprintf("%s/%s/%s", parts[2], parts[1], parts[0])
}

// ParseISODate parses a calendar date in the wire format used across the
// planning and mission documents.
func ParseISODate(isoDate string) (time.Time, error) {
	return time.Parse("2006-01-02", isoDate)
}
