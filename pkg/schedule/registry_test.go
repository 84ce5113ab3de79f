package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	entry, found := Lookup("859769")
	require.True(t, found)
	assert.Equal(t, "06:13", entry.Departure)
	assert.Equal(t, "06:42", entry.Arrival)
	assert.Equal(t, "NS-CLI", entry.Route)
	assert.Equal(t, []DayClass{DayClassWeekday}, entry.Days)

	_, found = Lookup("123456")
	assert.False(t, found)
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		trainNumber string
		expected    string
	}{
		{"859512", "NS-NSE"},
		{"859511", "NSE-NS"},
		{"859612", "NS-CHU"},
		{"859611", "CHU-NS"},
		{"859711", "NS-CLI"},
		{"859712", "CLI-NS"},
		{"999999", RouteUnclassified},
		{"859", RouteUnclassified},
		{"", RouteUnclassified},
		{"8597110", RouteUnclassified},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, Classify(testCase.trainNumber), "train %q", testCase.trainNumber)
	}
}

func TestDayClassFor(t *testing.T) {
	friday := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, DayClass(DayClassWeekday), DayClassFor(friday))
	assert.Equal(t, DayClass(DayClassSaturday), DayClassFor(saturday))
	assert.Equal(t, DayClass(DayClassSunday), DayClassFor(sunday))

	assert.Equal(t, "Lundi au Vendredi", DayLabel(friday))
	assert.Equal(t, "Samedi", DayLabel(saturday))
	assert.Equal(t, "Dimanche", DayLabel(sunday))
}

func TestIsActiveOn(t *testing.T) {
	weekdayOnly := Entry{Days: []DayClass{DayClassWeekday}}
	sunday := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	assert.False(t, weekdayOnly.IsActiveOn(sunday))
	assert.True(t, weekdayOnly.IsActiveOn(monday))

	// Missing calendar data never blocks a mission
	noData := Entry{}
	assert.True(t, noData.IsActiveOn(sunday))
	assert.True(t, noData.IsActiveOn(monday))
}

func TestDepartureClock(t *testing.T) {
	entry := Entry{Departure: "06:13"}
	hour, minute := entry.DepartureClock()
	assert.Equal(t, "06", hour)
	assert.Equal(t, "13", minute)

	malformed := Entry{Departure: "0613"}
	hour, minute = malformed.DepartureClock()
	assert.Equal(t, "00", hour)
	assert.Equal(t, "00", minute)
}
