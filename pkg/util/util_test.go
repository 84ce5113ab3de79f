package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "859769", OnlyDigits("859769", 0))
	assert.Equal(t, "859769", OnlyDigits(" 859-769 ", 0))
	assert.Equal(t, "859769", OnlyDigits("85976912", 6))
	assert.Equal(t, "", OnlyDigits("abc", 0))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsed(0))
	assert.Equal(t, "00:00:29", FormatElapsed(29*time.Second))
	assert.Equal(t, "00:29:05", FormatElapsed(29*time.Minute+5*time.Second))
	assert.Equal(t, "01:02:03", FormatElapsed(time.Hour+2*time.Minute+3*time.Second))
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "14/03/2025", FormatDisplayDate("2025-03-14"))
	assert.Equal(t, "garbage", FormatDisplayDate("garbage"))
}

func TestParseISODate(t *testing.T) {
	date, err := ParseISODate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.March, date.Month())
	assert.Equal(t, time.Friday, date.Weekday())

	_, err = ParseISODate("14/03/2025")
	assert.Error(t, err)
}
