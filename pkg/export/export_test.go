package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() cordf.MissionRecord {
	return cordf.MissionRecord{
		TrainNumber: "859769",
		Route:       "NS-CLI",
		Date:        "2025-03-14",
		AgentName:   "Jean Dupont",
		AgentID:     "1234567D",
		ConsistType: cordf.ConsistSingle,
		Consists:    []string{"U53482"},
		StationDetails: []cordf.StationLog{
			{Code: "NS", Name: "Nantes", PaxIn: 5, BikeIn: 1, Timestamp: "06:13"},
			{Code: "VT", Name: "Vertou", PaxIn: 2, PaxOut: 1, Timestamp: "06:25"},
			{Code: "CLI", Name: "Clisson", PaxOut: 6, BikeOut: 1, Timestamp: "06:42"},
		},
		Observations: "Affluence forte; vélos refusés\nRAS ensuite",
	}
}

func TestToRows(t *testing.T) {
	rows := ToRows([]cordf.MissionRecord{sampleRecord()})
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, "14/03/2025", first.Date)
	assert.Equal(t, "Jean Dupont", first.AgentName)
	assert.Equal(t, "1234567D", first.AgentID)
	assert.Equal(t, "US U53482", first.Consist)
	assert.Equal(t, "Nantes", first.StationName)
	assert.Equal(t, 5, first.PaxIn)
	assert.Equal(t, 0, first.PaxOut)

	// Raw committed values, no derived totals
	last := rows[2]
	assert.Equal(t, 6, last.PaxOut)
	assert.Equal(t, 1, last.BikeOut)

	// Observation text repeats on every row, sanitized
	for _, row := range rows {
		assert.Equal(t, "Affluence forte, vélos refusés RAS ensuite", row.Notes)
	}
}

func TestToRowsEmpty(t *testing.T) {
	assert.Empty(t, ToRows(nil))

	// A record without logs produces no rows at all
	record := sampleRecord()
	record.StationDetails = nil
	assert.Empty(t, ToRows([]cordf.MissionRecord{record}))
}

func TestSanitizeObservation(t *testing.T) {
	assert.Equal(t, "a, b", SanitizeObservation("a; b"))
	assert.Equal(t, "line one line two", SanitizeObservation("line one\nline two"))
	assert.Equal(t, "line one line two", SanitizeObservation("line one\r\nline two"))
	assert.Equal(t, "", SanitizeObservation(""))
}

func TestMarshal(t *testing.T) {
	data, err := Marshal([]cordf.MissionRecord{sampleRecord()})
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(data, utf8ByteOrderMark))

	lines := strings.Split(strings.TrimSpace(string(data[len(utf8ByteOrderMark):])), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date;Agent;CP;Train;Mission;EM;Gare;Heure;Voy. M.;Voy. D.;Vél. E.;Vél. S.;Notes", strings.TrimRight(lines[0], "\r"))

	assert.Contains(t, lines[1], "Nantes")
	assert.Contains(t, lines[3], "Clisson")
}
