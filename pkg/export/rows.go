// Package export flattens persisted mission records into the tabular CSV
// consumed by the supervision side. It is purely a projection: no state is
// created and nothing feeds back into the counting engine.
package export

import (
	"strings"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/util"
)

// Row is one station-log line of the export. Column names follow the
// supervision template.
type Row struct {
	Date        string `csv:"Date"`
	AgentName   string `csv:"Agent"`
	AgentID     string `csv:"CP"`
	TrainNumber string `csv:"Train"`
	Route       string `csv:"Mission"`
	Consist     string `csv:"EM"`
	StationName string `csv:"Gare"`
	Timestamp   string `csv:"Heure"`
	PaxIn       int    `csv:"Voy. M."`
	PaxOut      int    `csv:"Voy. D."`
	BikeIn      int    `csv:"Vél. E."`
	BikeOut     int    `csv:"Vél. S."`
	Notes       string `csv:"Notes"`
}

// SanitizeObservation normalises free text for the flat file: field
// separators become commas and newlines become spaces. Deliberately lossy -
// the export is not meant to round-trip.
func SanitizeObservation(observation string) string {
	observation = strings.ReplaceAll(observation, ";", ",")
	observation = strings.ReplaceAll(observation, "\r\n", " ")
	observation = strings.ReplaceAll(observation, "\n", " ")

	return observation
}

// ToRows emits one row per station log of each record, in record order. The
// numeric fields carry the raw committed values; only the observation text
// is transformed.
func ToRows(records []cordf.MissionRecord) []Row {
	var rows []Row

	for _, record := range records {
		consist := record.ConsistDescription()
		date := util.FormatDisplayDate(record.Date)
		notes := SanitizeObservation(record.Observations)

		for _, stationLog := range record.StationDetails {
			rows = append(rows, Row{
				Date:        date,
				AgentName:   record.AgentName,
				AgentID:     record.AgentID,
				TrainNumber: record.TrainNumber,
				Route:       record.Route,
				Consist:     consist,
				StationName: stationLog.Name,
				Timestamp:   stationLog.Timestamp,
				PaxIn:       stationLog.PaxIn,
				PaxOut:      stationLog.PaxOut,
				BikeIn:      stationLog.BikeIn,
				BikeOut:     stationLog.BikeOut,
				Notes:       notes,
			})
		}
	}

	return rows
}
