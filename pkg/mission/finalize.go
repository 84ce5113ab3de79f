package mission

import (
	"errors"
	"time"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/util"
)

// ErrInvalidConsist is the single hard validation gate before a record can
// be created: unit identifiers must be exactly three digits, two of them
// for a double unit. Surfaced as a field-level message, never fatal to the
// session.
var ErrInvalidConsist = errors.New("consist unit identifiers must be 3 digits")

// FinalizeOptions carries the operator's summary-screen input.
type FinalizeOptions struct {
	ConsistType cordf.ConsistType
	Unit1       string
	Unit2       string

	ArrivalTime  string
	Observations string
}

// ValidateConsist checks the consist identifiers for the given mode.
// Single-unit missions need one 3-digit identifier, double-unit missions
// two.
func ValidateConsist(consistType cordf.ConsistType, unit1 string, unit2 string) error {
	if util.OnlyDigits(unit1, 0) != unit1 || len(unit1) != 3 {
		return ErrInvalidConsist
	}

	if consistType == cordf.ConsistDouble {
		if util.OnlyDigits(unit2, 0) != unit2 || len(unit2) != 3 {
			return ErrInvalidConsist
		}
	}

	return nil
}

// ConsistIdentifiers expands the entered unit digits into full fleet
// identifiers, e.g. 482 -> U53482.
func ConsistIdentifiers(consistType cordf.ConsistType, unit1 string, unit2 string) []string {
	if consistType == cordf.ConsistDouble {
		return []string{cordf.ConsistUnitPrefix + unit1, cordf.ConsistUnitPrefix + unit2}
	}

	return []string{cordf.ConsistUnitPrefix + unit1}
}

// ComputeTotals sums the boarded passengers and bicycles across a log list.
// Totals are always recomputed from the logs, never trusted from a stored
// field, so re-finalizing or re-aggregating can never double count.
func ComputeTotals(logs []cordf.StationLog) (int, int) {
	boardedPax := 0
	boardedBikes := 0

	for _, stationLog := range logs {
		boardedPax += stationLog.PaxIn
		boardedBikes += stationLog.BikeIn
	}

	return boardedPax, boardedBikes
}

// buildRecord freezes a summarizing session into an immutable
// MissionRecord. Called under the engine lock.
func buildRecord(session *Session, opts FinalizeOptions) (*cordf.MissionRecord, error) {
	if err := ValidateConsist(opts.ConsistType, opts.Unit1, opts.Unit2); err != nil {
		return nil, err
	}

	boardedPax, boardedBikes := ComputeTotals(session.Logs)

	record := &cordf.MissionRecord{
		TrainNumber: session.TrainNumber,
		Route:       session.Route,
		Time:        session.Time,
		Date:        session.Date,

		AgentName: session.AgentName,
		AgentID:   session.AgentID,
		AgentUID:  session.AgentUID,

		ConsistType: opts.ConsistType,
		Consists:    ConsistIdentifiers(opts.ConsistType, opts.Unit1, opts.Unit2),

		Stations:       append([]string(nil), session.Stations...),
		StationDetails: append([]cordf.StationLog(nil), session.Logs...),

		PaxFinal:  session.OnboardPax,
		BikeFinal: session.OnboardBike,

		PaxTotalBoarding:  boardedPax,
		BikeTotalBoarding: boardedBikes,

		ArrivalTime:  opts.ArrivalTime,
		Observations: opts.Observations,

		Duration:  util.FormatElapsed(time.Duration(session.ElapsedSeconds) * time.Second),
		Timestamp: time.Now().UnixMilli(),

		Anomalies: session.Anomalies,
	}

	return record, nil
}
