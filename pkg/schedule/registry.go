package schedule

import (
	_ "embed"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed data/timetable.yaml
var timetableYaml []byte

type DayClass string

const (
	DayClassWeekday  DayClass = "W"
	DayClassSaturday          = "S"
	DayClassSunday            = "D"
)

// RouteUnclassified is returned by Classify when a train number matches no
// known numbering pattern. A mission on such a train can still run; the
// caller surfaces it as an advisory.
const RouteUnclassified = "NON RÉPERTORIÉ"

// Entry is one timetabled train. Entries are loaded once from the embedded
// timetable and never mutated.
type Entry struct {
	Departure string     `yaml:"departure"`
	Arrival   string     `yaml:"arrival"`
	Route     string     `yaml:"route"`
	Days      []DayClass `yaml:"days"`
}

type timetable struct {
	Stations  map[string]string   `yaml:"stations"`
	Sequences map[string][]string `yaml:"sequences"`
	Trains    map[string]Entry    `yaml:"trains"`
}

var registry timetable

func init() {
	if err := yaml.Unmarshal(timetableYaml, &registry); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse embedded timetable")
	}
}

// Lookup returns the timetable entry for a train number. Absence is
// expected, not an error - plenty of real trains are not in the registry.
func Lookup(trainNumber string) (Entry, bool) {
	entry, ok := registry.Trains[trainNumber]

	return entry, ok
}

// Classify guesses the route of a train number that is absent from the
// registry. The numbering scheme encodes the line in the fourth digit and
// the direction in the parity of the last digit:
//
//	8595xx - T1 Nantes / Nort-sur-Erdre (even towards Nort)
//	8596xx - T1 Nantes / Châteaubriant (even towards Châteaubriant)
//	8597xx - T2 Nantes / Clisson (odd towards Clisson)
//
// Classify is total over 6 digit inputs: anything outside those series
// yields RouteUnclassified, never an error.
func Classify(trainNumber string) string {
	if len(trainNumber) != 6 {
		return RouteUnclassified
	}

	lastDigit := trainNumber[5]
	even := (lastDigit-'0')%2 == 0

	switch trainNumber[3] {
	case '5':
		if even {
			return "NS-NSE"
		}
		return "NSE-NS"
	case '6':
		if even {
			return "NS-CHU"
		}
		return "CHU-NS"
	case '7':
		if !even {
			return "NS-CLI"
		}
		return "CLI-NS"
	}

	return RouteUnclassified
}

// DayClassFor buckets a calendar date into the timetable day classes.
func DayClassFor(date time.Time) DayClass {
	switch date.Weekday() {
	case time.Sunday:
		return DayClassSunday
	case time.Saturday:
		return DayClassSaturday
	}

	return DayClassWeekday
}

// DayLabel is the operator-facing French label for a date's day class.
func DayLabel(date time.Time) string {
	switch DayClassFor(date) {
	case DayClassSunday:
		return "Dimanche"
	case DayClassSaturday:
		return "Samedi"
	}

	return "Lundi au Vendredi"
}

// IsActiveOn reports whether the entry runs on the given date. An entry
// with no day class data is treated as always active: missing calendar data
// must never block a manually confirmed mission.
func (entry *Entry) IsActiveOn(date time.Time) bool {
	if len(entry.Days) == 0 {
		return true
	}

	dayClass := DayClassFor(date)
	for _, day := range entry.Days {
		if day == dayClass {
			return true
		}
	}

	return false
}

// DepartureClock splits the departure time into hour and minute components.
func (entry *Entry) DepartureClock() (string, string) {
	parts := strings.SplitN(entry.Departure, ":", 2)
	if len(parts) != 2 {
		return "00", "00"
	}

	return parts[0], parts[1]
}
