// Package planning holds the per-agent per-day assignment records the
// counting engine consumes. Every edit is a read-modify-write of the whole
// document; the mutators here are pure so the store can apply them and save
// the result wholesale.
package planning

import (
	"time"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/mission"
	"github.com/corail-counting/corail/pkg/schedule"
	"github.com/corail-counting/corail/pkg/util"
)

const defaultShiftStart = "08:00"
const defaultShiftEnd = "16:00"

// WithStatus returns a copy of the day with the duty status replaced. Going
// on duty fills default shift times when none are set; going off duty
// clears them. Assigned trains survive either way.
func WithStatus(day cordf.PlanningDay, status cordf.PlanningDayStatus) cordf.PlanningDay {
	day.Status = status

	if status == cordf.PlanningDayOnDuty {
		if day.StartTime == "" {
			day.StartTime = defaultShiftStart
		}
		if day.EndTime == "" {
			day.EndTime = defaultShiftEnd
		}
	} else {
		day.StartTime = ""
		day.EndTime = ""
	}

	return day
}

// WithTimes returns a copy of the day with the shift window replaced.
func WithTimes(day cordf.PlanningDay, startTime string, endTime string) cordf.PlanningDay {
	if startTime != "" {
		day.StartTime = startTime
	}
	if endTime != "" {
		day.EndTime = endTime
	}

	return day
}

// WithTrain returns a copy of the day with a train appended. A number the
// schedule registry knows pulls its route and departure time from there;
// anything else is flagged as a manual entry with placeholder data.
func WithTrain(day cordf.PlanningDay, trainNumber string) cordf.PlanningDay {
	trainNumber = util.OnlyDigits(trainNumber, 6)

	planned := cordf.PlannedTrain{
		Number: trainNumber,
		Route:  schedule.RouteUnclassified,
		Time:   "00:00",
		Manual: true,
	}

	if entry, ok := schedule.Lookup(trainNumber); ok {
		planned.Route = entry.Route
		planned.Time = entry.Departure
		planned.Manual = false
	}

	if day.Status == "" {
		day = WithStatus(day, cordf.PlanningDayOnDuty)
	}

	trains := make([]cordf.PlannedTrain, 0, len(day.Trains)+1)
	trains = append(trains, day.Trains...)
	day.Trains = append(trains, planned)

	return day
}

// WithoutTrain returns a copy of the day with the train at the given
// position removed. An out-of-range index leaves the day untouched.
func WithoutTrain(day cordf.PlanningDay, index int) cordf.PlanningDay {
	if index < 0 || index >= len(day.Trains) {
		return day
	}

	trains := make([]cordf.PlannedTrain, 0, len(day.Trains)-1)
	trains = append(trains, day.Trains[:index]...)
	day.Trains = append(trains, day.Trains[index+1:]...)

	return day
}

// CirculationWarning reports whether a planned train looks like it does not
// run on the planned date. Manual entries and unknown numbers never warn;
// the operator's confirmation outranks stale timetable data either way.
func CirculationWarning(train cordf.PlannedTrain, date string) bool {
	if train.Manual {
		return false
	}

	entry, ok := schedule.Lookup(train.Number)
	if !ok {
		return false
	}

	parsed, err := util.ParseISODate(date)
	if err != nil {
		return false
	}

	return !entry.IsActiveOn(parsed)
}

// SeedMission turns a confirmed planned train into the start options for a
// counting session. The boarding station defaults to the route's origin.
func SeedMission(train cordf.PlannedTrain, date string) mission.StartOptions {
	opts := mission.StartOptions{
		TrainNumber: train.Number,
		Route:       train.Route,
		Time:        train.Time,
		Date:        date,
	}

	if stations := schedule.StationsFor(train.Route); len(stations) > 0 {
		opts.BoardingStation = stations[0]
	}

	return opts
}

func touch(day cordf.PlanningDay) cordf.PlanningDay {
	day.UpdatedAt = time.Now().UnixMilli()

	return day
}
