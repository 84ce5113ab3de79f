package mission

import (
	"time"

	"github.com/corail-counting/corail/pkg/cordf"
)

type State string

const (
	StateIdle        State = "Idle"
	StateCounting          = "Counting"
	StateSummarizing       = "Summarizing"
	StateFinalized         = "Finalized"
)

// Counter identifies one of the four staged flow counters of the current
// station.
type Counter string

const (
	CounterPaxIn   Counter = "paxIn"
	CounterPaxOut          = "paxOut"
	CounterBikeIn          = "bikeIn"
	CounterBikeOut         = "bikeOut"
)

// Session is one live counting run of one train by one agent. It is owned
// exclusively by an Engine and only ever mutated through the engine's
// transitions; store pushes and other goroutines never touch it.
type Session struct {
	State State

	TrainNumber string
	Route       string
	Time        string
	Date        string
	AgentName   string
	AgentID     string
	AgentUID    string

	// Ordered station sequence for the direction being run
	Stations []string
	Index    int

	OnboardPax  int
	OnboardBike int

	// Staged counters for the current station, not yet committed
	PaxIn   int
	PaxOut  int
	BikeIn  int
	BikeOut int

	Logs []cordf.StationLog

	// Times the clamp-to-zero floor absorbed a negative onboard total.
	// The arithmetic deliberately swallows the error; this keeps it visible.
	Anomalies int

	ElapsedSeconds int

	startedAt time.Time
}

// IsOrigin reports whether the current station is the first of the
// sequence. Alighting is disabled there: nobody can leave a train that has
// not yet carried anyone.
func (session *Session) IsOrigin() bool {
	return session.Index == 0
}

// IsTerminus reports whether the current station is the last of the
// sequence. Boarding is disabled there and Advance is no longer available.
func (session *Session) IsTerminus() bool {
	return session.Index == len(session.Stations)-1
}

// CurrentStation returns the code of the station currently being counted.
func (session *Session) CurrentStation() string {
	if session.Index < 0 || session.Index >= len(session.Stations) {
		return ""
	}

	return session.Stations[session.Index]
}

// counterDisabled applies the boundary rules: no boarding at the terminus,
// no alighting at the origin. These are business-rule disables, not
// validation errors - a direct override can still force a value.
func (session *Session) counterDisabled(counter Counter) bool {
	switch counter {
	case CounterPaxIn, CounterBikeIn:
		return session.IsTerminus()
	case CounterPaxOut, CounterBikeOut:
		return session.IsOrigin()
	}

	return false
}

func (session *Session) counter(counter Counter) *int {
	switch counter {
	case CounterPaxIn:
		return &session.PaxIn
	case CounterPaxOut:
		return &session.PaxOut
	case CounterBikeIn:
		return &session.BikeIn
	case CounterBikeOut:
		return &session.BikeOut
	}

	return nil
}

// clampToZero floors a running onboard total at zero. A negative total is
// an operator entry error, not a modelled physical state; callers count
// each absorption as an anomaly.
func clampToZero(value int) (int, bool) {
	if value < 0 {
		return 0, true
	}

	return value, false
}
