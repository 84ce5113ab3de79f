package mission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/schedule"
	"github.com/rs/zerolog/log"
)

var (
	ErrSessionActive = errors.New("a counting session is already active")
	ErrNoSession     = errors.New("no counting session is active")
	ErrWrongState    = errors.New("operation not valid in the current state")
	ErrAtTerminus    = errors.New("already at the final station")
)

// RecordCreator is the slice of the record store the engine needs to
// finalize a session.
type RecordCreator interface {
	Create(ctx context.Context, record *cordf.MissionRecord) error
}

// Engine owns at most one live Session and is its only writer. Every
// transition goes through the engine under its lock; asynchronous store
// updates never reach the session.
type Engine struct {
	mutex   sync.Mutex
	session *Session

	stopTicker chan struct{}

	// Injectable for deterministic tests
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{
		now: time.Now,
	}
}

// StartOptions carries everything needed to open a counting session.
// Stations overrides the resolved topology for routes the resolver does not
// know; counting then proceeds on the supplied list (degraded, warned).
type StartOptions struct {
	TrainNumber string
	Route       string
	Time        string
	Date        string

	AgentName string
	AgentID   string
	AgentUID  string

	BoardingStation string
	Stations        []string
}

// Start opens a session: Idle -> Counting. The station sequence comes from
// the topology resolver unless explicitly supplied; the current index is
// the boarding station's position in the sequence, or 0 when not found.
func (engine *Engine) Start(opts StartOptions) (*Session, error) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	if engine.session != nil {
		return nil, ErrSessionActive
	}

	stations := opts.Stations
	if len(stations) == 0 {
		stations = schedule.StationsFor(opts.Route)
	}

	if len(stations) == 0 {
		log.Warn().
			Str("train", opts.TrainNumber).
			Str("route", opts.Route).
			Msg("Route topology unknown and no station list supplied - counting degraded")
	}

	index := 0
	for i, code := range stations {
		if code == opts.BoardingStation {
			index = i
			break
		}
	}

	session := &Session{
		State:       StateCounting,
		TrainNumber: opts.TrainNumber,
		Route:       opts.Route,
		Time:        opts.Time,
		Date:        opts.Date,
		AgentName:   opts.AgentName,
		AgentID:     opts.AgentID,
		AgentUID:    opts.AgentUID,
		Stations:    stations,
		Index:       index,
		startedAt:   engine.now(),
	}

	engine.session = session
	engine.stopTicker = make(chan struct{})
	go engine.runTicker(engine.stopTicker)

	log.Info().
		Str("train", session.TrainNumber).
		Str("route", session.Route).
		Str("agent", session.AgentID).
		Str("station", session.CurrentStation()).
		Msg("Counting session started")

	return session.snapshot(), nil
}

// runTicker drives the elapsed-time clock at one update per second while
// the session is counting. No drift correction; the clock only exists for
// the operator display and the recorded duration.
func (engine *Engine) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			engine.mutex.Lock()
			if engine.session != nil && engine.session.State == StateCounting {
				engine.session.ElapsedSeconds++
			}
			engine.mutex.Unlock()
		}
	}
}

func (engine *Engine) haltTicker() {
	if engine.stopTicker != nil {
		close(engine.stopTicker)
		engine.stopTicker = nil
	}
}

// Increment adjusts a staged counter of the current station, honouring the
// boundary disables: boarding at the terminus and alighting at the origin
// are silent no-ops, mirroring disabled buttons rather than raising errors.
// Counters never go below zero.
func (engine *Engine) Increment(counter Counter, delta int) error {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	session := engine.session
	if session == nil {
		return ErrNoSession
	}
	if session.State != StateCounting {
		return ErrWrongState
	}

	if session.counterDisabled(counter) {
		return nil
	}

	target := session.counter(counter)
	if target == nil {
		return nil
	}

	*target += delta
	if *target < 0 {
		*target = 0
	}

	return nil
}

// SetCounter force-writes a staged counter, bypassing the boundary
// disables. This is the direct numeric override path; negative input is
// floored at zero.
func (engine *Engine) SetCounter(counter Counter, value int) error {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	session := engine.session
	if session == nil {
		return ErrNoSession
	}
	if session.State != StateCounting {
		return ErrWrongState
	}

	if value < 0 {
		value = 0
	}

	if target := session.counter(counter); target != nil {
		*target = value
	}

	return nil
}

// Advance commits the current station and moves to the next one. The
// running onboard totals absorb the committed flow with a floor at zero
// for each metric. When the new station is the terminus the out counters
// pre-fill with the full onboard totals: everyone still aboard alights.
func (engine *Engine) Advance() (*Session, error) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	session := engine.session
	if session == nil {
		return nil, ErrNoSession
	}
	if session.State != StateCounting {
		return nil, ErrWrongState
	}
	if session.IsTerminus() || len(session.Stations) <= 1 {
		return nil, ErrAtTerminus
	}

	engine.commitCurrentStation()

	onboardPax, clampedPax := clampToZero(session.OnboardPax + session.PaxIn - session.PaxOut)
	onboardBike, clampedBike := clampToZero(session.OnboardBike + session.BikeIn - session.BikeOut)

	if clampedPax || clampedBike {
		session.Anomalies++
		log.Warn().
			Str("train", session.TrainNumber).
			Str("station", session.CurrentStation()).
			Msg("Onboard total clamped to zero - probable entry error")
	}

	session.OnboardPax = onboardPax
	session.OnboardBike = onboardBike

	session.Index++
	session.PaxIn = 0
	session.BikeIn = 0

	if session.IsTerminus() {
		// Closed system: whoever is still aboard alights at the terminus
		session.PaxOut = session.OnboardPax
		session.BikeOut = session.OnboardBike
	} else {
		session.PaxOut = 0
		session.BikeOut = 0
	}

	return session.snapshot(), nil
}

// commitCurrentStation appends the immutable StationLog for the station
// being left, with whatever counter values are staged.
func (engine *Engine) commitCurrentStation() {
	session := engine.session
	code := session.CurrentStation()

	session.Logs = append(session.Logs, cordf.StationLog{
		Code:      code,
		Name:      schedule.StationName(code),
		PaxIn:     session.PaxIn,
		PaxOut:    session.PaxOut,
		BikeIn:    session.BikeIn,
		BikeOut:   session.BikeOut,
		Timestamp: engine.now().Format("15:04"),
	})
}

// Finish moves Counting -> Summarizing at any index; early termination is
// allowed. The staged counters become the final StationLog and the elapsed
// clock stops.
func (engine *Engine) Finish() (*Session, error) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	session := engine.session
	if session == nil {
		return nil, ErrNoSession
	}
	if session.State != StateCounting {
		return nil, ErrWrongState
	}

	engine.commitCurrentStation()

	onboardPax, clampedPax := clampToZero(session.OnboardPax + session.PaxIn - session.PaxOut)
	onboardBike, clampedBike := clampToZero(session.OnboardBike + session.BikeIn - session.BikeOut)
	if clampedPax || clampedBike {
		session.Anomalies++
	}

	session.OnboardPax = onboardPax
	session.OnboardBike = onboardBike

	session.State = StateSummarizing
	engine.haltTicker()

	log.Info().
		Str("train", session.TrainNumber).
		Int("stations", len(session.Logs)).
		Msg("Counting finished, awaiting summary")

	return session.snapshot(), nil
}

// Finalize validates the consist, builds the immutable MissionRecord and
// hands it to the store. Only an accepted create completes the transition;
// a rejected one leaves the session in Summarizing so the operator can
// retry instead of silently losing the count.
func (engine *Engine) Finalize(ctx context.Context, store RecordCreator, opts FinalizeOptions) (*cordf.MissionRecord, error) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	session := engine.session
	if session == nil {
		return nil, ErrNoSession
	}
	if session.State != StateSummarizing {
		return nil, ErrWrongState
	}

	record, err := buildRecord(session, opts)
	if err != nil {
		return nil, err
	}

	if err := store.Create(ctx, record); err != nil {
		log.Error().Err(err).Str("train", session.TrainNumber).Msg("Mission record rejected by store")
		return nil, err
	}

	session.State = StateFinalized
	engine.session = nil

	log.Info().
		Str("train", record.TrainNumber).
		Str("agent", record.AgentID).
		Int("paxTotalBoarding", record.PaxTotalBoarding).
		Msg("Mission record created")

	return record, nil
}

// Cancel discards the session without producing a record. Valid from
// Counting or Summarizing.
func (engine *Engine) Cancel() error {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	session := engine.session
	if session == nil {
		return ErrNoSession
	}
	if session.State != StateCounting && session.State != StateSummarizing {
		return ErrWrongState
	}

	engine.haltTicker()
	engine.session = nil

	log.Info().Str("train", session.TrainNumber).Msg("Counting session cancelled")

	return nil
}

// Session returns a copy of the live session, or nil when idle. The copy
// keeps callers from mutating engine-owned state.
func (engine *Engine) Session() *Session {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	if engine.session == nil {
		return nil
	}

	return engine.session.snapshot()
}

func (session *Session) snapshot() *Session {
	clone := *session

	clone.Stations = append([]string(nil), session.Stations...)
	clone.Logs = append([]cordf.StationLog(nil), session.Logs...)

	return &clone
}

// Registry hands out one engine per agent, preserving the single-session
// invariant per agent without any cross-agent scheduling.
type Registry struct {
	mutex   sync.Mutex
	engines map[string]*Engine
}

func NewRegistry() *Registry {
	return &Registry{
		engines: map[string]*Engine{},
	}
}

func (registry *Registry) ForAgent(agentID string) *Engine {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	engine, ok := registry.engines[agentID]
	if !ok {
		engine = NewEngine()
		registry.engines[agentID] = engine
	}

	return engine
}
