package mission

import (
	"context"
	"errors"
	"testing"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	records []*cordf.MissionRecord
	err     error
}

func (store *fakeStore) Create(ctx context.Context, record *cordf.MissionRecord) error {
	if store.err != nil {
		return store.err
	}

	store.records = append(store.records, record)

	return nil
}

func startClissonRun(t *testing.T, engine *Engine) *Session {
	t.Helper()

	session, err := engine.Start(StartOptions{
		TrainNumber: "859769",
		Route:       "NS-CLI",
		Time:        "06:13",
		Date:        "2025-03-14",
		AgentName:   "Jean Dupont",
		AgentID:     "1234567D",
	})
	require.NoError(t, err)

	return session
}

func TestFullRunToTerminus(t *testing.T) {
	engine := NewEngine()
	session := startClissonRun(t, engine)

	require.Len(t, session.Stations, 8)
	assert.Equal(t, "NS", session.CurrentStation())
	assert.True(t, session.IsOrigin())

	// Alighting is disabled at the origin
	require.NoError(t, engine.Increment(CounterPaxOut, 3))
	require.NoError(t, engine.Increment(CounterPaxIn, 5))
	require.NoError(t, engine.Increment(CounterBikeIn, 1))

	session, err := engine.Advance()
	require.NoError(t, err)
	assert.Equal(t, 5, session.OnboardPax)
	assert.Equal(t, 1, session.OnboardBike)
	require.Len(t, session.Logs, 1)
	assert.Equal(t, "NS", session.Logs[0].Code)
	assert.Equal(t, 5, session.Logs[0].PaxIn)
	assert.Equal(t, 0, session.Logs[0].PaxOut)

	require.NoError(t, engine.Increment(CounterPaxIn, 2))
	require.NoError(t, engine.Increment(CounterPaxOut, 1))

	session, err = engine.Advance()
	require.NoError(t, err)
	assert.Equal(t, 6, session.OnboardPax)

	// Ride through the middle of the line with no flow
	for i := 0; i < 5; i++ {
		session, err = engine.Advance()
		require.NoError(t, err)
	}

	// Terminus: out counters pre-fill with whoever is still aboard
	assert.True(t, session.IsTerminus())
	assert.Equal(t, "CLI", session.CurrentStation())
	assert.Equal(t, 6, session.PaxOut)
	assert.Equal(t, 1, session.BikeOut)

	// Boarding is disabled at the terminus
	require.NoError(t, engine.Increment(CounterPaxIn, 4))
	assert.Equal(t, 0, engine.Session().PaxIn)

	_, err = engine.Advance()
	assert.ErrorIs(t, err, ErrAtTerminus)

	session, err = engine.Finish()
	require.NoError(t, err)
	assert.Equal(t, State(StateSummarizing), session.State)
	require.Len(t, session.Logs, 8)
	assert.Equal(t, "CLI", session.Logs[7].Code)
	assert.Equal(t, 6, session.Logs[7].PaxOut)
	assert.Equal(t, 0, session.OnboardPax)
	assert.Equal(t, 0, session.OnboardBike)
	assert.Equal(t, 0, session.Anomalies)

	store := &fakeStore{}
	record, err := engine.Finalize(context.Background(), store, FinalizeOptions{
		ConsistType: cordf.ConsistSingle,
		Unit1:       "482",
	})
	require.NoError(t, err)
	require.Len(t, store.records, 1)

	assert.Equal(t, "859769", record.TrainNumber)
	assert.Equal(t, 7, record.PaxTotalBoarding)
	assert.Equal(t, 1, record.BikeTotalBoarding)
	assert.Equal(t, 0, record.PaxFinal)
	assert.Equal(t, []string{"U53482"}, record.Consists)
	assert.Len(t, record.StationDetails, 8)

	// Engine is idle again
	assert.Nil(t, engine.Session())
}

func TestStartRejectsSecondSession(t *testing.T) {
	engine := NewEngine()
	startClissonRun(t, engine)
	defer engine.Cancel()

	_, err := engine.Start(StartOptions{TrainNumber: "859767", Route: "NS-CLI"})
	assert.ErrorIs(t, err, ErrSessionActive)
}

func TestStartAtIntermediateBoardingStation(t *testing.T) {
	engine := NewEngine()

	session, err := engine.Start(StartOptions{
		TrainNumber:     "859769",
		Route:           "NS-CLI",
		BoardingStation: "VT",
	})
	require.NoError(t, err)
	defer engine.Cancel()

	assert.Equal(t, 3, session.Index)
	assert.Equal(t, "VT", session.CurrentStation())
	assert.False(t, session.IsOrigin())
}

func TestStartWithStationOverride(t *testing.T) {
	engine := NewEngine()

	session, err := engine.Start(StartOptions{
		TrainNumber: "999999",
		Route:       "NON RÉPERTORIÉ",
		Stations:    []string{"NS", "CLI"},
	})
	require.NoError(t, err)
	defer engine.Cancel()

	require.Len(t, session.Stations, 2)
	assert.Equal(t, "NS", session.CurrentStation())
}

func TestClampAbsorbsNegativeOnboard(t *testing.T) {
	engine := NewEngine()
	startClissonRun(t, engine)
	defer engine.Cancel()

	// Force an alighting count at the origin through the override path
	require.NoError(t, engine.SetCounter(CounterPaxOut, 5))

	session, err := engine.Advance()
	require.NoError(t, err)

	assert.Equal(t, 0, session.OnboardPax)
	assert.Equal(t, 1, session.Anomalies)
}

func TestIncrementNeverGoesNegative(t *testing.T) {
	engine := NewEngine()
	startClissonRun(t, engine)
	defer engine.Cancel()

	require.NoError(t, engine.Increment(CounterPaxIn, 3))
	require.NoError(t, engine.Increment(CounterPaxIn, -5))

	assert.Equal(t, 0, engine.Session().PaxIn)

	require.NoError(t, engine.SetCounter(CounterBikeIn, -2))
	assert.Equal(t, 0, engine.Session().BikeIn)
}

func TestCancelDiscardsWithoutRecord(t *testing.T) {
	engine := NewEngine()
	startClissonRun(t, engine)

	require.NoError(t, engine.Increment(CounterPaxIn, 10))
	_, err := engine.Advance()
	require.NoError(t, err)

	require.NoError(t, engine.Cancel())
	assert.Nil(t, engine.Session())

	assert.ErrorIs(t, engine.Increment(CounterPaxIn, 1), ErrNoSession)
	assert.ErrorIs(t, engine.Cancel(), ErrNoSession)
}

func TestEarlyFinish(t *testing.T) {
	engine := NewEngine()
	startClissonRun(t, engine)

	require.NoError(t, engine.Increment(CounterPaxIn, 4))
	_, err := engine.Advance()
	require.NoError(t, err)

	// Mission aborted mid-line, summary still works from partial logs
	session, err := engine.Finish()
	require.NoError(t, err)
	assert.Equal(t, State(StateSummarizing), session.State)
	require.Len(t, session.Logs, 2)

	store := &fakeStore{}
	record, err := engine.Finalize(context.Background(), store, FinalizeOptions{
		ConsistType: cordf.ConsistSingle,
		Unit1:       "518",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, record.PaxTotalBoarding)
}

func TestFinalizeRejectedByStoreKeepsSession(t *testing.T) {
	engine := NewEngine()
	startClissonRun(t, engine)

	_, err := engine.Finish()
	require.NoError(t, err)

	store := &fakeStore{err: errors.New("connection reset")}
	_, err = engine.Finalize(context.Background(), store, FinalizeOptions{
		ConsistType: cordf.ConsistSingle,
		Unit1:       "482",
	})
	require.Error(t, err)

	// The count is not lost: the session stays summarizing for a retry
	session := engine.Session()
	require.NotNil(t, session)
	assert.Equal(t, State(StateSummarizing), session.State)

	store.err = nil
	_, err = engine.Finalize(context.Background(), store, FinalizeOptions{
		ConsistType: cordf.ConsistSingle,
		Unit1:       "482",
	})
	require.NoError(t, err)
	assert.Nil(t, engine.Session())
}

func TestFinalizeRequiresSummarizing(t *testing.T) {
	engine := NewEngine()
	startClissonRun(t, engine)
	defer engine.Cancel()

	store := &fakeStore{}
	_, err := engine.Finalize(context.Background(), store, FinalizeOptions{
		ConsistType: cordf.ConsistSingle,
		Unit1:       "482",
	})
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Empty(t, store.records)
}

func TestDegenerateSingleStationSequence(t *testing.T) {
	engine := NewEngine()

	session, err := engine.Start(StartOptions{
		TrainNumber: "999999",
		Stations:    []string{"NS"},
	})
	require.NoError(t, err)

	assert.True(t, session.IsOrigin())
	assert.True(t, session.IsTerminus())

	_, err = engine.Advance()
	assert.ErrorIs(t, err, ErrAtTerminus)

	session, err = engine.Finish()
	require.NoError(t, err)
	assert.Len(t, session.Logs, 1)

	require.NoError(t, engine.Cancel())
}

func TestRegistryOneEnginePerAgent(t *testing.T) {
	registry := NewRegistry()

	first := registry.ForAgent("1234567D")
	second := registry.ForAgent("7654321A")

	assert.Same(t, first, registry.ForAgent("1234567D"))
	assert.NotSame(t, first, second)
}
