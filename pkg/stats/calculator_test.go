package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	records []cordf.MissionRecord
	err     error
}

func (finder *fakeFinder) All(ctx context.Context) ([]cordf.MissionRecord, error) {
	return finder.records, finder.err
}

func TestOverview(t *testing.T) {
	finder := &fakeFinder{
		records: []cordf.MissionRecord{
			{
				Route: "NS-CLI",
				Date:  "2025-03-14",
				StationDetails: []cordf.StationLog{
					{PaxIn: 5, BikeIn: 1},
					{PaxIn: 2},
				},
			},
			{
				Route: "NS-CLI",
				Date:  "2025-03-15",
				StationDetails: []cordf.StationLog{
					{PaxIn: 3},
				},
			},
			{
				Route: "NS-CHU",
				Date:  "2025-03-14",
				StationDetails: []cordf.StationLog{
					{PaxIn: 10, BikeIn: 2},
				},
			},
		},
	}

	overview, err := NewCalculator(finder).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, overview.Missions)
	assert.Equal(t, 20, overview.BoardedPax)
	assert.Equal(t, 3, overview.BoardedBikes)

	require.Len(t, overview.Routes, 2)
	assert.Equal(t, "NS-CHU", overview.Routes[0].Route)
	assert.Equal(t, 10, overview.Routes[0].BoardedPax)
	assert.Equal(t, "NS-CLI", overview.Routes[1].Route)
	assert.Equal(t, 2, overview.Routes[1].Missions)
	assert.Equal(t, 10, overview.Routes[1].BoardedPax)
	assert.Equal(t, 1, overview.Routes[1].BoardedBikes)

	require.Len(t, overview.Days, 2)
	assert.Equal(t, "2025-03-14", overview.Days[0].Date)
	assert.Equal(t, 2, overview.Days[0].Missions)
	assert.Equal(t, 15, overview.Days[0].BoardedPax)
	assert.Equal(t, "2025-03-15", overview.Days[1].Date)
	assert.Equal(t, 3, overview.Days[1].BoardedPax)
}

func TestOverviewEmpty(t *testing.T) {
	overview, err := NewCalculator(&fakeFinder{}).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, overview.Missions)
	assert.Empty(t, overview.Routes)
	assert.Empty(t, overview.Days)
}

func TestOverviewStoreError(t *testing.T) {
	finder := &fakeFinder{err: errors.New("no reachable servers")}

	_, err := NewCalculator(finder).Overview(context.Background())
	assert.Error(t, err)
}
