package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationsForForward(t *testing.T) {
	stations := StationsFor("NS-CLI")
	require.Len(t, stations, 8)
	assert.Equal(t, "NS", stations[0])
	assert.Equal(t, "CLI", stations[7])
}

func TestStationsForReturnWorking(t *testing.T) {
	forward := StationsFor("NS-CHU")
	reverse := StationsFor("CHU-NS")

	require.Len(t, forward, 11)
	require.Len(t, reverse, 11)

	for i := range forward {
		assert.Equal(t, forward[i], reverse[len(reverse)-1-i])
	}
}

func TestStationsForUnknown(t *testing.T) {
	assert.Nil(t, StationsFor("NS-XYZ"))
	assert.Nil(t, StationsFor(RouteUnclassified))
	assert.Nil(t, StationsFor(""))
}

func TestStationsForReturnsCopy(t *testing.T) {
	stations := StationsFor("NS-NSE")
	require.NotEmpty(t, stations)

	stations[0] = "MUTATED"

	fresh := StationsFor("NS-NSE")
	assert.Equal(t, "NS", fresh[0])
}

func TestStationName(t *testing.T) {
	assert.Equal(t, "Nantes", StationName("NS"))
	assert.Equal(t, "Clisson", StationName("CLI"))

	// Unknown codes render as themselves
	assert.Equal(t, "XYZ", StationName("XYZ"))
}
