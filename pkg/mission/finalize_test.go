package mission

import (
	"testing"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/stretchr/testify/assert"
)

func TestValidateConsist(t *testing.T) {
	assert.NoError(t, ValidateConsist(cordf.ConsistSingle, "482", ""))
	assert.NoError(t, ValidateConsist(cordf.ConsistDouble, "482", "518"))

	assert.ErrorIs(t, ValidateConsist(cordf.ConsistSingle, "", ""), ErrInvalidConsist)
	assert.ErrorIs(t, ValidateConsist(cordf.ConsistSingle, "48", ""), ErrInvalidConsist)
	assert.ErrorIs(t, ValidateConsist(cordf.ConsistSingle, "4821", ""), ErrInvalidConsist)
	assert.ErrorIs(t, ValidateConsist(cordf.ConsistSingle, "abc", ""), ErrInvalidConsist)

	// The second unit only matters for a double
	assert.ErrorIs(t, ValidateConsist(cordf.ConsistDouble, "482", ""), ErrInvalidConsist)
	assert.ErrorIs(t, ValidateConsist(cordf.ConsistDouble, "482", "5x8"), ErrInvalidConsist)
}

func TestConsistIdentifiers(t *testing.T) {
	assert.Equal(t, []string{"U53482"}, ConsistIdentifiers(cordf.ConsistSingle, "482", ""))
	assert.Equal(t, []string{"U53482", "U53518"}, ConsistIdentifiers(cordf.ConsistDouble, "482", "518"))
}

func TestComputeTotals(t *testing.T) {
	boardedPax, boardedBikes := ComputeTotals(nil)
	assert.Equal(t, 0, boardedPax)
	assert.Equal(t, 0, boardedBikes)

	logs := []cordf.StationLog{
		{PaxIn: 5, PaxOut: 0, BikeIn: 1},
		{PaxIn: 2, PaxOut: 3, BikeIn: 0, BikeOut: 1},
		{PaxIn: 0, PaxOut: 4},
	}

	boardedPax, boardedBikes = ComputeTotals(logs)
	assert.Equal(t, 7, boardedPax)
	assert.Equal(t, 1, boardedBikes)
}
