package cordf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsistDescription(t *testing.T) {
	single := MissionRecord{
		ConsistType: ConsistSingle,
		Consists:    []string{"U53482"},
	}
	assert.Equal(t, "US U53482", single.ConsistDescription())

	double := MissionRecord{
		ConsistType: ConsistDouble,
		Consists:    []string{"U53482", "U53518"},
	}
	assert.Equal(t, "UM U53482/U53518", double.ConsistDescription())
}

func TestPlanningDocumentID(t *testing.T) {
	assert.Equal(t, "1234567D_2025-03-14", PlanningDocumentID("1234567D", "2025-03-14"))
}
