package cordf

import "fmt"

type PlanningDayStatus string

const (
	PlanningDayOff    PlanningDayStatus = "repos"
	PlanningDayOnDuty                   = "service"
)

// PlannedTrain is one train assigned to an agent for a day. Manual marks
// numbers that were typed in without a matching registry entry.
type PlannedTrain struct {
	Number string `json:"number" bson:"number"`
	Route  string `json:"route" bson:"route"`
	Time   string `json:"time" bson:"time"`
	Manual bool   `json:"manual" bson:"manual"`
}

// PlanningDay is the per-agent per-date assignment record. It is always
// written wholesale: every edit reads the document, replaces the relevant
// fields and saves the full record back.
type PlanningDay struct {
	AgentID string `json:"agentID" bson:"agentID"`
	Date    string `json:"date" bson:"date"`

	Status PlanningDayStatus `json:"status" bson:"status"`

	// Only meaningful while on duty
	StartTime string `json:"startTime" bson:"startTime"`
	EndTime   string `json:"endTime" bson:"endTime"`

	Trains []PlannedTrain `json:"trains" bson:"trains"`

	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// DocumentID is the planning collection key for an agent and date.
func PlanningDocumentID(agentID string, date string) string {
	return fmt.Sprintf("%s_%s", agentID, date)
}
