package cordf

import "time"

type Event struct {
	Type      EventType
	Timestamp time.Time
	Body      interface{}
}

type EventType string

const (
	EventTypeMissionRecordCreated EventType = "MissionRecordCreated"
	EventTypeMissionRecordDeleted           = "MissionRecordDeleted"

	EventTypePlanningDayUpdated = "PlanningDayUpdated"
)
