package cordf

// ConsistType describes whether the mission ran a single unit (US) or two
// coupled units (UM).
type ConsistType string

const (
	ConsistSingle ConsistType = "US"
	ConsistDouble             = "UM"
)

// ConsistUnitPrefix is the fleet series every unit identifier belongs to.
// Operators only key in the trailing three digits.
const ConsistUnitPrefix = "U53"

// StationLog is the committed per-station flow for one stop of a mission.
// Logs are immutable once appended to a session.
type StationLog struct {
	Code string `json:"code" bson:"code" groups:"detailed"`
	Name string `json:"name" bson:"name" groups:"detailed"`

	PaxIn  int `json:"paxIn" bson:"paxIn" groups:"detailed"`
	PaxOut int `json:"paxOut" bson:"paxOut" groups:"detailed"`

	BikeIn  int `json:"bikeIn" bson:"bikeIn" groups:"detailed"`
	BikeOut int `json:"bikeOut" bson:"bikeOut" groups:"detailed"`

	// Wall clock HH:MM at the moment of commit
	Timestamp string `json:"timestamp" bson:"timestamp" groups:"detailed"`
}

// MissionRecord is the persisted, immutable result of a finished counting
// session. One document per mission in the missions collection.
type MissionRecord struct {
	ID string `json:"id" bson:"_id,omitempty" groups:"basic"`

	TrainNumber string `json:"trainNumber" bson:"trainNumber" groups:"basic"`
	Route       string `json:"route" bson:"route" groups:"basic"`
	Time        string `json:"time" bson:"time" groups:"basic"`
	Date        string `json:"date" bson:"date" groups:"basic"`

	AgentName string `json:"agentName" bson:"agentName" groups:"basic"`
	AgentID   string `json:"agentID" bson:"agentID" groups:"basic"`
	AgentUID  string `json:"agentUid" bson:"agentUid" groups:"internal"`

	ConsistType ConsistType `json:"enginType" bson:"enginType" groups:"basic"`
	Consists    []string    `json:"engins" bson:"engins" groups:"basic"`

	Stations       []string     `json:"stations" bson:"stations" groups:"detailed"`
	StationDetails []StationLog `json:"stationDetails" bson:"stationDetails" groups:"detailed"`

	PaxFinal  int `json:"paxFinal" bson:"paxFinal" groups:"basic"`
	BikeFinal int `json:"bikeFinal" bson:"bikeFinal" groups:"basic"`

	PaxTotalBoarding  int `json:"paxTotalBoarding" bson:"paxTotalBoarding" groups:"basic"`
	BikeTotalBoarding int `json:"bikeTotalBoarding" bson:"bikeTotalBoarding" groups:"basic"`

	ArrivalTime  string `json:"arrivalTime" bson:"arrivalTime" groups:"detailed"`
	Observations string `json:"observations" bson:"observations" groups:"detailed"`

	// Elapsed counting time as HH:MM:SS
	Duration string `json:"duration" bson:"duration" groups:"detailed"`

	// Unix milliseconds at creation, used for history ordering
	Timestamp int64 `json:"timestamp" bson:"timestamp" groups:"basic"`

	// Count of clamp-to-zero corrections applied during counting. Zero on a
	// clean session; non-zero flags probable operator entry errors for review.
	Anomalies int `json:"anomalies" bson:"anomalies" groups:"detailed"`
}

// ConsistDescription renders the consist the way exports and summaries show
// it, e.g. "UM U53482/U53518".
func (record *MissionRecord) ConsistDescription() string {
	description := string(record.ConsistType)

	for i, unit := range record.Consists {
		if i == 0 {
			description += " " + unit
		} else {
			description += "/" + unit
		}
	}

	return description
}
