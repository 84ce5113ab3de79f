package routes

import (
	"errors"
	"regexp"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/mission"
	"github.com/corail-counting/corail/pkg/planning"
	"github.com/corail-counting/corail/pkg/util"
	"github.com/gofiber/fiber/v2"
)

// engines hands out the per-agent counting engine; at most one live
// session per agent.
var engines = mission.NewRegistry()

// Agent identifiers are 7 digits plus a letter (the CP number)
var agentIDFormat = regexp.MustCompile(`^\d{7}[A-Za-z]$`)

func AgentsRouter(router fiber.Router) {
	router.Get("/:agentID/session", getSession)
	router.Post("/:agentID/session", startSession)
	router.Post("/:agentID/session/from-plan", startSessionFromPlan)
	router.Post("/:agentID/session/counter", updateCounter)
	router.Post("/:agentID/session/advance", advanceSession)
	router.Post("/:agentID/session/finish", finishSession)
	router.Post("/:agentID/session/finalize", finalizeSession)
	router.Delete("/:agentID/session", cancelSession)

	router.Get("/:agentID/missions", getAgentMissions)
}

type sessionView struct {
	State string `json:"state"`

	TrainNumber string `json:"trainNumber"`
	Route       string `json:"route"`
	Time        string `json:"time"`
	Date        string `json:"date"`

	Stations       []string `json:"stations"`
	Index          int      `json:"index"`
	CurrentStation string   `json:"currentStation"`
	StationName    string   `json:"stationName"`

	IsOrigin   bool `json:"isOrigin"`
	IsTerminus bool `json:"isTerminus"`

	OnboardPax  int `json:"onBoardPax"`
	OnboardBike int `json:"onBoardBike"`

	PaxIn   int `json:"paxIn"`
	PaxOut  int `json:"paxOut"`
	BikeIn  int `json:"bikeIn"`
	BikeOut int `json:"bikeOut"`

	Logs []cordf.StationLog `json:"stationLogs"`

	Anomalies      int `json:"anomalies"`
	ElapsedSeconds int `json:"elapsedSeconds"`
}

func newSessionView(session *mission.Session) sessionView {
	return sessionView{
		State: string(session.State),

		TrainNumber: session.TrainNumber,
		Route:       session.Route,
		Time:        session.Time,
		Date:        session.Date,

		Stations:       session.Stations,
		Index:          session.Index,
		CurrentStation: session.CurrentStation(),
		StationName:    stationDisplayName(session.CurrentStation()),

		IsOrigin:   session.IsOrigin(),
		IsTerminus: session.IsTerminus(),

		OnboardPax:  session.OnboardPax,
		OnboardBike: session.OnboardBike,

		PaxIn:   session.PaxIn,
		PaxOut:  session.PaxOut,
		BikeIn:  session.BikeIn,
		BikeOut: session.BikeOut,

		Logs: session.Logs,

		Anomalies:      session.Anomalies,
		ElapsedSeconds: session.ElapsedSeconds,
	}
}

func getSession(c *fiber.Ctx) error {
	engine := engines.ForAgent(c.Params("agentID"))

	session := engine.Session()
	if session == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No counting session is active",
		})
	}

	return c.JSON(newSessionView(session))
}

type startSessionBody struct {
	TrainNumber string `json:"trainNumber"`
	Route       string `json:"route"`
	Time        string `json:"time"`
	Date        string `json:"date"`

	AgentName string `json:"agentName"`
	AgentUID  string `json:"agentUid"`

	BoardingStation string   `json:"boardingStation"`
	Stations        []string `json:"stations"`
}

func startSession(c *fiber.Ctx) error {
	agentID := c.Params("agentID")

	if !agentIDFormat.MatchString(agentID) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Format requis : 7 chiffres + 1 lettre",
		})
	}

	var body startSessionBody
	if err := c.BodyParser(&body); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	trainNumber := util.OnlyDigits(body.TrainNumber, 6)
	if len(trainNumber) != 6 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "ID Train Invalide",
		})
	}

	session, err := engines.ForAgent(agentID).Start(mission.StartOptions{
		TrainNumber: trainNumber,
		Route:       body.Route,
		Time:        body.Time,
		Date:        body.Date,

		AgentName: body.AgentName,
		AgentID:   agentID,
		AgentUID:  body.AgentUID,

		BoardingStation: body.BoardingStation,
		Stations:        body.Stations,
	})
	if err != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(newSessionView(session))
}

type startFromPlanBody struct {
	Date  string `json:"date"`
	Index int    `json:"index"`

	AgentName string `json:"agentName"`
	AgentUID  string `json:"agentUid"`
}

func startSessionFromPlan(c *fiber.Ctx) error {
	agentID := c.Params("agentID")

	var body startFromPlanBody
	if err := c.BodyParser(&body); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	day, err := planning.NewStore().Day(c.Context(), agentID, body.Date)
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Planning store unavailable",
		})
	}

	if body.Index < 0 || body.Index >= len(day.Trains) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No planned train at that position",
		})
	}

	train := day.Trains[body.Index]

	opts := planning.SeedMission(train, body.Date)
	opts.AgentName = body.AgentName
	opts.AgentID = agentID
	opts.AgentUID = body.AgentUID

	session, err := engines.ForAgent(agentID).Start(opts)
	if err != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	response := fiber.Map{
		"session": newSessionView(session),
	}
	if planning.CirculationWarning(train, body.Date) {
		response["warning"] = "Circulation ?"
	}

	return c.JSON(response)
}

type counterBody struct {
	Counter string `json:"counter"`
	Delta   *int   `json:"delta"`
	Set     *int   `json:"set"`
}

func updateCounter(c *fiber.Ctx) error {
	engine := engines.ForAgent(c.Params("agentID"))

	var body counterBody
	if err := c.BodyParser(&body); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	counter := mission.Counter(body.Counter)

	var err error
	switch {
	case body.Set != nil:
		// Direct override path - bypasses the boundary disables
		err = engine.SetCounter(counter, *body.Set)
	case body.Delta != nil:
		err = engine.Increment(counter, *body.Delta)
	default:
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Either delta or set must be provided",
		})
	}

	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(newSessionView(engine.Session()))
}

func advanceSession(c *fiber.Ctx) error {
	session, err := engines.ForAgent(c.Params("agentID")).Advance()
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(newSessionView(session))
}

func finishSession(c *fiber.Ctx) error {
	session, err := engines.ForAgent(c.Params("agentID")).Finish()
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(newSessionView(session))
}

type finalizeBody struct {
	ConsistType string `json:"enginType"`
	Unit1       string `json:"engin1"`
	Unit2       string `json:"engin2"`

	ArrivalTime  string `json:"arrivalTime"`
	Observations string `json:"observations"`
}

func finalizeSession(c *fiber.Ctx) error {
	engine := engines.ForAgent(c.Params("agentID"))

	var body finalizeBody
	if err := c.BodyParser(&body); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	record, err := engine.Finalize(c.Context(), mission.NewRecordStore(), mission.FinalizeOptions{
		ConsistType: cordf.ConsistType(body.ConsistType),
		Unit1:       util.OnlyDigits(body.Unit1, 3),
		Unit2:       util.OnlyDigits(body.Unit2, 3),

		ArrivalTime:  body.ArrivalTime,
		Observations: body.Observations,
	})

	if errors.Is(err, mission.ErrInvalidConsist) {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"error": "Composition moteur obligatoire (3 chiffres).",
			"field": "consist",
		})
	}
	if err != nil {
		// Session stays in Summarizing; the operator retries once the
		// store is reachable again
		return sessionError(c, err)
	}

	return c.JSON(record)
}

func cancelSession(c *fiber.Ctx) error {
	if err := engines.ForAgent(c.Params("agentID")).Cancel(); err != nil {
		return sessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func getAgentMissions(c *fiber.Ctx) error {
	records, err := mission.NewRecordStore().ForAgent(c.Context(), c.Params("agentID"))
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Record store unavailable",
		})
	}

	return c.JSON(records)
}

func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, mission.ErrNoSession):
		c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, mission.ErrSessionActive):
		c.SendStatus(fiber.StatusConflict)
	case errors.Is(err, mission.ErrWrongState), errors.Is(err, mission.ErrAtTerminus):
		c.SendStatus(fiber.StatusConflict)
	default:
		c.SendStatus(fiber.StatusBadGateway)
	}

	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
