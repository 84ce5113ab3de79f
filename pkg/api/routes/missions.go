package routes

import (
	"errors"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/mission"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

func MissionsRouter(router fiber.Router) {
	router.Get("/", listMissions)
	router.Put("/:id", replaceMission)
	router.Delete("/:id", deleteMission)
}

// listMissions is the supervisor read side: every record, reduced to the
// basic field group unless detailed=true.
func listMissions(c *fiber.Ctx) error {
	records, err := mission.NewRecordStore().All(c.Context())
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Record store unavailable",
		})
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, records)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to reduce mission records",
		})
	}

	return c.JSON(reduced)
}

type replaceMissionBody struct {
	AgentID string `json:"agentID"`

	TrainNumber string   `json:"trainNumber"`
	Route       string   `json:"route"`
	ConsistType string   `json:"enginType"`
	Consists    []string `json:"engins"`

	ArrivalTime  string `json:"arrivalTime"`
	Observations string `json:"observations"`
}

// replaceMission rewrites the whole editable field set of a record. The
// store enforces that only the owning agent can edit.
func replaceMission(c *fiber.Ctx) error {
	var body replaceMissionBody
	if err := c.BodyParser(&body); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	err := mission.NewRecordStore().Replace(c.Context(), c.Params("id"), body.AgentID, mission.EditableFields{
		TrainNumber: body.TrainNumber,
		Route:       body.Route,
		ConsistType: cordf.ConsistType(body.ConsistType),
		Consists:    body.Consists,

		ArrivalTime:  body.ArrivalTime,
		Observations: body.Observations,
	})
	if err != nil {
		return recordError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func deleteMission(c *fiber.Ctx) error {
	err := mission.NewRecordStore().Delete(c.Context(), c.Params("id"), c.Query("agent"))
	if err != nil {
		return recordError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func recordError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, mission.ErrRecordNotFound):
		c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, mission.ErrNotOwner):
		c.SendStatus(fiber.StatusForbidden)
	default:
		// Persistence rejection: transient, the edit buffer stays with the
		// caller for an operator-initiated retry
		c.SendStatus(fiber.StatusBadGateway)
	}

	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
