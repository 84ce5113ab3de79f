package routes

import (
	"strconv"
	"strings"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/planning"
	"github.com/gofiber/fiber/v2"
)

func PlanningRouter(router fiber.Router) {
	router.Get("/:agentID", getPlanningWeek)
	router.Get("/:agentID/:date", getPlanningDay)
	router.Put("/:agentID/:date/status", setPlanningStatus)
	router.Put("/:agentID/:date/times", setPlanningTimes)
	router.Post("/:agentID/:date/trains", addPlannedTrain)
	router.Delete("/:agentID/:date/trains/:index", removePlannedTrain)
}

func getPlanningWeek(c *fiber.Ctx) error {
	dates := []string{}
	if datesQuery := c.Query("dates"); datesQuery != "" {
		dates = append(dates, splitDates(datesQuery)...)
	}

	if len(dates) == 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "A dates filter must be applied to the request",
		})
	}

	days, err := planning.NewStore().Week(c.Context(), c.Params("agentID"), dates)
	if err != nil {
		return planningStoreError(c)
	}

	return c.JSON(days)
}

func getPlanningDay(c *fiber.Ctx) error {
	day, err := planning.NewStore().Day(c.Context(), c.Params("agentID"), c.Params("date"))
	if err != nil {
		return planningStoreError(c)
	}

	response := fiber.Map{
		"day": day,
	}

	warnings := []string{}
	for _, train := range day.Trains {
		if planning.CirculationWarning(train, day.Date) {
			warnings = append(warnings, train.Number)
		}
	}
	if len(warnings) > 0 {
		response["circulationWarnings"] = warnings
	}

	return c.JSON(response)
}

type planningStatusBody struct {
	Status string `json:"status"`
}

func setPlanningStatus(c *fiber.Ctx) error {
	var body planningStatusBody
	if err := c.BodyParser(&body); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	status := cordf.PlanningDayStatus(body.Status)
	if status != cordf.PlanningDayOff && status != cordf.PlanningDayOnDuty {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Status must be repos or service",
		})
	}

	return updatePlanningDay(c, func(day cordf.PlanningDay) cordf.PlanningDay {
		return planning.WithStatus(day, status)
	})
}

type planningTimesBody struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func setPlanningTimes(c *fiber.Ctx) error {
	var body planningTimesBody
	if err := c.BodyParser(&body); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	return updatePlanningDay(c, func(day cordf.PlanningDay) cordf.PlanningDay {
		return planning.WithTimes(day, body.StartTime, body.EndTime)
	})
}

type plannedTrainBody struct {
	Number string `json:"number"`
}

func addPlannedTrain(c *fiber.Ctx) error {
	var body plannedTrainBody
	if err := c.BodyParser(&body); err != nil || body.Number == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "A train number must be provided",
		})
	}

	return updatePlanningDay(c, func(day cordf.PlanningDay) cordf.PlanningDay {
		return planning.WithTrain(day, body.Number)
	})
}

func removePlannedTrain(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter index should be an integer",
		})
	}

	return updatePlanningDay(c, func(day cordf.PlanningDay) cordf.PlanningDay {
		return planning.WithoutTrain(day, index)
	})
}

// updatePlanningDay is the single read-modify-write path every planning
// edit goes through: load the whole day, apply a pure mutation, save the
// whole day back.
func updatePlanningDay(c *fiber.Ctx, mutate func(cordf.PlanningDay) cordf.PlanningDay) error {
	store := planning.NewStore()

	day, err := store.Day(c.Context(), c.Params("agentID"), c.Params("date"))
	if err != nil {
		return planningStoreError(c)
	}

	day = mutate(day)

	if err := store.Save(c.Context(), day); err != nil {
		return planningStoreError(c)
	}

	return c.JSON(day)
}

func planningStoreError(c *fiber.Ctx) error {
	c.SendStatus(fiber.StatusBadGateway)
	return c.JSON(fiber.Map{
		"error": "Planning store unavailable",
	})
}

func splitDates(query string) []string {
	var dates []string

	for _, date := range strings.Split(query, ",") {
		if date != "" {
			dates = append(dates, date)
		}
	}

	return dates
}
