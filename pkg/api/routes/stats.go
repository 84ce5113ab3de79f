package routes

import (
	"github.com/corail-counting/corail/pkg/mission"
	"github.com/corail-counting/corail/pkg/stats"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

func StatsRouter(router fiber.Router) {
	router.Get("/overview", getStatsOverview)
}

func getStatsOverview(c *fiber.Ctx) error {
	calculator := stats.NewCalculator(mission.NewRecordStore())

	overview, err := calculator.CachedOverview(c.Context())
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Record store unavailable",
		})
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, overview)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to reduce stats overview",
		})
	}

	return c.JSON(reduced)
}
