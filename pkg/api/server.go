package api

import (
	"github.com/corail-counting/corail/pkg/api/routes"
	"github.com/gofiber/fiber/v2"
)

func SetupServer(listen string) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.AgentsRouter(group.Group("/agents"))
	routes.MissionsRouter(group.Group("/missions"))
	routes.PlanningRouter(group.Group("/planning"))
	routes.ScheduleRouter(group.Group("/schedule"))

	routes.StatsRouter(group.Group("/stats", EnsureSupervisor()))
	routes.ExportRouter(group.Group("/export", EnsureSupervisor()))

	return webApp.Listen(listen)
}
