package routes

import (
	"github.com/corail-counting/corail/pkg/schedule"
	"github.com/corail-counting/corail/pkg/util"
	"github.com/gofiber/fiber/v2"
)

func ScheduleRouter(router fiber.Router) {
	router.Get("/:trainNumber", getTrain)
	router.Get("/routes/:routeCode/stations", getRouteStations)
}

// getTrain resolves a train number against the registry, falling back to
// the numbering-pattern classifier when unknown. Unknown trains are an
// advisory, never an error: the operator on the platform outranks the
// static timetable.
func getTrain(c *fiber.Ctx) error {
	trainNumber := util.OnlyDigits(c.Params("trainNumber"), 6)

	response := fiber.Map{
		"trainNumber": trainNumber,
	}

	entry, known := schedule.Lookup(trainNumber)
	response["known"] = known

	route := entry.Route
	if known {
		response["departure"] = entry.Departure
		response["arrival"] = entry.Arrival
		response["days"] = entry.Days
	} else {
		route = schedule.Classify(trainNumber)
		response["warning"] = "Note : Train non répertorié."
	}

	response["route"] = route
	response["stations"] = stationList(route)

	if date := c.Query("date"); date != "" {
		if parsed, err := util.ParseISODate(date); err == nil {
			response["dayLabel"] = schedule.DayLabel(parsed)

			if known && !entry.IsActiveOn(parsed) {
				response["circulationWarning"] = "Circulation ?"
			}
		}
	}

	return c.JSON(response)
}

func getRouteStations(c *fiber.Ctx) error {
	routeCode := c.Params("routeCode")

	stations := stationList(routeCode)
	if len(stations) == 0 {
		// Topology unknown - counting may still proceed on a manually
		// supplied station list
		return c.JSON(fiber.Map{
			"route":    routeCode,
			"stations": []fiber.Map{},
			"warning":  "Topology unknown for route",
		})
	}

	return c.JSON(fiber.Map{
		"route":    routeCode,
		"stations": stations,
	})
}

func stationList(routeCode string) []fiber.Map {
	codes := schedule.StationsFor(routeCode)

	stations := make([]fiber.Map, 0, len(codes))
	for _, code := range codes {
		stations = append(stations, fiber.Map{
			"code": code,
			"name": schedule.StationName(code),
		})
	}

	return stations
}

func stationDisplayName(code string) string {
	if code == "" {
		return ""
	}

	return schedule.StationName(code)
}
