package routes

import (
	"fmt"
	"time"

	"github.com/corail-counting/corail/pkg/export"
	"github.com/corail-counting/corail/pkg/mission"
	"github.com/gofiber/fiber/v2"
)

func ExportRouter(router fiber.Router) {
	router.Get("/", getExport)
}

// getExport streams the full flat-file export: one CSV line per station
// log of every persisted mission. Pure projection, nothing is written.
func getExport(c *fiber.Ctx) error {
	store := mission.NewRecordStore()

	records, err := store.All(c.Context())
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Record store unavailable",
		})
	}

	if agentID := c.Query("agent"); agentID != "" {
		filtered := records[:0]
		for _, record := range records {
			if record.AgentID == agentID {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}

	csvBytes, err := export.Marshal(records)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to serialise export",
		})
	}

	filename := fmt.Sprintf("CORAIL_Export_%s.csv", time.Now().Format("2006-01-02"))

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

	return c.Send(csvBytes)
}
