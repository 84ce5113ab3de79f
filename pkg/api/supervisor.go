package api

import (
	"crypto/subtle"

	"github.com/corail-counting/corail/pkg/util"
	"github.com/gofiber/fiber/v2"
)

const defaultSupervisorID = "Superviseur Comptage"
const defaultSupervisorPassword = "SVLO_1512"

// EnsureSupervisor guards the supervision routes with the static credential
// check. This is an access gate for the review surface, not a security
// boundary - identity itself is out of scope.
func EnsureSupervisor() fiber.Handler {
	supervisorID := defaultSupervisorID
	supervisorPassword := defaultSupervisorPassword

	env := util.GetEnvironmentVariables()

	if env["CORAIL_SUPERVISOR_ID"] != "" {
		supervisorID = env["CORAIL_SUPERVISOR_ID"]
	}
	if env["CORAIL_SUPERVISOR_PASSWORD"] != "" {
		supervisorPassword = env["CORAIL_SUPERVISOR_PASSWORD"]
	}

	return func(c *fiber.Ctx) error {
		idMatch := subtle.ConstantTimeCompare([]byte(c.Get("X-Supervisor-Id")), []byte(supervisorID))
		passwordMatch := subtle.ConstantTimeCompare([]byte(c.Get("X-Supervisor-Password")), []byte(supervisorPassword))

		if idMatch != 1 || passwordMatch != 1 {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Identifiants incorrects",
			})
		}

		return c.Next()
	}
}
