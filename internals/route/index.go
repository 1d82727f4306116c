package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payrollRoute "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/route"
	policyRoute "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/route"
	schedulingRoute "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/route"
	shiftRoute "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/route"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
)

// SetupRoutes memasang seluruh endpoint engine di bawah /api.
func SetupRoutes(app *fiber.App, db *gorm.DB, notifier events.Notifier) {
	api := app.Group("/api")

	shiftRoute.ShiftRoutes(api, db, notifier)
	policyRoute.PolicyRoutes(api, db)
	payrollRoute.PayrollRoutes(api, db, notifier)
	schedulingRoute.SchedulingRoutes(api, db, notifier)
}
