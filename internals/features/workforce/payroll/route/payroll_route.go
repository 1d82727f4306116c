package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pctrl "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/controller"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
)

func PayrollRoutes(api fiber.Router, db *gorm.DB, notifier events.Notifier) {
	ctrl := pctrl.NewPayrollController(db, notifier)

	// Prefix: /payroll
	payroll := api.Group("/payroll")

	payroll.Post("/calculate", ctrl.Calculate)

	payroll.Put("/adjustments", ctrl.SetAdjustment)
	payroll.Get("/adjustments", ctrl.ListAdjustments)
	payroll.Delete("/adjustments", ctrl.RemoveAdjustment)

	payroll.Post("/periods", ctrl.CreatePayPeriod)
	payroll.Post("/periods/:id/pay", ctrl.MarkPaid)
	payroll.Get("/periods/unpaid", ctrl.UnpaidPeriods)
	payroll.Get("/periods", ctrl.UserPeriods)
	payroll.Get("/balances", ctrl.Balances)

	payroll.Post("/enforce/:guild_id", ctrl.EnforceGuild)
	payroll.Get("/cooldown", ctrl.CooldownStatus)
	payroll.Delete("/cooldown", ctrl.ClearCooldown)
	payroll.Post("/reset-hours", ctrl.ResetHours)
}
