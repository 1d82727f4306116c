package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sctrl "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/controller"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/middlewares"
)

func ShiftRoutes(api fiber.Router, db *gorm.DB, notifier events.Notifier) {
	ctrl := sctrl.NewShiftController(db, notifier)

	// Prefix: /shifts
	shifts := api.Group("/shifts")

	// clock-in/out dilindungi limiter ketat (anti spam tombol)
	shifts.Post("/clock-in", middlewares.ClockRateLimiter(), ctrl.ClockIn)
	shifts.Post("/clock-out", middlewares.ClockRateLimiter(), ctrl.ClockOut)

	shifts.Post("/break/start", ctrl.BreakStart)
	shifts.Post("/break/end", ctrl.BreakEnd)
	shifts.Post("/activity", ctrl.ActivityPing)

	shifts.Get("/status", ctrl.Status)
	shifts.Get("/history", ctrl.History)
	shifts.Get("/active", ctrl.ActiveAll)
	shifts.Get("/stats", ctrl.Stats)
}
