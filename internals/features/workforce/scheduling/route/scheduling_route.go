package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sctrl "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/controller"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
)

func SchedulingRoutes(api fiber.Router, db *gorm.DB, notifier events.Notifier) {
	ctrl := sctrl.NewSchedulingController(db, notifier)
	att := sctrl.NewAttendanceController(db, notifier)

	// Prefix: /scheduling
	sched := api.Group("/scheduling")

	sched.Put("/availability", ctrl.SetAvailability)
	sched.Get("/availability", ctrl.GetAvailability)

	sched.Post("/generate", ctrl.GenerateWeek)
	sched.Get("/week", ctrl.WeekSchedules)
	sched.Get("/my", ctrl.MySchedule)

	sched.Post("/swaps", ctrl.CreateSwap)
	sched.Get("/swaps", ctrl.PendingSwaps)
	sched.Post("/swaps/:id/accept", ctrl.AcceptSwap)
	sched.Post("/swaps/:id/decline", ctrl.DeclineSwap)
	sched.Post("/swaps/:id/cancel", ctrl.CancelSwap)

	sched.Post("/work-requests", ctrl.CreateWorkRequest)
	sched.Get("/work-requests", ctrl.PendingWorkRequests)
	sched.Post("/work-requests/:id/respond", ctrl.RespondWorkRequest)

	sched.Get("/upt", att.UPTBalance)
	sched.Get("/upt/history", att.UPTHistory)
	sched.Post("/upt/adjust", att.UPTAdjust)

	sched.Get("/writeups", att.Writeups)
	sched.Delete("/writeups", att.ClearWriteups)
	sched.Get("/missed", att.MissedShifts)
	sched.Post("/missed/check/:guild_id", att.CheckMissedToday)
}
