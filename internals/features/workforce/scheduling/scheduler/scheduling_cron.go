package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	policyService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/service"
	schedulingService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/scheduler"
)

// Register memasang job periodik scheduling:
//   - generate roster minggu DEPAN tiap Minggu 18:00, lalu broadcast
//     hasilnya plus jadwal personal tiap staff
//   - cek missed shift tiap hari 23:59
func Register(r *scheduler.Runner, db *gorm.DB, notifier events.Notifier) {
	policy := policyService.New(db)
	scheduling := schedulingService.New(db)
	attendance := schedulingService.NewAttendanceService(db, notifier)

	r.WeeklyAt("weekly-schedule-generation", time.Sunday, 18, 0, func() {
		weekStart := helper.NextWeekStartDate(time.Now())

		guildIDs, err := policy.EnabledGuildIDs()
		if err != nil {
			log.Printf("[CRON] schedule-generation: %v", err)
			return
		}
		for _, gid := range guildIDs {
			assignments, err := scheduling.GenerateAndSaveWeek(gid, weekStart)
			if err != nil {
				log.Printf("[CRON] schedule-generation guild=%s: %v", gid, err)
				continue
			}
			if len(assignments) == 0 {
				continue
			}
			notifier.NotifyWeeklyScheduleGenerated(events.WeeklyScheduleGenerated{
				GuildID:     gid,
				WeekStart:   weekStart,
				Assignments: assignments,
			})
			for userID, days := range assignments {
				notifier.NotifyPersonalSchedule(events.PersonalSchedule{
					GuildID:   gid,
					UserID:    userID,
					WeekStart: weekStart,
					Days:      days,
				})
			}
		}
	})

	r.DailyAt("missed-shift-check", 23, 59, func() {
		guildIDs, err := policy.EnabledGuildIDs()
		if err != nil {
			log.Printf("[CRON] missed-shift-check: %v", err)
			return
		}
		for _, gid := range guildIDs {
			missed, err := attendance.CheckMissedShiftsToday(gid)
			if err != nil {
				log.Printf("[CRON] missed-shift-check guild=%s: %v", gid, err)
				continue
			}
			if len(missed) > 0 {
				log.Printf("[CRON] missed-shift-check guild=%s missed=%d", gid, len(missed))
			}
		}
	})
}
