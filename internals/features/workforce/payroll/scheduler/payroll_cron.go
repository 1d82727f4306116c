package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	breakService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/breaks/service"
	payService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/service"
	policyService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/scheduler"
)

// Register memasang semua job periodik payroll:
//   - sweep batas harian tiap 5 menit
//   - sweep inaktivitas (auto-break) tiap 5 menit
//   - ringkasan saldo owner tiap hari 09:00
//   - reminder saldo belum dibayar tiap Minggu 10:00
func Register(r *scheduler.Runner, db *gorm.DB, notifier events.Notifier) {
	policy := policyService.New(db)
	breaks := breakService.New(db)
	enforcer := payService.NewEnforcerService(db, notifier)
	pay := payService.NewPayService(db)

	r.Every("payroll-limit-sweep", 5*time.Minute, func() {
		forced, errs := enforcer.EnforceSweep()
		if forced > 0 {
			log.Printf("[CRON] limit-sweep forced=%d", forced)
		}
		for _, err := range errs {
			log.Printf("[CRON] limit-sweep error: %v", err)
		}
	})

	r.Every("inactivity-sweep", 5*time.Minute, func() {
		guildIDs, err := policy.EnabledGuildIDs()
		if err != nil {
			log.Printf("[CRON] inactivity-sweep: %v", err)
			return
		}
		for _, gid := range guildIDs {
			auto, err := breaks.SweepInactivity(gid)
			if err != nil {
				log.Printf("[CRON] inactivity-sweep guild=%s: %v", gid, err)
				continue
			}
			for _, ab := range auto {
				notifier.NotifyAutoBreakStarted(events.AutoBreakStarted{
					GuildID: gid,
					UserID:  ab.UserID,
					ShiftID: ab.ShiftID.String(),
				})
			}
		}
	})

	r.DailyAt("daily-owner-summary", 9, 0, func() {
		guildIDs, err := policy.EnabledGuildIDs()
		if err != nil {
			log.Printf("[CRON] owner-summary: %v", err)
			return
		}
		for _, gid := range guildIDs {
			balances, err := pay.GetAllUnpaidBalances(gid)
			if err != nil {
				log.Printf("[CRON] owner-summary guild=%s: %v", gid, err)
				continue
			}
			if len(balances) == 0 {
				continue
			}
			ev := events.DailyOwnerSummary{GuildID: gid}
			for _, b := range balances {
				ev.Balances = append(ev.Balances, events.StaffBalance{
					UserID:     b.UserID,
					TotalPay:   b.TotalPay,
					TotalHours: b.TotalHours,
					Periods:    b.Periods,
				})
			}
			notifier.NotifyDailyOwnerSummary(ev)
		}
	})

	r.WeeklyAt("weekly-unpaid-reminder", time.Sunday, 10, 0, func() {
		guildIDs, err := policy.EnabledGuildIDs()
		if err != nil {
			log.Printf("[CRON] unpaid-reminder: %v", err)
			return
		}
		for _, gid := range guildIDs {
			balances, err := pay.GetAllUnpaidBalances(gid)
			if err != nil {
				log.Printf("[CRON] unpaid-reminder guild=%s: %v", gid, err)
				continue
			}
			for _, b := range balances {
				if b.TotalPay <= 0 {
					continue
				}
				notifier.NotifyWeeklyUnpaidReminder(events.WeeklyUnpaidReminder{
					GuildID:    gid,
					UserID:     b.UserID,
					TotalPay:   b.TotalPay,
					TotalHours: b.TotalHours,
					Periods:    b.Periods,
				})
			}
		}
	})
}
