package events

import "log"

// Notifier adalah batas keluar engine: kolaborator (mis. bot Discord)
// mengimplementasikan ini untuk mengirim DM/embed. Implementasi wajib
// non-blocking terhadap sweep: kirim cepat atau antre sendiri.
type Notifier interface {
	NotifyForceClockedOut(ev ForceClockedOut)
	NotifyWeeklyUnpaidReminder(ev WeeklyUnpaidReminder)
	NotifyDailyOwnerSummary(ev DailyOwnerSummary)
	NotifyWeeklyScheduleGenerated(ev WeeklyScheduleGenerated)
	NotifyPersonalSchedule(ev PersonalSchedule)
	NotifyAutoBreakStarted(ev AutoBreakStarted)
	NotifyMissedShift(ev MissedShift)
}

// LogNotifier: fallback default, hanya mencatat ke log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) NotifyForceClockedOut(ev ForceClockedOut) {
	log.Printf("[EVENT] force-clocked-out guild=%s user=%s hours=%.2f", ev.GuildID, ev.UserID, ev.HoursWorked)
}

func (n *LogNotifier) NotifyWeeklyUnpaidReminder(ev WeeklyUnpaidReminder) {
	log.Printf("[EVENT] weekly-unpaid-reminder user=%s pay=%.2f hours=%.2f periods=%d", ev.UserID, ev.TotalPay, ev.TotalHours, ev.Periods)
}

func (n *LogNotifier) NotifyDailyOwnerSummary(ev DailyOwnerSummary) {
	log.Printf("[EVENT] daily-owner-summary guild=%s staff=%d", ev.GuildID, len(ev.Balances))
}

func (n *LogNotifier) NotifyWeeklyScheduleGenerated(ev WeeklyScheduleGenerated) {
	log.Printf("[EVENT] weekly-schedule-generated guild=%s week=%s staff=%d", ev.GuildID, ev.WeekStart, len(ev.Assignments))
}

func (n *LogNotifier) NotifyPersonalSchedule(ev PersonalSchedule) {
	log.Printf("[EVENT] personal-schedule user=%s week=%s days=%v", ev.UserID, ev.WeekStart, ev.Days)
}

func (n *LogNotifier) NotifyAutoBreakStarted(ev AutoBreakStarted) {
	log.Printf("[EVENT] auto-break-started guild=%s user=%s shift=%s", ev.GuildID, ev.UserID, ev.ShiftID)
}

func (n *LogNotifier) NotifyMissedShift(ev MissedShift) {
	log.Printf("[EVENT] missed-shift guild=%s user=%s date=%s upt=%v", ev.GuildID, ev.UserID, ev.Date, ev.UPTUsed)
}
