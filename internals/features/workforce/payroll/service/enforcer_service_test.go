package service

import (
	"testing"
	"time"

	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	policyService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/service"
)

// recordingNotifier menangkap event forced clock-out, sisanya numpang
// ke LogNotifier.
type recordingNotifier struct {
	*events.LogNotifier
	forced []events.ForceClockedOut
}

func (n *recordingNotifier) NotifyForceClockedOut(ev events.ForceClockedOut) {
	n.forced = append(n.forced, ev)
}

func newEnforcerForTest(t *testing.T, now time.Time) (*EnforcerService, *recordingNotifier) {
	t.Helper()
	db := newTestDB(t)
	notifier := &recordingNotifier{LogNotifier: events.NewLogNotifier()}
	svc := NewEnforcerService(db, notifier)
	clock := func() time.Time { return now }
	svc.Now = clock
	svc.Shifts.Now = clock
	svc.Shifts.Breaks.Now = clock
	svc.Breaks.Now = clock
	svc.Scheduling.Now = clock
	return svc, notifier
}

func TestCanClockInDisabled(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC) // Rabu
	svc, _ := newEnforcerForTest(t, now)

	enabled := false
	if _, err := svc.Policy.Update("g1", policyService.UpdateInput{IsEnabled: &enabled}); err != nil {
		t.Fatalf("disable: %v", err)
	}

	denial, err := svc.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial == nil || denial.Code != DenialDisabled {
		t.Fatalf("denial = %+v, mau disabled", denial)
	}
}

func TestCanClockInDailyLimit(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	svc, _ := newEnforcerForTest(t, now)

	// 301 menit hari ini ≥ cap default 5 jam
	seedClosedShift(t, svc.DB, "g1", "u1", now.Add(-6*time.Hour), 301)

	denial, err := svc.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial == nil || denial.Code != DenialDailyLimit {
		t.Fatalf("denial = %+v, mau daily_limit", denial)
	}

	// 299 menit: masih boleh
	svc2, _ := newEnforcerForTest(t, now)
	seedClosedShift(t, svc2.DB, "g1", "u1", now.Add(-6*time.Hour), 299)
	denial, err = svc2.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial != nil {
		t.Fatalf("denial = %+v, mau nil", denial)
	}
}

func TestCanClockInWeeklyDays(t *testing.T) {
	// Sabtu 2025-03-15; minggu berjalan mulai Minggu 2025-03-09.
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	svc, _ := newEnforcerForTest(t, now)

	// Senin–Jumat sudah terpakai = 5 hari distinct (cap lazy-create 5)
	for d := 1; d <= 5; d++ {
		day := time.Date(2025, 3, 9+d, 9, 0, 0, 0, time.UTC)
		seedClosedShift(t, svc.DB, "g1", "u1", day, 60)
	}

	denial, err := svc.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial == nil || denial.Code != DenialWeeklyLimit {
		t.Fatalf("denial = %+v, mau weekly_limit", denial)
	}

	// batas tetap berlaku walau hari ini termasuk salah satu dari 5 hari:
	// Selasa–Jumat plus Sabtu (hari ini) = 5 hari distinct
	svc2, _ := newEnforcerForTest(t, now)
	for d := 2; d <= 5; d++ {
		day := time.Date(2025, 3, 9+d, 9, 0, 0, 0, time.UTC)
		seedClosedShift(t, svc2.DB, "g1", "u1", day, 60)
	}
	seedClosedShift(t, svc2.DB, "g1", "u1", now.Add(-3*time.Hour), 30)
	denial, err = svc2.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial == nil || denial.Code != DenialWeeklyLimit {
		t.Fatalf("denial = %+v, mau weekly_limit (5 hari termasuk hari ini)", denial)
	}

	// 4 hari distinct: masih boleh
	svc3, _ := newEnforcerForTest(t, now)
	for d := 2; d <= 4; d++ {
		day := time.Date(2025, 3, 9+d, 9, 0, 0, 0, time.UTC)
		seedClosedShift(t, svc3.DB, "g1", "u1", day, 60)
	}
	seedClosedShift(t, svc3.DB, "g1", "u1", now.Add(-3*time.Hour), 30)
	denial, err = svc3.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial != nil {
		t.Fatalf("denial = %+v, mau nil (baru 4 hari)", denial)
	}
}

func TestCanClockInScheduleAndWorkRequest(t *testing.T) {
	// Rabu 2025-03-12; week start Minggu 2025-03-09.
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	svc, _ := newEnforcerForTest(t, now)

	// tanpa jadwal minggu ini: bebas masuk
	denial, err := svc.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial != nil {
		t.Fatalf("denial = %+v, mau nil (belum ada jadwal)", denial)
	}

	// jadwal ada tapi Rabu tidak terdaftar → ditolak
	err = svc.Scheduling.SaveWeeklySchedule("g1", "2025-03-09", map[string][]string{
		"u1": {"monday", "friday"},
	})
	if err != nil {
		t.Fatalf("save schedule: %v", err)
	}
	denial, err = svc.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial == nil || denial.Code != DenialNotScheduled {
		t.Fatalf("denial = %+v, mau not_scheduled", denial)
	}

	// work request yang disetujui membuka override untuk tanggal itu
	wr, err := svc.Scheduling.CreateWorkRequest("g1", "u1", "2025-03-12")
	if err != nil {
		t.Fatalf("work request: %v", err)
	}
	if err := svc.Scheduling.RespondWorkRequest(wr.WorkRequestID, true, "ok"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	denial, err = svc.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial != nil {
		t.Fatalf("denial = %+v, mau nil (work request approved)", denial)
	}
}

func TestEnforceGuildForcesAndCoolsDown(t *testing.T) {
	now := time.Date(2025, 3, 12, 14, 1, 0, 0, time.UTC)
	svc, notifier := newEnforcerForTest(t, now)

	// clock in 09:00, sekarang 14:01 → 301 menit ≥ cap 300
	if _, err := svc.Shifts.ClockIn("g1", "u1"); err == nil {
		// ClockIn pakai clock 14:01; geser manual clock_in ke 09:00
		svc.DB.Exec("UPDATE shifts SET clock_in = ? WHERE user_id = ?",
			time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), "u1")
	} else {
		t.Fatalf("clock in: %v", err)
	}

	forced, err := svc.EnforceGuild("g1")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if forced != 1 {
		t.Fatalf("forced = %d, mau 1", forced)
	}
	if len(notifier.forced) != 1 {
		t.Fatalf("event = %d, mau 1", len(notifier.forced))
	}
	if notifier.forced[0].HoursWorked != 5.02 {
		t.Fatalf("hours = %v, mau 5.02 (301 menit)", notifier.forced[0].HoursWorked)
	}

	// cooldown 24 jam terpasang
	remaining, err := svc.IsOnCooldown("g1", "u1")
	if err != nil {
		t.Fatalf("cooldown: %v", err)
	}
	if remaining != 24*time.Hour {
		t.Fatalf("remaining = %v, mau 24h", remaining)
	}

	denial, err := svc.CanClockIn("g1", "u1")
	if err != nil {
		t.Fatalf("can clock in: %v", err)
	}
	if denial == nil || denial.Code != DenialCooldown {
		t.Fatalf("denial = %+v, mau cooldown", denial)
	}

	// sweep kedua idempoten
	forced, err = svc.EnforceGuild("g1")
	if err != nil {
		t.Fatalf("enforce kedua: %v", err)
	}
	if forced != 0 {
		t.Fatalf("forced kedua = %d, mau 0", forced)
	}
}

func TestEnforceGuildCountsOvernightShift(t *testing.T) {
	// clock in Selasa 22:00, sweep Rabu 10:00 → 12 jam berjalan ≥ cap 5 jam
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	svc, notifier := newEnforcerForTest(t, now)

	if _, err := svc.Shifts.ClockIn("g1", "u1"); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	svc.DB.Exec("UPDATE shifts SET clock_in = ? WHERE user_id = ?",
		time.Date(2025, 3, 11, 22, 0, 0, 0, time.UTC), "u1")

	worked, err := svc.TodayNetWorkedMinutes("g1", "u1")
	if err != nil {
		t.Fatalf("net worked: %v", err)
	}
	if worked != 720 {
		t.Fatalf("worked = %d, mau 720 (shift lewat tengah malam dihitung penuh)", worked)
	}

	forced, err := svc.EnforceGuild("g1")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if forced != 1 {
		t.Fatalf("forced = %d, mau 1", forced)
	}
	if len(notifier.forced) != 1 || notifier.forced[0].HoursWorked != 12.0 {
		t.Fatalf("event = %+v, mau 1 event 12 jam", notifier.forced)
	}
}

func TestCooldownExpiryDeletesRow(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	svc, _ := newEnforcerForTest(t, now)

	if err := svc.SetCooldown("g1", "u1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// 25 jam kemudian: kedaluwarsa, baris ikut terhapus
	later := now.Add(25 * time.Hour)
	clock := func() time.Time { return later }
	svc.Now = clock

	remaining, err := svc.IsOnCooldown("g1", "u1")
	if err != nil {
		t.Fatalf("cooldown: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("remaining = %v, mau 0", remaining)
	}

	var n int64
	svc.DB.Table("payroll_cooldowns").Where("user_id = ?", "u1").Count(&n)
	if n != 0 {
		t.Fatalf("baris cooldown = %d, mau 0", n)
	}
}
