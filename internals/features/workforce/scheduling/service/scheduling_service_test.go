package service

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/databases"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/model"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

var testDBSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:sched_svc_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newSchedulingForTest(t *testing.T) *Service {
	t.Helper()
	svc := New(newTestDB(t))
	svc.Rand = rand.New(rand.NewSource(42))
	svc.Now = func() time.Time { return time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC) }
	return svc
}

const week = "2025-03-09"

func setAvail(t *testing.T, svc *Service, userID string, days ...string) {
	t.Helper()
	_, err := svc.SetAvailability("g1", userID, days, TimeRange{Start: "09:00", End: "17:00"})
	if err != nil {
		t.Fatalf("availability %s: %v", userID, err)
	}
}

func TestGenerateWeeklyScheduleInvariants(t *testing.T) {
	svc := newSchedulingForTest(t)

	setAvail(t, svc, "u1", "monday", "tuesday", "wednesday", "thursday", "friday")
	setAvail(t, svc, "u2", "monday", "wednesday", "friday", "saturday")
	setAvail(t, svc, "u3", "tuesday", "thursday", "saturday", "sunday")
	setAvail(t, svc, "u4", "monday", "tuesday")

	assignments, err := svc.GenerateWeeklySchedule("g1", week)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(assignments) != 4 {
		t.Fatalf("staff = %d, mau 4", len(assignments))
	}

	dayLoad := map[string]int{}
	for userID, days := range assignments {
		if len(days) < MinTargetDays || len(days) > MaxTargetDays {
			t.Fatalf("%s dapat %d hari, mau %d–%d", userID, len(days), MinTargetDays, MaxTargetDays)
		}
		seen := map[string]bool{}
		for _, d := range days {
			if !helper.IsWeekDay(d) {
				t.Fatalf("%s dapat hari tidak valid %q", userID, d)
			}
			if seen[d] {
				t.Fatalf("%s dapat hari dobel %q", userID, d)
			}
			seen[d] = true
			dayLoad[d]++
		}
		// urutan kanonik Minggu-dulu
		for i := 1; i < len(days); i++ {
			if helper.WeekDayIndex(days[i-1]) >= helper.WeekDayIndex(days[i]) {
				t.Fatalf("%s: hari tidak terurut kanonik: %v", userID, days)
			}
		}
	}
	for day, load := range dayLoad {
		if load > MaxStaffPerDay {
			t.Fatalf("hari %s kelebihan beban: %d > %d", day, load, MaxStaffPerDay)
		}
	}
}

// Semua staff cuma mau satu hari yang sama: cap per hari menahan di 3,
// sisanya tumpah ke hari lain lewat pengisian least-loaded.
func TestGenerateRespectsPerDayCap(t *testing.T) {
	svc := newSchedulingForTest(t)

	for i := 1; i <= 5; i++ {
		setAvail(t, svc, fmt.Sprintf("u%d", i), "monday")
	}

	assignments, err := svc.GenerateWeeklySchedule("g1", week)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	mondayLoad := 0
	for _, days := range assignments {
		for _, d := range days {
			if d == "monday" {
				mondayLoad++
			}
		}
	}
	if mondayLoad > MaxStaffPerDay {
		t.Fatalf("senin kebagian %d staff, cap %d", mondayLoad, MaxStaffPerDay)
	}
	for userID, days := range assignments {
		if len(days) < MinTargetDays {
			t.Fatalf("%s cuma dapat %d hari", userID, len(days))
		}
	}
}

func TestSaveAndReadSchedule(t *testing.T) {
	svc := newSchedulingForTest(t)

	err := svc.SaveWeeklySchedule("g1", week, map[string][]string{
		"u1": {"monday", "friday"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	sched, err := svc.GetStaffSchedule("g1", "u1", week)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sched == nil {
		t.Fatal("jadwal tidak ketemu")
	}
	days, err := AssignedDays(sched)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(days) != 2 || days[0] != "monday" || days[1] != "friday" {
		t.Fatalf("days = %v", days)
	}

	// upsert minggu yang sama menimpa, bukan menduplikasi
	err = svc.SaveWeeklySchedule("g1", week, map[string][]string{
		"u1": {"tuesday"},
	})
	if err != nil {
		t.Fatalf("save ulang: %v", err)
	}
	var n int64
	svc.DB.Model(&model.StaffScheduleModel{}).Where("guild_id = ? AND week_start = ?", "g1", week).Count(&n)
	if n != 1 {
		t.Fatalf("baris jadwal = %d, mau 1", n)
	}
}

func TestScheduledForDate(t *testing.T) {
	svc := newSchedulingForTest(t)

	wed := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	hasSched, scheduled, err := svc.ScheduledForDate("g1", "u1", wed)
	if err != nil {
		t.Fatalf("scheduled: %v", err)
	}
	if hasSched || scheduled {
		t.Fatal("tanpa jadwal harus (false, false)")
	}

	if err := svc.SaveWeeklySchedule("g1", week, map[string][]string{"u1": {"wednesday"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	hasSched, scheduled, err = svc.ScheduledForDate("g1", "u1", wed)
	if err != nil {
		t.Fatalf("scheduled: %v", err)
	}
	if !hasSched || !scheduled {
		t.Fatal("rabu harus terjadwal")
	}

	thu := wed.AddDate(0, 0, 1)
	hasSched, scheduled, err = svc.ScheduledForDate("g1", "u1", thu)
	if err != nil {
		t.Fatalf("scheduled: %v", err)
	}
	if !hasSched || scheduled {
		t.Fatal("kamis harus (true, false)")
	}
}

/* ===================== SWAP / DROP ===================== */

func TestDropMovesOneDay(t *testing.T) {
	svc := newSchedulingForTest(t)

	err := svc.SaveWeeklySchedule("g1", week, map[string][]string{
		"u1": {"monday", "friday"},
		"u2": {"tuesday"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	req, err := svc.CreateShiftSwapRequest("g1", "u1", model.SwapTypeDrop, "monday", week, nil, nil)
	if err != nil {
		t.Fatalf("create drop: %v", err)
	}

	if _, err := svc.AcceptShiftSwap(req.SwapID, "u2"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	u1, _ := svc.GetStaffSchedule("g1", "u1", week)
	u2, _ := svc.GetStaffSchedule("g1", "u2", week)
	d1, _ := AssignedDays(u1)
	d2, _ := AssignedDays(u2)
	if len(d1) != 1 || d1[0] != "friday" {
		t.Fatalf("u1 = %v, mau [friday]", d1)
	}
	if len(d2) != 2 || d2[0] != "monday" || d2[1] != "tuesday" {
		t.Fatalf("u2 = %v, mau [monday tuesday]", d2)
	}

	// accept kedua gagal: sudah final
	if _, err := svc.AcceptShiftSwap(req.SwapID, "u2"); err != ErrSwapNotPending {
		t.Fatalf("err = %v, mau ErrSwapNotPending", err)
	}
}

func TestSwapExchangesDays(t *testing.T) {
	svc := newSchedulingForTest(t)

	err := svc.SaveWeeklySchedule("g1", week, map[string][]string{
		"u1": {"monday"},
		"u2": {"friday"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	target := "u2"
	recv := "friday"
	req, err := svc.CreateShiftSwapRequest("g1", "u1", model.SwapTypeSwap, "monday", week, &target, &recv)
	if err != nil {
		t.Fatalf("create swap: %v", err)
	}

	// bukan target → ditolak
	if _, err := svc.AcceptShiftSwap(req.SwapID, "u3"); err != ErrSwapTargetMismatch {
		t.Fatalf("err = %v, mau ErrSwapTargetMismatch", err)
	}

	if _, err := svc.AcceptShiftSwap(req.SwapID, "u2"); err != nil {
		t.Fatalf("accept: %v", err)
	}

	u1, _ := svc.GetStaffSchedule("g1", "u1", week)
	u2, _ := svc.GetStaffSchedule("g1", "u2", week)
	d1, _ := AssignedDays(u1)
	d2, _ := AssignedDays(u2)
	if len(d1) != 1 || d1[0] != "friday" {
		t.Fatalf("u1 = %v, mau [friday]", d1)
	}
	if len(d2) != 1 || d2[0] != "monday" {
		t.Fatalf("u2 = %v, mau [monday]", d2)
	}
}

func TestCreateSwapRequiresOwnedDay(t *testing.T) {
	svc := newSchedulingForTest(t)

	if err := svc.SaveWeeklySchedule("g1", week, map[string][]string{"u1": {"monday"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := svc.CreateShiftSwapRequest("g1", "u1", model.SwapTypeDrop, "friday", week, nil, nil)
	if err != ErrDayNotScheduled {
		t.Fatalf("err = %v, mau ErrDayNotScheduled", err)
	}
}

func TestCancelOnlyByRequester(t *testing.T) {
	svc := newSchedulingForTest(t)

	if err := svc.SaveWeeklySchedule("g1", week, map[string][]string{"u1": {"monday"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	req, err := svc.CreateShiftSwapRequest("g1", "u1", model.SwapTypeDrop, "monday", week, nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.CancelShiftSwapRequest(req.SwapID, "u2"); err != ErrNotYourRequest {
		t.Fatalf("err = %v, mau ErrNotYourRequest", err)
	}
	if err := svc.CancelShiftSwapRequest(req.SwapID, "u1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got, _ := svc.GetShiftSwapRequest(req.SwapID)
	if got.SwapStatus != model.SwapStatusCancelled {
		t.Fatalf("status = %s, mau cancelled", got.SwapStatus)
	}

	// sudah final: cancel ulang ditolak
	if err := svc.CancelShiftSwapRequest(req.SwapID, "u1"); err != ErrSwapNotPending {
		t.Fatalf("err = %v, mau ErrSwapNotPending", err)
	}
}

/* ===================== WORK REQUEST ===================== */

func TestWorkRequestLifecycle(t *testing.T) {
	svc := newSchedulingForTest(t)

	wr, err := svc.CreateWorkRequest("g1", "u1", "2025-03-12")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// dobel untuk tanggal sama ditolak
	if _, err := svc.CreateWorkRequest("g1", "u1", "2025-03-12"); err != ErrDuplicateRequest {
		t.Fatalf("err = %v, mau ErrDuplicateRequest", err)
	}

	ok, err := svc.HasApprovedWorkRequest("g1", "u1", "2025-03-12")
	if err != nil || ok {
		t.Fatalf("pending belum dihitung approved (ok=%v err=%v)", ok, err)
	}

	if err := svc.RespondWorkRequest(wr.WorkRequestID, true, "silakan"); err != nil {
		t.Fatalf("respond: %v", err)
	}
	ok, err = svc.HasApprovedWorkRequest("g1", "u1", "2025-03-12")
	if err != nil || !ok {
		t.Fatalf("harus approved (ok=%v err=%v)", ok, err)
	}

	// respond kedua gagal: sudah final
	if err := svc.RespondWorkRequest(wr.WorkRequestID, false, "batal"); err != ErrSwapNotPending {
		t.Fatalf("err = %v, mau ErrSwapNotPending", err)
	}
}
