package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	shiftModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
)

func TestUPTAccrualIdempotentPerDate(t *testing.T) {
	svc := NewUPTService(newTestDB(t))
	svc.Now = func() time.Time { return time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC) }

	added, err := svc.AccrueForClockIn("g1", "u1", "2025-03-12")
	if err != nil {
		t.Fatalf("accrue: %v", err)
	}
	if !added {
		t.Fatal("accrue pertama harus menambah")
	}

	// clock-in kedua di tanggal sama: tidak menambah lagi
	added, err = svc.AccrueForClockIn("g1", "u1", "2025-03-12")
	if err != nil {
		t.Fatalf("accrue kedua: %v", err)
	}
	if added {
		t.Fatal("accrue kedua di tanggal sama harus no-op")
	}

	bal, err := svc.GetBalance("g1", "u1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if bal.UPTBalanceMinutes != UPTAccrualPerClockIn {
		t.Fatalf("saldo = %d, mau %d", bal.UPTBalanceMinutes, UPTAccrualPerClockIn)
	}

	// tanggal berikutnya menambah lagi
	added, err = svc.AccrueForClockIn("g1", "u1", "2025-03-13")
	if err != nil || !added {
		t.Fatalf("accrue tanggal baru (added=%v err=%v)", added, err)
	}
}

func TestUPTDeductGuardrails(t *testing.T) {
	svc := NewUPTService(newTestDB(t))

	err := svc.Deduct("g1", "u1", 60, UPTReasonAbsence, nil)
	if !errors.Is(err, ErrInsufficientUPT) {
		t.Fatalf("err = %v, mau ErrInsufficientUPT", err)
	}

	if err := svc.Adjust("g1", "u1", 100, nil); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if err := svc.Deduct("g1", "u1", 60, UPTReasonAbsence, nil); err != nil {
		t.Fatalf("deduct: %v", err)
	}

	bal, _ := svc.GetBalance("g1", "u1")
	if bal.UPTBalanceMinutes != 40 {
		t.Fatalf("saldo = %d, mau 40", bal.UPTBalanceMinutes)
	}

	hist, err := svc.History("g1", "u1", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("riwayat = %d, mau 2", len(hist))
	}
}

type missedRecorder struct {
	*events.LogNotifier
	missed []events.MissedShift
}

func (n *missedRecorder) NotifyMissedShift(ev events.MissedShift) {
	n.missed = append(n.missed, ev)
}

func TestCheckMissedShiftsToday(t *testing.T) {
	db := newTestDB(t)
	notifier := &missedRecorder{LogNotifier: events.NewLogNotifier()}
	svc := NewAttendanceService(db, notifier)

	now := time.Date(2025, 3, 12, 23, 59, 0, 0, time.UTC) // Rabu
	clock := func() time.Time { return now }
	svc.Now = clock
	svc.Scheduling.Now = clock
	svc.UPT.Now = clock

	// u1 dan u2 terjadwal Rabu; hanya u1 yang masuk
	err := svc.Scheduling.SaveWeeklySchedule("g1", "2025-03-09", map[string][]string{
		"u1": {"wednesday"},
		"u2": {"wednesday"},
		"u3": {"friday"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	in := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	out := in.Add(2 * time.Hour)
	mins := 120
	err = db.Create(&shiftModel.ShiftModel{
		ShiftID:              uuid.New(),
		ShiftGuildID:         "g1",
		ShiftUserID:          "u1",
		ShiftClockIn:         in,
		ShiftClockOut:        &out,
		ShiftDurationMinutes: &mins,
	}).Error
	if err != nil {
		t.Fatalf("seed shift: %v", err)
	}

	// u2 punya saldo UPT cukup → terpotong, tanpa writeup
	if err := svc.UPT.Adjust("g1", "u2", 200, nil); err != nil {
		t.Fatalf("seed upt: %v", err)
	}

	results, err := svc.CheckMissedShiftsToday("g1")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(results) != 1 || results[0].UserID != "u2" {
		t.Fatalf("results = %+v, mau hanya u2", results)
	}
	if !results[0].UPTUsed || results[0].WroteUp {
		t.Fatalf("u2 harus pakai UPT tanpa writeup: %+v", results[0])
	}

	bal, _ := svc.UPT.GetBalance("g1", "u2")
	if bal.UPTBalanceMinutes != 200-UPTCostAbsence {
		t.Fatalf("saldo u2 = %d, mau %d", bal.UPTBalanceMinutes, 200-UPTCostAbsence)
	}
	if len(notifier.missed) != 1 || notifier.missed[0].Day != "wednesday" {
		t.Fatalf("event = %+v", notifier.missed)
	}

	// panggilan kedua di hari sama: sudah tercatat, tidak dobel potong
	results, err = svc.CheckMissedShiftsToday("g1")
	if err != nil {
		t.Fatalf("check kedua: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("check kedua = %d, mau 0", len(results))
	}
}

func TestCheckMissedWithoutUPTWritesUp(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db, events.NewLogNotifier())

	now := time.Date(2025, 3, 12, 23, 59, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc.Now = clock
	svc.Scheduling.Now = clock
	svc.UPT.Now = clock

	err := svc.Scheduling.SaveWeeklySchedule("g1", "2025-03-09", map[string][]string{
		"u1": {"wednesday"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	results, err := svc.CheckMissedShiftsToday("g1")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(results) != 1 || results[0].UPTUsed || !results[0].WroteUp {
		t.Fatalf("results = %+v, mau writeup tanpa UPT", results)
	}

	n, err := svc.CountWriteups("g1", "u1")
	if err != nil || n != 1 {
		t.Fatalf("writeups = %d (err=%v), mau 1", n, err)
	}
	m, err := svc.CountMissedShifts("g1", "u1")
	if err != nil || m != 1 {
		t.Fatalf("missed = %d (err=%v), mau 1", m, err)
	}
}
