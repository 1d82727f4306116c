package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/databases"
	breakModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/breaks/model"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/model"
	shiftModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
)

var testDBSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:payroll_svc_%d?mode=memory&cache=shared", testDBSeq)
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

func seedClosedShift(t *testing.T, db *gorm.DB, guildID, userID string, clockIn time.Time, minutes int) *shiftModel.ShiftModel {
	t.Helper()
	out := clockIn.Add(time.Duration(minutes) * time.Minute)
	sh := shiftModel.ShiftModel{
		ShiftID:              uuid.New(),
		ShiftGuildID:         guildID,
		ShiftUserID:          userID,
		ShiftClockIn:         clockIn,
		ShiftClockOut:        &out,
		ShiftDurationMinutes: &minutes,
	}
	if err := db.Create(&sh).Error; err != nil {
		t.Fatalf("seed shift: %v", err)
	}
	return &sh
}

func seedClosedBreak(t *testing.T, db *gorm.DB, shiftID uuid.UUID, start time.Time, minutes int) {
	t.Helper()
	end := start.Add(time.Duration(minutes) * time.Minute)
	b := breakModel.BreakModel{
		BreakID:              uuid.New(),
		BreakShiftID:         shiftID,
		BreakStart:           start,
		BreakEnd:             &end,
		BreakDurationMinutes: &minutes,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed break: %v", err)
	}
}

func rangeFor(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1).Add(-time.Second)
}

// 121 menit @ $15: jam dan pay dibulatkan dari menit mentah masing-masing.
// 121/60 = 2.01666… → 2.02 jam; 2.01666… × 15 = 30.25, bukan 2.02 × 15.
func TestCalculatePayRounding(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayService(db)

	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seedClosedShift(t, db, "g1", "u1", day, 121)

	start, end := rangeFor(day)
	res, err := svc.CalculatePay("g1", "u1", start, end)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.TotalHours != 2.02 {
		t.Fatalf("hours = %v, mau 2.02", res.TotalHours)
	}
	if res.TotalPay != 30.25 {
		t.Fatalf("pay = %v, mau 30.25 (bukan 30.30)", res.TotalPay)
	}
	if res.Shifts != 1 {
		t.Fatalf("shifts = %d, mau 1", res.Shifts)
	}
}

func TestCalculatePaySubtractsBreaks(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayService(db)

	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	sh := seedClosedShift(t, db, "g1", "u1", day, 120)
	seedClosedBreak(t, db, sh.ShiftID, day.Add(30*time.Minute), 30)

	start, end := rangeFor(day)
	res, err := svc.CalculatePay("g1", "u1", start, end)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if res.TotalHours != 1.5 {
		t.Fatalf("hours = %v, mau 1.5", res.TotalHours)
	}
	if res.TotalPay != 22.5 {
		t.Fatalf("pay = %v, mau 22.5", res.TotalPay)
	}
}

func TestEffectiveMultiplier(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayService(db)

	// tanpa adjustment = 1.0
	mult, err := svc.EffectiveMultiplier("g1", "u1", []string{"r1", "r2"})
	if err != nil {
		t.Fatalf("multiplier: %v", err)
	}
	if mult != 1.0 {
		t.Fatalf("mult = %v, mau 1.0", mult)
	}

	// antar role: ambil terbesar
	if err := svc.SetAdjustment("g1", "r1", model.TargetRole, 1.5, "senior", "owner"); err != nil {
		t.Fatalf("set r1: %v", err)
	}
	if err := svc.SetAdjustment("g1", "r2", model.TargetRole, 2.0, "lead", "owner"); err != nil {
		t.Fatalf("set r2: %v", err)
	}
	mult, err = svc.EffectiveMultiplier("g1", "u1", []string{"r1", "r2"})
	if err != nil {
		t.Fatalf("multiplier: %v", err)
	}
	if mult != 2.0 {
		t.Fatalf("mult = %v, mau 2.0", mult)
	}

	// adjustment user selalu menang, termasuk yang lebih kecil
	if err := svc.SetAdjustment("g1", "u1", model.TargetUser, 1.2, "probation", "owner"); err != nil {
		t.Fatalf("set u1: %v", err)
	}
	mult, err = svc.EffectiveMultiplier("g1", "u1", []string{"r1", "r2"})
	if err != nil {
		t.Fatalf("multiplier: %v", err)
	}
	if mult != 1.2 {
		t.Fatalf("mult = %v, mau 1.2", mult)
	}
}

func TestCalculatePayWithMultiplier(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayService(db)

	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seedClosedShift(t, db, "g1", "u1", day, 121)
	if err := svc.SetAdjustment("g1", "u1", model.TargetUser, 1.5, "", "owner"); err != nil {
		t.Fatalf("set adjustment: %v", err)
	}

	start, end := rangeFor(day)
	res, err := svc.CalculatePayWithMultiplier("g1", "u1", nil, start, end)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	// multiplier diterapkan ke basePay yang sudah dibulatkan: 30.25 × 1.5 = 45.375 → 45.38
	if res.BasePay != 30.25 || res.TotalPay != 45.38 {
		t.Fatalf("base=%v total=%v, mau 30.25 / 45.38", res.BasePay, res.TotalPay)
	}
}

func TestPayPeriodPaidOneWay(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayService(db)

	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seedClosedShift(t, db, "g1", "u1", day, 60)

	start, end := rangeFor(day)
	p, err := svc.CreatePayPeriod("g1", "u1", start, end)
	if err != nil {
		t.Fatalf("create period: %v", err)
	}
	if p.PayPeriodPaid {
		t.Fatal("period baru harus unpaid")
	}

	marked, err := svc.MarkPayPeriodPaid(p.PayPeriodID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if !marked {
		t.Fatal("mark paid pertama harus berhasil")
	}

	marked, err = svc.MarkPayPeriodPaid(p.PayPeriodID)
	if err != nil {
		t.Fatalf("mark paid kedua: %v", err)
	}
	if marked {
		t.Fatal("mark paid kedua harus no-op")
	}

	unpaid, err := svc.GetUnpaidPayPeriods("g1", "u1")
	if err != nil {
		t.Fatalf("unpaid: %v", err)
	}
	if len(unpaid) != 0 {
		t.Fatalf("unpaid = %d, mau 0", len(unpaid))
	}
}

func TestUnpaidBalancesOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayService(db)

	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seedClosedShift(t, db, "g1", "u1", day, 60)  // $15
	seedClosedShift(t, db, "g1", "u2", day, 240) // $60

	start, end := rangeFor(day)
	if _, err := svc.CreatePayPeriod("g1", "u1", start, end); err != nil {
		t.Fatalf("period u1: %v", err)
	}
	if _, err := svc.CreatePayPeriod("g1", "u2", start, end); err != nil {
		t.Fatalf("period u2: %v", err)
	}

	balances, err := svc.GetAllUnpaidBalances("g1")
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("len = %d, mau 2", len(balances))
	}
	if balances[0].UserID != "u2" || balances[0].TotalPay != 60 {
		t.Fatalf("teratas = %+v, mau u2/$60", balances[0])
	}
}

func TestResetPayrollHours(t *testing.T) {
	db := newTestDB(t)
	svc := NewPayService(db)

	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	seedClosedShift(t, db, "g1", "u1", now.AddDate(0, 0, -2), 120)
	seedClosedShift(t, db, "g1", "u1", now.AddDate(0, 0, -60), 120) // di luar rentang

	res, err := svc.ResetPayrollHours("g1", "u1", 30)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if res.DeletedShifts != 1 || res.DeletedHours != 2 {
		t.Fatalf("res = %+v, mau 1 shift / 2 jam", res)
	}

	var remaining int64
	db.Model(&shiftModel.ShiftModel{}).Where("guild_id = ? AND user_id = ?", "g1", "u1").Count(&remaining)
	if remaining != 1 {
		t.Fatalf("sisa shift = %d, mau 1 (yang lama tidak tersentuh)", remaining)
	}
}
