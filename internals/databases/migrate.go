package database

import (
	"gorm.io/gorm"

	breaksModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/breaks/model"
	payrollModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/model"
	policyModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/model"
	schedulingModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/model"
	shiftsModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
)

// Migrate menjalankan AutoMigrate untuk semua tabel workforce.
// Dipakai juga oleh test (sqlite in-memory), jadi semua SQL tambahan
// di sini harus valid untuk kedua dialek.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&shiftsModel.ShiftModel{},
		&breaksModel.BreakModel{},
		&breaksModel.ActivityTrackerModel{},
		&policyModel.PayrollConfigModel{},
		&payrollModel.PayAdjustmentModel{},
		&payrollModel.PayPeriodModel{},
		&payrollModel.CooldownModel{},
		&schedulingModel.StaffAvailabilityModel{},
		&schedulingModel.StaffScheduleModel{},
		&schedulingModel.ShiftSwapRequestModel{},
		&schedulingModel.WorkRequestModel{},
		&schedulingModel.UPTBalanceModel{},
		&schedulingModel.UPTTransactionModel{},
		&schedulingModel.StaffWriteupModel{},
		&schedulingModel.MissedShiftModel{},
	); err != nil {
		return err
	}

	// Paling banyak satu shift terbuka per (guild, user): cek + insert
	// dijaga oleh index unik parsial, bukan dua round-trip.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_one_open
		 ON shifts (guild_id, user_id) WHERE clock_out IS NULL`,
	).Error
}
