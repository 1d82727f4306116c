package model

import (
	"time"

	"github.com/google/uuid"
)

// StaffWriteupModel: catatan pelanggaran (telat tanpa UPT, absen, dst).
type StaffWriteupModel struct {
	WriteupID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	WriteupGuildID string `gorm:"not null;index:idx_staff_writeups;column:guild_id" json:"guild_id"`
	WriteupUserID  string `gorm:"not null;index:idx_staff_writeups;column:user_id"  json:"user_id"`

	WriteupReason   string `gorm:"not null;column:reason"    json:"reason"`
	WriteupIssuedBy string `gorm:"not null;column:issued_by" json:"issued_by"`

	WriteupRelatedDate *string `gorm:"column:related_date" json:"related_date,omitempty"`
	WriteupSeverity    string  `gorm:"not null;default:'standard';column:severity" json:"severity"`
	WriteupNotes       *string `gorm:"column:notes" json:"notes,omitempty"`

	WriteupCreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (StaffWriteupModel) TableName() string { return "staff_writeups" }

// MissedShiftModel: shift TERJADWAL yang dilewatkan (bukan hari bebas).
type MissedShiftModel struct {
	MissedID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	MissedGuildID string `gorm:"not null;index:idx_missed_shifts;column:guild_id" json:"guild_id"`
	MissedUserID  string `gorm:"not null;index:idx_missed_shifts;column:user_id"  json:"user_id"`

	MissedScheduledDate string `gorm:"not null;column:scheduled_date" json:"scheduled_date"` // YYYY-MM-DD
	MissedWeekStart     string `gorm:"not null;column:week_start"     json:"week_start"`
	MissedDayOfWeek     string `gorm:"not null;column:day_of_week"    json:"day_of_week"`

	MissedUPTUsed bool `gorm:"not null;default:false;column:upt_used" json:"upt_used"`

	MissedCreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (MissedShiftModel) TableName() string { return "missed_shifts" }
