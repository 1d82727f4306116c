package model

import (
	"time"

	"github.com/google/uuid"
)

// ShiftModel: satu baris per sesi kerja. Shift "terbuka" = clock_out NULL;
// index unik parsial di migrasi menjamin maksimal satu per (guild, user).
type ShiftModel struct {
	ShiftID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	ShiftGuildID string `gorm:"not null;index:idx_shifts_guild_user;column:guild_id" json:"guild_id"`
	ShiftUserID  string `gorm:"not null;index:idx_shifts_guild_user;column:user_id"  json:"user_id"`

	ShiftClockIn         time.Time  `gorm:"not null;column:clock_in" json:"clock_in"`
	ShiftClockOut        *time.Time `gorm:"column:clock_out"         json:"clock_out,omitempty"`
	ShiftDurationMinutes *int       `gorm:"column:duration_minutes"  json:"duration_minutes,omitempty"`

	ShiftCreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ShiftModel) TableName() string { return "shifts" }

// IsOpen true jika shift belum di-clock-out.
func (s *ShiftModel) IsOpen() bool { return s.ShiftClockOut == nil }
