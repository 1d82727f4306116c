package model

import (
	"time"

	"github.com/google/uuid"
)

// BreakModel: istirahat (manual atau otomatis karena idle) milik satu shift.
// Maksimal satu break terbuka (break_end NULL) per shift.
type BreakModel struct {
	BreakID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	BreakShiftID uuid.UUID `gorm:"type:uuid;not null;index:idx_breaks_shift;column:shift_id" json:"shift_id"`

	BreakStart           time.Time  `gorm:"not null;column:break_start" json:"break_start"`
	BreakEnd             *time.Time `gorm:"column:break_end"            json:"break_end,omitempty"`
	BreakDurationMinutes *int       `gorm:"column:duration_minutes"     json:"duration_minutes,omitempty"`
}

func (BreakModel) TableName() string { return "breaks" }
