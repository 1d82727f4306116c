package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StaffScheduleModel: hasil generate mingguan per staff. week_start =
// tanggal Minggu (YYYY-MM-DD); assigned_days JSON array nama hari,
// terurut kanonik.
type StaffScheduleModel struct {
	ScheduleID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	ScheduleGuildID   string `gorm:"not null;uniqueIndex:idx_staff_schedules;column:guild_id"   json:"guild_id"`
	ScheduleUserID    string `gorm:"not null;uniqueIndex:idx_staff_schedules;column:user_id"    json:"user_id"`
	ScheduleWeekStart string `gorm:"not null;uniqueIndex:idx_staff_schedules;column:week_start" json:"week_start"`

	ScheduleAssignedDays datatypes.JSON `gorm:"not null;column:assigned_days" json:"assigned_days"`

	ScheduleCreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (StaffScheduleModel) TableName() string { return "staff_schedules" }
