package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StaffAvailabilityModel: preferensi hari + jam kerja per staff.
// preferred_days / preferred_times disimpan sebagai JSON, mengikuti
// format lama: ["monday","tuesday"] dan {"start":"09:00","end":"17:00"}.
type StaffAvailabilityModel struct {
	AvailabilityID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	AvailabilityGuildID string `gorm:"not null;uniqueIndex:idx_staff_availability;column:guild_id" json:"guild_id"`
	AvailabilityUserID  string `gorm:"not null;uniqueIndex:idx_staff_availability;column:user_id"  json:"user_id"`

	AvailabilityPreferredDays  datatypes.JSON `gorm:"not null;column:preferred_days"  json:"preferred_days"`
	AvailabilityPreferredTimes datatypes.JSON `gorm:"not null;column:preferred_times" json:"preferred_times"`

	AvailabilityUpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (StaffAvailabilityModel) TableName() string { return "staff_availability" }
