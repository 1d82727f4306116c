package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityTrackerModel: timestamp aktivitas terakhir per shift terbuka,
// hanya dipakai sweep inactivity. Baris dihapus saat shift ditutup.
type ActivityTrackerModel struct {
	ActivityID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	ActivityGuildID string    `gorm:"not null;uniqueIndex:idx_activity_tracker;column:guild_id" json:"guild_id"`
	ActivityUserID  string    `gorm:"not null;uniqueIndex:idx_activity_tracker;column:user_id"  json:"user_id"`
	ActivityShiftID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_activity_tracker;column:shift_id" json:"shift_id"`

	ActivityLastActivity time.Time `gorm:"not null;column:last_activity" json:"last_activity"`
}

func (ActivityTrackerModel) TableName() string { return "activity_tracker" }
