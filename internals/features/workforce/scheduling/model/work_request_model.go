package model

import (
	"time"

	"github.com/google/uuid"
)

type WorkRequestStatus string

const (
	WorkStatusPending  WorkRequestStatus = "pending"
	WorkStatusApproved WorkRequestStatus = "approved"
	WorkStatusDenied   WorkRequestStatus = "denied"
)

// WorkRequestModel: izin clock-in di luar jadwal untuk satu tanggal.
// Disetujui/ditolak sekali (pending → approved/denied), dikonsumsi
// pengecekan clock-in sebagai override.
type WorkRequestModel struct {
	WorkRequestID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	WorkRequestGuildID string `gorm:"not null;index:idx_work_requests_guild;column:guild_id" json:"guild_id"`
	WorkRequestUserID  string `gorm:"not null;column:user_id" json:"user_id"`

	WorkRequestDate   string            `gorm:"not null;column:requested_date" json:"requested_date"` // YYYY-MM-DD
	WorkRequestStatus WorkRequestStatus `gorm:"not null;default:'pending';column:status" json:"status"`

	WorkRequestOwnerResponse *string `gorm:"column:owner_response" json:"owner_response,omitempty"`

	WorkRequestCreatedAt   time.Time  `gorm:"not null;column:created_at" json:"created_at"`
	WorkRequestRespondedAt *time.Time `gorm:"column:responded_at"        json:"responded_at,omitempty"`
}

func (WorkRequestModel) TableName() string { return "work_requests" }
