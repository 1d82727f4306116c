package model

import (
	"time"

	"github.com/google/uuid"
)

type SwapRequestType string

const (
	SwapTypeDrop SwapRequestType = "drop"
	SwapTypeSwap SwapRequestType = "swap"
)

type SwapRequestStatus string

const (
	SwapStatusPending   SwapRequestStatus = "pending"
	SwapStatusAccepted  SwapRequestStatus = "accepted"
	SwapStatusDeclined  SwapRequestStatus = "declined"
	SwapStatusCancelled SwapRequestStatus = "cancelled"
)

// ShiftSwapRequestModel: permintaan drop (target NULL, siapa saja boleh
// ambil) atau swap (tukar dua hari dengan target tertentu).
// State machine: pending → accepted/declined/cancelled, lalu final.
type ShiftSwapRequestModel struct {
	SwapID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	SwapGuildID      string  `gorm:"not null;index:idx_swap_requests_guild;column:guild_id" json:"guild_id"`
	SwapRequesterID  string  `gorm:"not null;column:requester_id"  json:"requester_id"`
	SwapTargetUserID *string `gorm:"column:target_user_id"         json:"target_user_id,omitempty"`

	SwapRequestType  SwapRequestType `gorm:"not null;column:request_type" json:"request_type"`
	SwapDayToGive    string          `gorm:"not null;column:day_to_give"  json:"day_to_give"`
	SwapDayToReceive *string         `gorm:"column:day_to_receive"        json:"day_to_receive,omitempty"`

	SwapWeekStart  string            `gorm:"not null;column:week_start" json:"week_start"`
	SwapStatus     SwapRequestStatus `gorm:"not null;default:'pending';column:status" json:"status"`
	SwapAcceptedBy *string           `gorm:"column:accepted_by" json:"accepted_by,omitempty"`

	SwapCreatedAt   time.Time  `gorm:"not null;column:created_at" json:"created_at"`
	SwapRespondedAt *time.Time `gorm:"column:responded_at"        json:"responded_at,omitempty"`
}

func (ShiftSwapRequestModel) TableName() string { return "shift_swap_requests" }
