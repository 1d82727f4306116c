package model

import (
	"time"

	"github.com/google/uuid"
)

type AdjustmentTargetType string

const (
	TargetUser AdjustmentTargetType = "user"
	TargetRole AdjustmentTargetType = "role"
)

// PayAdjustmentModel: multiplier gaji per user atau per role, upsert
// per (guild, target, type). Multiplier efektif: user menang atas role,
// antar role ambil yang terbesar, tanpa adjustment = 1.0.
type PayAdjustmentModel struct {
	AdjustmentID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	AdjustmentGuildID    string               `gorm:"not null;uniqueIndex:idx_pay_adjustments;column:guild_id"    json:"guild_id"`
	AdjustmentTargetID   string               `gorm:"not null;uniqueIndex:idx_pay_adjustments;column:target_id"   json:"target_id"`
	AdjustmentTargetType AdjustmentTargetType `gorm:"not null;uniqueIndex:idx_pay_adjustments;column:target_type" json:"target_type"`

	AdjustmentMultiplier float64 `gorm:"not null;default:1.0;column:multiplier" json:"multiplier"`
	AdjustmentReason     string  `gorm:"column:reason"                          json:"reason"`
	AdjustmentCreatedBy  string  `gorm:"not null;column:created_by"             json:"created_by"`

	AdjustmentCreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (PayAdjustmentModel) TableName() string { return "pay_adjustments" }
