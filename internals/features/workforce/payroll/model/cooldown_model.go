package model

import "time"

// CooldownModel: jendela blokir clock-in setelah forced clock-out harian.
// Dihapus saat kedaluwarsa terbaca, atau oleh reset administratif.
type CooldownModel struct {
	CooldownGuildID string `gorm:"primaryKey;column:guild_id" json:"guild_id"`
	CooldownUserID  string `gorm:"primaryKey;column:user_id"  json:"user_id"`

	CooldownUntil time.Time `gorm:"not null;column:cooldown_until" json:"cooldown_until"`
}

func (CooldownModel) TableName() string { return "payroll_cooldowns" }
