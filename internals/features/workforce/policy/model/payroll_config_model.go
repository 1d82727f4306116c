package model

// PayrollConfigModel: satu baris kebijakan per guild, dibuat lazy dengan
// default saat pertama kali dibaca.
//
// Catatan default max_days_per_week: kolom default 4 (warisan skema lama),
// tapi baris yang dibuat lazy menulis 5 — dua-duanya dipertahankan apa
// adanya, jangan disamakan tanpa keputusan produk.
type PayrollConfigModel struct {
	ConfigGuildID string `gorm:"primaryKey;column:guild_id" json:"guild_id"`

	ConfigHourlyRate      float64 `gorm:"not null;default:15.0;column:hourly_rate"       json:"hourly_rate"`
	ConfigMaxHoursPerDay  int     `gorm:"not null;default:5;column:max_hours_per_day"    json:"max_hours_per_day"`
	ConfigMaxDaysPerWeek  int     `gorm:"not null;default:4;column:max_days_per_week"    json:"max_days_per_week"`
	ConfigAutoBreakMinute int     `gorm:"not null;default:10;column:auto_break_minutes"  json:"auto_break_minutes"`
	ConfigIsEnabled       bool    `gorm:"not null;default:true;column:is_enabled"        json:"is_enabled"`
}

func (PayrollConfigModel) TableName() string { return "payroll_config" }
