package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/model"
)

// Service: penyimpanan kebijakan per guild. Config dibuat lazy dengan
// default saat pertama kali dibaca; tidak pernah dihapus.
type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// GetOrCreate membaca config guild, membuat baris default kalau belum ada.
// Default insert: rate 15.0, 5 jam/hari, 5 hari/minggu, idle 10 menit, aktif.
func (s *Service) GetOrCreate(guildID string) (*model.PayrollConfigModel, error) {
	var cfg model.PayrollConfigModel
	err := s.DB.Where("guild_id = ?", guildID).Take(&cfg).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cfg = model.PayrollConfigModel{
		ConfigGuildID:         guildID,
		ConfigHourlyRate:      15.0,
		ConfigMaxHoursPerDay:  5,
		ConfigMaxDaysPerWeek:  5,
		ConfigAutoBreakMinute: 10,
		ConfigIsEnabled:       true,
	}
	if err := s.DB.Create(&cfg).Error; err != nil {
		// balapan dengan pembuat lain: baca ulang saja
		if readErr := s.DB.Where("guild_id = ?", guildID).Take(&cfg).Error; readErr == nil {
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// UpdateInput: field nil = tidak diubah.
type UpdateInput struct {
	HourlyRate       *float64
	MaxHoursPerDay   *int
	MaxDaysPerWeek   *int
	AutoBreakMinutes *int
	IsEnabled        *bool
}

func (s *Service) Update(guildID string, in UpdateInput) (*model.PayrollConfigModel, error) {
	if _, err := s.GetOrCreate(guildID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.HourlyRate != nil {
		updates["hourly_rate"] = *in.HourlyRate
	}
	if in.MaxHoursPerDay != nil {
		updates["max_hours_per_day"] = *in.MaxHoursPerDay
	}
	if in.MaxDaysPerWeek != nil {
		updates["max_days_per_week"] = *in.MaxDaysPerWeek
	}
	if in.AutoBreakMinutes != nil {
		updates["auto_break_minutes"] = *in.AutoBreakMinutes
	}
	if in.IsEnabled != nil {
		updates["is_enabled"] = *in.IsEnabled
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&model.PayrollConfigModel{}).
			Where("guild_id = ?", guildID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetOrCreate(guildID)
}

// EnabledGuildIDs: semua guild dengan payroll aktif, dipakai sweep periodik.
func (s *Service) EnabledGuildIDs() ([]string, error) {
	var ids []string
	err := s.DB.Model(&model.PayrollConfigModel{}).
		Where("is_enabled = ?", true).
		Distinct().
		Pluck("guild_id", &ids).Error
	return ids, err
}
