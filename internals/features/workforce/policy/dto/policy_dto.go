package dto

import (
	policyModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/model"
	policyService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/service"
)

/* ===================== REQUESTS ===================== */

type UpdateConfigRequest struct {
	HourlyRate       *float64 `json:"hourly_rate"        validate:"omitempty,gt=0"`
	MaxHoursPerDay   *int     `json:"max_hours_per_day"  validate:"omitempty,min=1,max=24"`
	MaxDaysPerWeek   *int     `json:"max_days_per_week"  validate:"omitempty,min=1,max=7"`
	AutoBreakMinutes *int     `json:"auto_break_minutes" validate:"omitempty,min=1"`
	IsEnabled        *bool    `json:"is_enabled"`
}

func (r *UpdateConfigRequest) ToInput() policyService.UpdateInput {
	return policyService.UpdateInput{
		HourlyRate:       r.HourlyRate,
		MaxHoursPerDay:   r.MaxHoursPerDay,
		MaxDaysPerWeek:   r.MaxDaysPerWeek,
		AutoBreakMinutes: r.AutoBreakMinutes,
		IsEnabled:        r.IsEnabled,
	}
}

/* ===================== RESPONSES ===================== */

type ConfigResponse struct {
	GuildID          string  `json:"guild_id"`
	HourlyRate       float64 `json:"hourly_rate"`
	MaxHoursPerDay   int     `json:"max_hours_per_day"`
	MaxDaysPerWeek   int     `json:"max_days_per_week"`
	AutoBreakMinutes int     `json:"auto_break_minutes"`
	IsEnabled        bool    `json:"is_enabled"`
}

func NewConfigResponse(m *policyModel.PayrollConfigModel) ConfigResponse {
	return ConfigResponse{
		GuildID:          m.ConfigGuildID,
		HourlyRate:       m.ConfigHourlyRate,
		MaxHoursPerDay:   m.ConfigMaxHoursPerDay,
		MaxDaysPerWeek:   m.ConfigMaxDaysPerWeek,
		AutoBreakMinutes: m.ConfigAutoBreakMinute,
		IsEnabled:        m.ConfigIsEnabled,
	}
}
