package dto

import (
	"time"

	shiftModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
)

/* ===================== REQUESTS ===================== */

// ClockRequest dipakai clock-in, clock-out, break, dan ping aktivitas.
type ClockRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	UserID  string `json:"user_id"  validate:"required"`
}

/* ===================== RESPONSES ===================== */

type ShiftResponse struct {
	ID              string     `json:"id"`
	GuildID         string     `json:"guild_id"`
	UserID          string     `json:"user_id"`
	ClockIn         time.Time  `json:"clock_in"`
	ClockOut        *time.Time `json:"clock_out,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Open            bool       `json:"open"`
}

func NewShiftResponse(m *shiftModel.ShiftModel) ShiftResponse {
	return ShiftResponse{
		ID:              m.ShiftID.String(),
		GuildID:         m.ShiftGuildID,
		UserID:          m.ShiftUserID,
		ClockIn:         m.ShiftClockIn,
		ClockOut:        m.ShiftClockOut,
		DurationMinutes: m.ShiftDurationMinutes,
		Open:            m.IsOpen(),
	}
}

func NewShiftResponses(ms []shiftModel.ShiftModel) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewShiftResponse(&ms[i]))
	}
	return out
}

// StatusResponse: kondisi live satu staff (shift aktif + menit bersih).
type StatusResponse struct {
	Active        *ShiftResponse `json:"active_shift,omitempty"`
	OnBreak       bool           `json:"on_break"`
	WorkedMinutes int            `json:"worked_minutes_today"`
}
