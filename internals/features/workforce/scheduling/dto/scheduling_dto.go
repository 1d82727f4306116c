package dto

import (
	"time"

	schedModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/model"
	schedService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/service"
)

/* ===================== REQUESTS ===================== */

type SetAvailabilityRequest struct {
	GuildID string   `json:"guild_id" validate:"required"`
	UserID  string   `json:"user_id"  validate:"required"`
	Days    []string `json:"days"     validate:"required,min=1,max=7"`
	Start   string   `json:"start"    validate:"required,datetime=15:04"`
	End     string   `json:"end"      validate:"required,datetime=15:04"`
}

type GenerateWeekRequest struct {
	GuildID   string `json:"guild_id"   validate:"required"`
	WeekStart string `json:"week_start" validate:"required,datetime=2006-01-02"`
}

type SwapRequestInput struct {
	GuildID      string  `json:"guild_id"     validate:"required"`
	RequesterID  string  `json:"requester_id" validate:"required"`
	RequestType  string  `json:"request_type" validate:"required,oneof=drop swap"`
	DayToGive    string  `json:"day_to_give"  validate:"required"`
	WeekStart    string  `json:"week_start"   validate:"required,datetime=2006-01-02"`
	TargetUserID *string `json:"target_user_id"`
	DayToReceive *string `json:"day_to_receive"`
}

type SwapActionRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type WorkRequestInput struct {
	GuildID string `json:"guild_id" validate:"required"`
	UserID  string `json:"user_id"  validate:"required"`
	Date    string `json:"date"     validate:"required,datetime=2006-01-02"`
}

type WorkRequestRespondInput struct {
	Approve  bool   `json:"approve"`
	Response string `json:"response"`
}

type UPTAdjustRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	UserID  string `json:"user_id"  validate:"required"`
	Amount  int    `json:"amount"   validate:"required"`
	Date    string `json:"date"     validate:"omitempty,datetime=2006-01-02"`
}

/* ===================== RESPONSES ===================== */

type ScheduleResponse struct {
	UserID    string   `json:"user_id"`
	WeekStart string   `json:"week_start"`
	Days      []string `json:"days"`
}

func NewScheduleResponse(m *schedModel.StaffScheduleModel) (ScheduleResponse, error) {
	days, err := schedService.AssignedDays(m)
	if err != nil {
		return ScheduleResponse{}, err
	}
	return ScheduleResponse{
		UserID:    m.ScheduleUserID,
		WeekStart: m.ScheduleWeekStart,
		Days:      days,
	}, nil
}

type SwapResponse struct {
	ID           string     `json:"id"`
	GuildID      string     `json:"guild_id"`
	RequesterID  string     `json:"requester_id"`
	TargetUserID *string    `json:"target_user_id,omitempty"`
	RequestType  string     `json:"request_type"`
	DayToGive    string     `json:"day_to_give"`
	DayToReceive *string    `json:"day_to_receive,omitempty"`
	WeekStart    string     `json:"week_start"`
	Status       string     `json:"status"`
	AcceptedBy   *string    `json:"accepted_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

func NewSwapResponse(m *schedModel.ShiftSwapRequestModel) SwapResponse {
	return SwapResponse{
		ID:           m.SwapID.String(),
		GuildID:      m.SwapGuildID,
		RequesterID:  m.SwapRequesterID,
		TargetUserID: m.SwapTargetUserID,
		RequestType:  string(m.SwapRequestType),
		DayToGive:    m.SwapDayToGive,
		DayToReceive: m.SwapDayToReceive,
		WeekStart:    m.SwapWeekStart,
		Status:       string(m.SwapStatus),
		AcceptedBy:   m.SwapAcceptedBy,
		CreatedAt:    m.SwapCreatedAt,
		RespondedAt:  m.SwapRespondedAt,
	}
}

func NewSwapResponses(ms []schedModel.ShiftSwapRequestModel) []SwapResponse {
	out := make([]SwapResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewSwapResponse(&ms[i]))
	}
	return out
}

type UPTBalanceResponse struct {
	UserID         string  `json:"user_id"`
	BalanceMinutes int     `json:"balance_minutes"`
	LastAccrual    *string `json:"last_accrual_date,omitempty"`
}

func NewUPTBalanceResponse(m *schedModel.UPTBalanceModel) UPTBalanceResponse {
	return UPTBalanceResponse{
		UserID:         m.UPTBalanceUserID,
		BalanceMinutes: m.UPTBalanceMinutes,
		LastAccrual:    m.UPTBalanceLastAccrual,
	}
}
