package dto

import (
	"time"

	payModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/model"
)

/* ===================== REQUESTS ===================== */

type CalculatePayRequest struct {
	GuildID   string   `json:"guild_id"   validate:"required"`
	UserID    string   `json:"user_id"    validate:"required"`
	StartDate string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"end_date"   validate:"required,datetime=2006-01-02"`
	RoleIDs   []string `json:"role_ids"`
}

type AdjustmentRequest struct {
	GuildID    string  `json:"guild_id"    validate:"required"`
	TargetID   string  `json:"target_id"   validate:"required"`
	TargetType string  `json:"target_type" validate:"required,oneof=user role"`
	Multiplier float64 `json:"multiplier"  validate:"required,gt=0"`
	Reason     string  `json:"reason"`
	CreatedBy  string  `json:"created_by"  validate:"required"`
}

type RemoveAdjustmentRequest struct {
	GuildID    string `json:"guild_id"    validate:"required"`
	TargetID   string `json:"target_id"   validate:"required"`
	TargetType string `json:"target_type" validate:"required,oneof=user role"`
}

type ResetHoursRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	UserID  string `json:"user_id"  validate:"required"`
	Days    int    `json:"days"     validate:"omitempty,min=1,max=365"`
}

/* ===================== RESPONSES ===================== */

type AdjustmentResponse struct {
	GuildID    string    `json:"guild_id"`
	TargetID   string    `json:"target_id"`
	TargetType string    `json:"target_type"`
	Multiplier float64   `json:"multiplier"`
	Reason     string    `json:"reason,omitempty"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewAdjustmentResponses(ms []payModel.PayAdjustmentModel) []AdjustmentResponse {
	out := make([]AdjustmentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, AdjustmentResponse{
			GuildID:    m.AdjustmentGuildID,
			TargetID:   m.AdjustmentTargetID,
			TargetType: string(m.AdjustmentTargetType),
			Multiplier: m.AdjustmentMultiplier,
			Reason:     m.AdjustmentReason,
			CreatedBy:  m.AdjustmentCreatedBy,
			CreatedAt:  m.AdjustmentCreatedAt,
		})
	}
	return out
}

type PayPeriodResponse struct {
	ID         string     `json:"id"`
	GuildID    string     `json:"guild_id"`
	UserID     string     `json:"user_id"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	TotalHours float64    `json:"total_hours"`
	TotalPay   float64    `json:"total_pay"`
	Paid       bool       `json:"paid"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}

func NewPayPeriodResponse(m *payModel.PayPeriodModel) PayPeriodResponse {
	return PayPeriodResponse{
		ID:         m.PayPeriodID.String(),
		GuildID:    m.PayPeriodGuildID,
		UserID:     m.PayPeriodUserID,
		StartDate:  m.PayPeriodStartDate.Format("2006-01-02"),
		EndDate:    m.PayPeriodEndDate.Format("2006-01-02"),
		TotalHours: m.PayPeriodTotalHours,
		TotalPay:   m.PayPeriodTotalPay,
		Paid:       m.PayPeriodPaid,
		PaidAt:     m.PayPeriodPaidAt,
	}
}

func NewPayPeriodResponses(ms []payModel.PayPeriodModel) []PayPeriodResponse {
	out := make([]PayPeriodResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewPayPeriodResponse(&ms[i]))
	}
	return out
}
