package model

import (
	"time"

	"github.com/google/uuid"
)

// PayPeriodModel: snapshot jam + pay untuk satu rentang tanggal.
// Immutable setelah dibuat kecuali transisi satu arah unpaid → paid.
type PayPeriodModel struct {
	PayPeriodID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	PayPeriodGuildID string `gorm:"not null;index:idx_pay_periods_user;column:guild_id" json:"guild_id"`
	PayPeriodUserID  string `gorm:"not null;index:idx_pay_periods_user;column:user_id"  json:"user_id"`

	PayPeriodStartDate time.Time `gorm:"not null;column:start_date" json:"start_date"`
	PayPeriodEndDate   time.Time `gorm:"not null;column:end_date"   json:"end_date"`

	PayPeriodTotalHours float64 `gorm:"not null;column:total_hours" json:"total_hours"`
	PayPeriodTotalPay   float64 `gorm:"not null;column:total_pay"   json:"total_pay"`

	PayPeriodPaid   bool       `gorm:"not null;default:false;index:idx_pay_periods_paid;column:paid" json:"paid"`
	PayPeriodPaidAt *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	PayPeriodCreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (PayPeriodModel) TableName() string { return "pay_periods" }
