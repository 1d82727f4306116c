package model

import (
	"time"

	"github.com/google/uuid"
)

// UPTBalanceModel: saldo Unpaid Time Off per staff (menit).
// Bertambah saat clock-in terjadwal, terpotong saat telat/absen.
type UPTBalanceModel struct {
	UPTBalanceID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	UPTBalanceGuildID string `gorm:"not null;uniqueIndex:idx_upt_balances;column:guild_id" json:"guild_id"`
	UPTBalanceUserID  string `gorm:"not null;uniqueIndex:idx_upt_balances;column:user_id"  json:"user_id"`

	UPTBalanceMinutes     int     `gorm:"not null;default:0;column:balance_minutes" json:"balance_minutes"`
	UPTBalanceLastAccrual *string `gorm:"column:last_accrual_date" json:"last_accrual_date,omitempty"` // YYYY-MM-DD

	UPTBalanceCreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UPTBalanceUpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (UPTBalanceModel) TableName() string { return "upt_balances" }

// UPTTransactionModel: riwayat mutasi UPT. amount positif = earn,
// negatif = terpakai. reason: accrual / late / absence / manual_adjustment.
type UPTTransactionModel struct {
	UPTTransactionID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	UPTTransactionGuildID string `gorm:"not null;index:idx_upt_transactions;column:guild_id" json:"guild_id"`
	UPTTransactionUserID  string `gorm:"not null;index:idx_upt_transactions;column:user_id"  json:"user_id"`

	UPTTransactionAmount      int     `gorm:"not null;column:amount_minutes" json:"amount_minutes"`
	UPTTransactionReason      string  `gorm:"not null;column:reason"         json:"reason"`
	UPTTransactionRelatedDate *string `gorm:"column:related_date"            json:"related_date,omitempty"`

	UPTTransactionCreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (UPTTransactionModel) TableName() string { return "upt_transactions" }
