package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/model"
)

// Tarif UPT (menit). Clock-in menambah, absen memotong.
const (
	UPTAccrualPerClockIn = 15
	UPTCostAbsence       = 120
)

const (
	UPTReasonAccrual = "accrual"
	UPTReasonAbsence = "absence"
	UPTReasonManual  = "manual_adjustment"
)

var ErrInsufficientUPT = errors.New("saldo UPT tidak cukup")

// UPTService: saldo Unpaid Time Off per staff plus riwayat mutasinya.
type UPTService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewUPTService(db *gorm.DB) *UPTService {
	return &UPTService{DB: db, Now: time.Now}
}

// GetBalance: baca saldo, buat baris 0 kalau belum ada.
func (s *UPTService) GetBalance(guildID, userID string) (*model.UPTBalanceModel, error) {
	var bal model.UPTBalanceModel
	err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).Take(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := s.Now()
		bal = model.UPTBalanceModel{
			UPTBalanceID:        uuid.New(),
			UPTBalanceGuildID:   guildID,
			UPTBalanceUserID:    userID,
			UPTBalanceMinutes:   0,
			UPTBalanceCreatedAt: now,
			UPTBalanceUpdatedAt: now,
		}
		if cerr := s.DB.Create(&bal).Error; cerr != nil {
			// race dengan pembuat lain: baca ulang
			if rerr := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).Take(&bal).Error; rerr != nil {
				return nil, cerr
			}
		}
		return &bal, nil
	}
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

// AccrueForClockIn menambah UPTAccrualPerClockIn menit, maksimal sekali
// per tanggal (idempoten lewat last_accrual_date).
func (s *UPTService) AccrueForClockIn(guildID, userID, date string) (bool, error) {
	bal, err := s.GetBalance(guildID, userID)
	if err != nil {
		return false, err
	}
	if bal.UPTBalanceLastAccrual != nil && *bal.UPTBalanceLastAccrual == date {
		return false, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.UPTBalanceModel{}).
			Where("id = ? AND (last_accrual_date IS NULL OR last_accrual_date <> ?)", bal.UPTBalanceID, date).
			Updates(map[string]interface{}{
				"balance_minutes":   gorm.Expr("balance_minutes + ?", UPTAccrualPerClockIn),
				"last_accrual_date": date,
				"updated_at":        s.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // sudah accrue hari ini
		}
		return s.recordTx(tx, guildID, userID, UPTAccrualPerClockIn, UPTReasonAccrual, &date)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Deduct memotong saldo; gagal kalau saldo kurang dari amount.
func (s *UPTService) Deduct(guildID, userID string, amount int, reason string, relatedDate *string) error {
	bal, err := s.GetBalance(guildID, userID)
	if err != nil {
		return err
	}
	if bal.UPTBalanceMinutes < amount {
		return ErrInsufficientUPT
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.UPTBalanceModel{}).
			Where("id = ? AND balance_minutes >= ?", bal.UPTBalanceID, amount).
			Updates(map[string]interface{}{
				"balance_minutes": gorm.Expr("balance_minutes - ?", amount),
				"updated_at":      s.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientUPT
		}
		return s.recordTx(tx, guildID, userID, -amount, reason, relatedDate)
	})
}

// Adjust: koreksi manual admin, boleh positif atau negatif (saldo boleh
// jadi minus lewat jalur ini).
func (s *UPTService) Adjust(guildID, userID string, amount int, relatedDate *string) error {
	bal, err := s.GetBalance(guildID, userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.UPTBalanceModel{}).
			Where("id = ?", bal.UPTBalanceID).
			Updates(map[string]interface{}{
				"balance_minutes": gorm.Expr("balance_minutes + ?", amount),
				"updated_at":      s.Now(),
			}).Error
		if err != nil {
			return err
		}
		return s.recordTx(tx, guildID, userID, amount, UPTReasonManual, relatedDate)
	})
}

func (s *UPTService) History(guildID, userID string, limit int) ([]model.UPTTransactionModel, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []model.UPTTransactionModel
	err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (s *UPTService) recordTx(tx *gorm.DB, guildID, userID string, amount int, reason string, relatedDate *string) error {
	return tx.Create(&model.UPTTransactionModel{
		UPTTransactionID:          uuid.New(),
		UPTTransactionGuildID:     guildID,
		UPTTransactionUserID:      userID,
		UPTTransactionAmount:      amount,
		UPTTransactionReason:      reason,
		UPTTransactionRelatedDate: relatedDate,
		UPTTransactionCreatedAt:   s.Now(),
	}).Error
}
