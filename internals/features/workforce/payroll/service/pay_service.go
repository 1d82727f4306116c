package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	breakModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/breaks/model"
	breakService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/breaks/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/model"
	policyService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/service"
	shiftModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

// PayService: kalkulasi gaji, pay adjustment, dan pay period.
type PayService struct {
	DB     *gorm.DB
	Policy *policyService.Service
	Breaks *breakService.Service
	Now    func() time.Time
}

func NewPayService(db *gorm.DB) *PayService {
	return &PayService{
		DB:     db,
		Policy: policyService.New(db),
		Breaks: breakService.New(db),
		Now:    time.Now,
	}
}

// PayResult: jam dan pay masing-masing dibulatkan 2 desimal dari nilai
// mentahnya sendiri (bukan berantai).
type PayResult struct {
	TotalHours float64 `json:"total_hours"`
	TotalPay   float64 `json:"total_pay"`
	Shifts     int     `json:"shifts"`
}

// CalculatePay menjumlahkan shift selesai dengan clock_in dalam
// [start, end], dikurangi break selesai per shift, dikali rate guild.
func (s *PayService) CalculatePay(guildID, userID string, start, end time.Time) (*PayResult, error) {
	cfg, err := s.Policy.GetOrCreate(guildID)
	if err != nil {
		return nil, err
	}

	var shifts []shiftModel.ShiftModel
	err = s.DB.Where(
		"guild_id = ? AND user_id = ? AND clock_in >= ? AND clock_in <= ? AND clock_out IS NOT NULL",
		guildID, userID, start, end,
	).Find(&shifts).Error
	if err != nil {
		return nil, err
	}

	totalMinutes := 0
	for _, sh := range shifts {
		mins := 0
		if sh.ShiftDurationMinutes != nil {
			mins = *sh.ShiftDurationMinutes
		}
		closed, err := s.Breaks.ClosedBreakMinutes(s.DB, sh.ShiftID)
		if err != nil {
			return nil, err
		}
		totalMinutes += mins - closed
	}

	rawHours := float64(totalMinutes) / 60.0
	return &PayResult{
		TotalHours: helper.Round2(rawHours),
		TotalPay:   helper.Round2(rawHours * cfg.ConfigHourlyRate),
		Shifts:     len(shifts),
	}, nil
}

// AdjustedPayResult menambahkan multiplier efektif di atas PayResult.
type AdjustedPayResult struct {
	TotalHours float64 `json:"total_hours"`
	BasePay    float64 `json:"base_pay"`
	Multiplier float64 `json:"multiplier"`
	TotalPay   float64 `json:"total_pay"`
	Shifts     int     `json:"shifts"`
}

func (s *PayService) CalculatePayWithMultiplier(guildID, userID string, roleIDs []string, start, end time.Time) (*AdjustedPayResult, error) {
	base, err := s.CalculatePay(guildID, userID, start, end)
	if err != nil {
		return nil, err
	}
	mult, err := s.EffectiveMultiplier(guildID, userID, roleIDs)
	if err != nil {
		return nil, err
	}
	return &AdjustedPayResult{
		TotalHours: base.TotalHours,
		BasePay:    base.TotalPay,
		Multiplier: mult,
		TotalPay:   helper.Round2(base.TotalPay * mult),
		Shifts:     base.Shifts,
	}, nil
}

// ===================== PAY ADJUSTMENT =====================

// SetAdjustment upsert multiplier per (guild, target, type).
func (s *PayService) SetAdjustment(guildID, targetID string, targetType model.AdjustmentTargetType, multiplier float64, reason, createdBy string) error {
	now := s.Now()
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "guild_id"}, {Name: "target_id"}, {Name: "target_type"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"multiplier": multiplier,
			"reason":     reason,
			"created_by": createdBy,
			"created_at": now,
		}),
	}).Create(&model.PayAdjustmentModel{
		AdjustmentID:         uuid.New(),
		AdjustmentGuildID:    guildID,
		AdjustmentTargetID:   targetID,
		AdjustmentTargetType: targetType,
		AdjustmentMultiplier: multiplier,
		AdjustmentReason:     reason,
		AdjustmentCreatedBy:  createdBy,
		AdjustmentCreatedAt:  now,
	}).Error
}

// GetAdjustment: multiplier untuk satu target, nil kalau tidak diset.
func (s *PayService) GetAdjustment(guildID, targetID string, targetType model.AdjustmentTargetType) (*float64, error) {
	var adj model.PayAdjustmentModel
	err := s.DB.Where("guild_id = ? AND target_id = ? AND target_type = ?", guildID, targetID, targetType).
		Take(&adj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &adj.AdjustmentMultiplier, nil
}

func (s *PayService) ListAdjustments(guildID string) ([]model.PayAdjustmentModel, error) {
	var out []model.PayAdjustmentModel
	err := s.DB.Where("guild_id = ?", guildID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *PayService) RemoveAdjustment(guildID, targetID string, targetType model.AdjustmentTargetType) (bool, error) {
	res := s.DB.Where("guild_id = ? AND target_id = ? AND target_type = ?", guildID, targetID, targetType).
		Delete(&model.PayAdjustmentModel{})
	return res.RowsAffected > 0, res.Error
}

// EffectiveMultiplier: adjustment user selalu menang; kalau tidak ada,
// ambil multiplier role terbesar; tanpa keduanya = 1.0.
func (s *PayService) EffectiveMultiplier(guildID, userID string, roleIDs []string) (float64, error) {
	userAdj, err := s.GetAdjustment(guildID, userID, model.TargetUser)
	if err != nil {
		return 0, err
	}
	if userAdj != nil {
		return *userAdj, nil
	}

	highest := 1.0
	for _, roleID := range roleIDs {
		roleAdj, err := s.GetAdjustment(guildID, roleID, model.TargetRole)
		if err != nil {
			return 0, err
		}
		if roleAdj != nil && *roleAdj > highest {
			highest = *roleAdj
		}
	}
	return highest, nil
}

// ===================== PAY PERIOD =====================

// CreatePayPeriod snapshot kalkulasi ke baris immutable (paid = false).
func (s *PayService) CreatePayPeriod(guildID, userID string, start, end time.Time) (*model.PayPeriodModel, error) {
	res, err := s.CalculatePay(guildID, userID, start, end)
	if err != nil {
		return nil, err
	}

	p := model.PayPeriodModel{
		PayPeriodID:         uuid.New(),
		PayPeriodGuildID:    guildID,
		PayPeriodUserID:     userID,
		PayPeriodStartDate:  start,
		PayPeriodEndDate:    end,
		PayPeriodTotalHours: res.TotalHours,
		PayPeriodTotalPay:   res.TotalPay,
		PayPeriodPaid:       false,
		PayPeriodCreatedAt:  s.Now(),
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkPayPeriodPaid: transisi satu arah unpaid → paid. Sudah paid = no-op
// (false), bukan error.
func (s *PayService) MarkPayPeriodPaid(payPeriodID uuid.UUID) (bool, error) {
	res := s.DB.Model(&model.PayPeriodModel{}).
		Where("id = ? AND paid = ?", payPeriodID, false).
		Updates(map[string]interface{}{
			"paid":    true,
			"paid_at": s.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// GetUnpaidPayPeriods: userID kosong = seluruh guild.
func (s *PayService) GetUnpaidPayPeriods(guildID, userID string) ([]model.PayPeriodModel, error) {
	q := s.DB.Where("guild_id = ? AND paid = ?", guildID, false)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var out []model.PayPeriodModel
	err := q.Order("end_date DESC").Find(&out).Error
	return out, err
}

func (s *PayService) GetUserPayPeriods(guildID, userID string, limit int) ([]model.PayPeriodModel, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []model.PayPeriodModel
	err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("end_date DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UnpaidBalance: agregat pay period belum dibayar milik satu staff.
type UnpaidBalance struct {
	UserID     string  `json:"user_id"`
	TotalPay   float64 `json:"total_pay"`
	TotalHours float64 `json:"total_hours"`
	Periods    int     `json:"periods"`
}

func (s *PayService) GetTotalUnpaidBalance(guildID, userID string) (*UnpaidBalance, error) {
	var row struct {
		Pay     float64
		Hours   float64
		Periods int64
	}
	err := s.DB.Model(&model.PayPeriodModel{}).
		Where("guild_id = ? AND user_id = ? AND paid = ?", guildID, userID, false).
		Select("COALESCE(SUM(total_pay),0) as pay, COALESCE(SUM(total_hours),0) as hours, COUNT(*) as periods").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &UnpaidBalance{
		UserID:     userID,
		TotalPay:   helper.Round2(row.Pay),
		TotalHours: helper.Round2(row.Hours),
		Periods:    int(row.Periods),
	}, nil
}

// GetAllUnpaidBalances: per staff, urut dari yang paling besar (untuk
// laporan harian owner).
func (s *PayService) GetAllUnpaidBalances(guildID string) ([]UnpaidBalance, error) {
	var rows []struct {
		UserID  string
		Pay     float64
		Hours   float64
		Periods int64
	}
	err := s.DB.Model(&model.PayPeriodModel{}).
		Where("guild_id = ? AND paid = ?", guildID, false).
		Select("user_id, COALESCE(SUM(total_pay),0) as pay, COALESCE(SUM(total_hours),0) as hours, COUNT(*) as periods").
		Group("user_id").
		Order("pay DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]UnpaidBalance, 0, len(rows))
	for _, r := range rows {
		out = append(out, UnpaidBalance{
			UserID:     r.UserID,
			TotalPay:   helper.Round2(r.Pay),
			TotalHours: helper.Round2(r.Hours),
			Periods:    int(r.Periods),
		})
	}
	return out, nil
}

// ===================== RESET ADMINISTRATIF =====================

type ResetResult struct {
	DeletedShifts int     `json:"deleted_shifts"`
	DeletedHours  float64 `json:"deleted_hours"`
}

// ResetPayrollHours: satu-satunya jalur penghapusan shift. Menghapus
// shift + break + activity + pay period unpaid dalam rentang N hari
// terakhir, dan mencabut cooldown, dalam satu transaksi.
func (s *PayService) ResetPayrollHours(guildID, userID string, days int) (*ResetResult, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := s.Now().AddDate(0, 0, -days)

	var result ResetResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var minutes int64
		if err := tx.Model(&shiftModel.ShiftModel{}).
			Where("guild_id = ? AND user_id = ? AND clock_in >= ? AND clock_out IS NOT NULL", guildID, userID, cutoff).
			Select("COALESCE(SUM(duration_minutes),0)").
			Scan(&minutes).Error; err != nil {
			return err
		}

		var shiftIDs []uuid.UUID
		if err := tx.Model(&shiftModel.ShiftModel{}).
			Where("guild_id = ? AND user_id = ? AND clock_in >= ?", guildID, userID, cutoff).
			Pluck("id", &shiftIDs).Error; err != nil {
			return err
		}

		if len(shiftIDs) > 0 {
			if err := tx.Where("shift_id IN ?", shiftIDs).Delete(&breakModel.BreakModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("shift_id IN ?", shiftIDs).Delete(&breakModel.ActivityTrackerModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", shiftIDs).Delete(&shiftModel.ShiftModel{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("guild_id = ? AND user_id = ? AND paid = ? AND start_date >= ?", guildID, userID, false, cutoff).
			Delete(&model.PayPeriodModel{}).Error; err != nil {
			return err
		}

		if err := tx.Where("guild_id = ? AND user_id = ?", guildID, userID).
			Delete(&model.CooldownModel{}).Error; err != nil {
			return err
		}

		result.DeletedShifts = len(shiftIDs)
		result.DeletedHours = helper.Round2(float64(minutes) / 60.0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
