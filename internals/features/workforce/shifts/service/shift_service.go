package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	breakService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/breaks/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

var (
	ErrAlreadyClockedIn = errors.New("sudah clock in")
	ErrNotClockedIn     = errors.New("belum clock in")
)

// Service: shift ledger. Menulis transisi clock-in/clock-out sebagai satu
// transaksi; cascade penutupan break + activity tracker ikut di dalamnya.
type Service struct {
	DB     *gorm.DB
	Breaks *breakService.Service
	Now    func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db, Breaks: breakService.New(db), Now: time.Now}
}

// ClockIn membuat shift terbuka baru. Cek "sudah ada shift terbuka?" dan
// insert berjalan dalam satu transaksi; index unik parsial menjaga balapan
// dua clock-in bersamaan.
func (s *Service) ClockIn(guildID, userID string) (*model.ShiftModel, error) {
	shift := model.ShiftModel{
		ShiftID:      uuid.New(),
		ShiftGuildID: guildID,
		ShiftUserID:  userID,
		ShiftClockIn: s.Now(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.ShiftModel
		err := tx.Where("guild_id = ? AND user_id = ? AND clock_out IS NULL", guildID, userID).
			Take(&existing).Error
		if err == nil {
			return ErrAlreadyClockedIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&shift).Error; err != nil {
			// index unik parsial menolak shift terbuka kedua
			return ErrAlreadyClockedIn
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// ClockOut menutup shift terbuka: durasi = menit penuh sejak clock-in,
// break terbuka ikut ditutup, baris activity tracker dihapus.
func (s *Service) ClockOut(guildID, userID string) (*model.ShiftModel, error) {
	var closed *model.ShiftModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var open model.ShiftModel
		err := tx.Where("guild_id = ? AND user_id = ? AND clock_out IS NULL", guildID, userID).
			Take(&open).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotClockedIn
		}
		if err != nil {
			return err
		}

		if err := s.Breaks.EndBreakTx(tx, open.ShiftID); err != nil {
			return err
		}

		now := s.Now()
		dur := helper.FloorMinutes(now.Sub(open.ShiftClockIn))

		// clock_out IS NULL di WHERE: balapan dengan sweep berakhir no-op
		res := tx.Model(&model.ShiftModel{}).
			Where("id = ? AND clock_out IS NULL", open.ShiftID).
			Updates(map[string]interface{}{
				"clock_out":        now,
				"duration_minutes": dur,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotClockedIn
		}

		if err := s.Breaks.ClearActivityTx(tx, open.ShiftID); err != nil {
			return err
		}

		open.ShiftClockOut = &now
		open.ShiftDurationMinutes = &dur
		closed = &open
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// GetActiveShift: shift terbuka user, nil kalau tidak ada.
func (s *Service) GetActiveShift(guildID, userID string) (*model.ShiftModel, error) {
	var sh model.ShiftModel
	err := s.DB.Where("guild_id = ? AND user_id = ? AND clock_out IS NULL", guildID, userID).
		Take(&sh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *Service) GetHistory(guildID, userID string, limit int) ([]model.ShiftModel, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []model.ShiftModel
	err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("clock_in DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetAllActiveForOrg: semua staff yang sedang clock in di satu guild.
func (s *Service) GetAllActiveForOrg(guildID string) ([]model.ShiftModel, error) {
	var out []model.ShiftModel
	err := s.DB.Where("guild_id = ? AND clock_out IS NULL", guildID).
		Order("clock_in ASC").
		Find(&out).Error
	return out, err
}

// GetAllOpenShifts: semua shift terbuka lintas guild (dipakai sweep).
func (s *Service) GetAllOpenShifts() ([]model.ShiftModel, error) {
	var out []model.ShiftModel
	err := s.DB.Where("clock_out IS NULL").Order("clock_in ASC").Find(&out).Error
	return out, err
}

// ShiftStats: ringkasan shift selesai dalam N hari terakhir.
type ShiftStats struct {
	TotalShifts    int `json:"total_shifts"`
	TotalMinutes   int `json:"total_minutes"`
	AverageMinutes int `json:"average_minutes"`
}

func (s *Service) GetShiftStats(guildID, userID string, days int) (*ShiftStats, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := s.Now().AddDate(0, 0, -days)

	var row struct {
		Total int64
		Sum   int64
		Avg   float64
	}
	err := s.DB.Model(&model.ShiftModel{}).
		Where("guild_id = ? AND user_id = ? AND clock_in >= ? AND clock_out IS NOT NULL", guildID, userID, cutoff).
		Select("COUNT(*) as total, COALESCE(SUM(duration_minutes),0) as sum, COALESCE(AVG(duration_minutes),0) as avg").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ShiftStats{
		TotalShifts:    int(row.Total),
		TotalMinutes:   int(row.Sum),
		AverageMinutes: int(row.Avg + 0.5),
	}, nil
}
