package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/breaks/model"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
	policyService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/service"
	shiftModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
)

// Service: break tracker + activity tracker. Break tidak bisa ada tanpa
// shift terbuka; maksimal satu break terbuka per shift.
type Service struct {
	DB     *gorm.DB
	Policy *policyService.Service
	Now    func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db, Policy: policyService.New(db), Now: time.Now}
}

// StartBreak idempoten: kalau sudah ada break terbuka di shift itu,
// kembalikan id-nya tanpa membuat baris baru.
func (s *Service) StartBreak(shiftID uuid.UUID) (uuid.UUID, error) {
	return s.StartBreakTx(s.DB, shiftID)
}

func (s *Service) StartBreakTx(db *gorm.DB, shiftID uuid.UUID) (uuid.UUID, error) {
	var open model.BreakModel
	err := db.Where("shift_id = ? AND break_end IS NULL", shiftID).Take(&open).Error
	if err == nil {
		return open.BreakID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	b := model.BreakModel{
		BreakID:      uuid.New(),
		BreakShiftID: shiftID,
		BreakStart:   s.Now(),
	}
	if err := db.Create(&b).Error; err != nil {
		return uuid.Nil, err
	}
	return b.BreakID, nil
}

// EndBreak menutup break terbuka (kalau ada) dan mencatat durasi menit
// bulat ke bawah. Tanpa break terbuka = no-op, bukan error.
func (s *Service) EndBreak(shiftID uuid.UUID) error {
	return s.EndBreakTx(s.DB, shiftID)
}

func (s *Service) EndBreakTx(db *gorm.DB, shiftID uuid.UUID) error {
	var open model.BreakModel
	err := db.Where("shift_id = ? AND break_end IS NULL", shiftID).Take(&open).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	now := s.Now()
	dur := helper.FloorMinutes(now.Sub(open.BreakStart))

	// kondisikan pada "masih terbuka" supaya balapan dengan penutup lain
	// berakhir sebagai no-op
	return db.Model(&model.BreakModel{}).
		Where("id = ? AND break_end IS NULL", open.BreakID).
		Updates(map[string]interface{}{
			"break_end":        now,
			"duration_minutes": dur,
		}).Error
}

// GetActiveBreak: break terbuka milik shift, nil kalau tidak ada.
func (s *Service) GetActiveBreak(shiftID uuid.UUID) (*model.BreakModel, error) {
	var b model.BreakModel
	err := s.DB.Where("shift_id = ? AND break_end IS NULL", shiftID).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Service) GetShiftBreaks(shiftID uuid.UUID) ([]model.BreakModel, error) {
	var out []model.BreakModel
	err := s.DB.Where("shift_id = ?", shiftID).Order("break_start ASC").Find(&out).Error
	return out, err
}

// ClosedBreakMinutes: total menit break yang sudah selesai di satu shift.
func (s *Service) ClosedBreakMinutes(db *gorm.DB, shiftID uuid.UUID) (int, error) {
	var total int64
	err := db.Model(&model.BreakModel{}).
		Where("shift_id = ? AND break_end IS NOT NULL", shiftID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	return int(total), err
}

// NetWorkedMinutes: waktu kerja bersih = gross − break selesai − break
// yang sedang berjalan (elapsed-nya). Berlaku untuk shift terbuka maupun
// yang sudah ditutup.
func (s *Service) NetWorkedMinutes(sh *shiftModel.ShiftModel) (int, error) {
	closed, err := s.ClosedBreakMinutes(s.DB, sh.ShiftID)
	if err != nil {
		return 0, err
	}

	var gross int
	if sh.ShiftClockOut != nil && sh.ShiftDurationMinutes != nil {
		gross = *sh.ShiftDurationMinutes
	} else {
		gross = helper.FloorMinutes(s.Now().Sub(sh.ShiftClockIn))
	}

	openElapsed := 0
	if sh.IsOpen() {
		active, err := s.GetActiveBreak(sh.ShiftID)
		if err != nil {
			return 0, err
		}
		if active != nil {
			openElapsed = helper.FloorMinutes(s.Now().Sub(active.BreakStart))
		}
	}

	net := gross - closed - openElapsed
	if net < 0 {
		net = 0
	}
	return net, nil
}

// RecordActivity upsert timestamp aktivitas terakhir user di shift terbuka.
func (s *Service) RecordActivity(guildID, userID string, shiftID uuid.UUID) error {
	now := s.Now()
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "guild_id"}, {Name: "user_id"}, {Name: "shift_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_activity": now}),
	}).Create(&model.ActivityTrackerModel{
		ActivityID:           uuid.New(),
		ActivityGuildID:      guildID,
		ActivityUserID:       userID,
		ActivityShiftID:      shiftID,
		ActivityLastActivity: now,
	}).Error
}

// ClearActivityTx menghapus baris activity tracker milik satu shift
// (dipanggil saat shift ditutup).
func (s *Service) ClearActivityTx(db *gorm.DB, shiftID uuid.UUID) error {
	return db.Where("shift_id = ?", shiftID).Delete(&model.ActivityTrackerModel{}).Error
}

// AutoBreak: pasangan (user, shift) yang baru dibuatkan break otomatis.
type AutoBreak struct {
	UserID  string
	ShiftID uuid.UUID
}

// SweepInactivity membuka break otomatis untuk setiap shift terbuka yang
// idle melebihi ambang config dan belum punya break terbuka. Aman
// dipanggil berulang: shift yang sudah break dilewati.
func (s *Service) SweepInactivity(guildID string) ([]AutoBreak, error) {
	cfg, err := s.Policy.GetOrCreate(guildID)
	if err != nil {
		return nil, err
	}
	cutoff := s.Now().Add(-time.Duration(cfg.ConfigAutoBreakMinute) * time.Minute)

	var idle []model.ActivityTrackerModel
	err = s.DB.
		Joins("JOIN shifts ON shifts.id = activity_tracker.shift_id").
		Where("activity_tracker.guild_id = ?", guildID).
		Where("activity_tracker.last_activity < ?", cutoff).
		Where("shifts.clock_out IS NULL").
		Where("NOT EXISTS (SELECT 1 FROM breaks WHERE breaks.shift_id = activity_tracker.shift_id AND breaks.break_end IS NULL)").
		Find(&idle).Error
	if err != nil {
		return nil, err
	}

	var out []AutoBreak
	for _, a := range idle {
		if _, err := s.StartBreak(a.ActivityShiftID); err != nil {
			return out, err
		}
		out = append(out, AutoBreak{UserID: a.ActivityUserID, ShiftID: a.ActivityShiftID})
	}
	return out, nil
}
