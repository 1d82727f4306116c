package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/model"
	shiftModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

// AttendanceService: writeup pelanggaran, catatan missed shift, dan
// pengecekan akhir hari untuk staff terjadwal yang tidak pernah masuk.
type AttendanceService struct {
	DB         *gorm.DB
	Scheduling *Service
	UPT        *UPTService
	Notifier   events.Notifier
	Now        func() time.Time
}

func NewAttendanceService(db *gorm.DB, notifier events.Notifier) *AttendanceService {
	return &AttendanceService{
		DB:         db,
		Scheduling: New(db),
		UPT:        NewUPTService(db),
		Notifier:   notifier,
		Now:        time.Now,
	}
}

// ===================== WRITEUP =====================

func (s *AttendanceService) IssueWriteup(guildID, userID, reason, issuedBy, severity string, relatedDate, notes *string) (*model.StaffWriteupModel, error) {
	if severity == "" {
		severity = "standard"
	}
	w := model.StaffWriteupModel{
		WriteupID:          uuid.New(),
		WriteupGuildID:     guildID,
		WriteupUserID:      userID,
		WriteupReason:      reason,
		WriteupIssuedBy:    issuedBy,
		WriteupRelatedDate: relatedDate,
		WriteupSeverity:    severity,
		WriteupNotes:       notes,
		WriteupCreatedAt:   s.Now(),
	}
	if err := s.DB.Create(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *AttendanceService) CountWriteups(guildID, userID string) (int64, error) {
	var n int64
	err := s.DB.Model(&model.StaffWriteupModel{}).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Count(&n).Error
	return n, err
}

func (s *AttendanceService) ListWriteups(guildID, userID string) ([]model.StaffWriteupModel, error) {
	var out []model.StaffWriteupModel
	err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ClearWriteups: penghapusan admin, mengembalikan jumlah yang terhapus.
func (s *AttendanceService) ClearWriteups(guildID, userID string) (int64, error) {
	res := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		Delete(&model.StaffWriteupModel{})
	return res.RowsAffected, res.Error
}

// ===================== MISSED SHIFT =====================

func (s *AttendanceService) CountMissedShifts(guildID, userID string) (int64, error) {
	var n int64
	err := s.DB.Model(&model.MissedShiftModel{}).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Count(&n).Error
	return n, err
}

func (s *AttendanceService) ListMissedShifts(guildID, userID string, limit int) ([]model.MissedShiftModel, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []model.MissedShiftModel
	err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("scheduled_date DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (s *AttendanceService) ClearMissedShifts(guildID, userID string) (int64, error) {
	res := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		Delete(&model.MissedShiftModel{})
	return res.RowsAffected, res.Error
}

// ===================== CEK AKHIR HARI =====================

// MissedResult: satu staff terjadwal yang tidak clock-in sama sekali.
type MissedResult struct {
	UserID   string
	Date     string
	UPTUsed  bool
	WroteUp  bool
}

// CheckMissedShiftsToday memindai jadwal hari ini: staff terjadwal yang
// tidak punya shift apa pun di tanggal itu kena potong UPT absen; kalau
// saldonya kurang, dicatat missed shift plus writeup otomatis. Aman
// dipanggil ulang: tanggal yang sudah tercatat dilewati.
func (s *AttendanceService) CheckMissedShiftsToday(guildID string) ([]MissedResult, error) {
	now := s.Now()
	date := now.Format(helper.DateLayout)
	dayName := helper.DayName(now)
	weekStart := helper.WeekStartDate(now)

	scheds, err := s.Scheduling.GetAllSchedulesForWeek(guildID, weekStart)
	if err != nil {
		return nil, err
	}

	var results []MissedResult
	for i := range scheds {
		sched := &scheds[i]
		days, err := AssignedDays(sched)
		if err != nil {
			return nil, err
		}
		scheduled := false
		for _, d := range days {
			if d == dayName {
				scheduled = true
				break
			}
		}
		if !scheduled {
			continue
		}

		worked, err := s.workedOnDate(guildID, sched.ScheduleUserID, now)
		if err != nil {
			return nil, err
		}
		if worked {
			continue
		}

		already, err := s.missedRecorded(guildID, sched.ScheduleUserID, date)
		if err != nil {
			return nil, err
		}
		if already {
			continue
		}

		res := MissedResult{UserID: sched.ScheduleUserID, Date: date}

		err = s.UPT.Deduct(guildID, sched.ScheduleUserID, UPTCostAbsence, UPTReasonAbsence, &date)
		switch {
		case err == nil:
			res.UPTUsed = true
		case errors.Is(err, ErrInsufficientUPT):
			reason := "absen di hari terjadwal tanpa saldo UPT"
			if _, werr := s.IssueWriteup(guildID, sched.ScheduleUserID, reason, "system", "standard", &date, nil); werr != nil {
				return results, werr
			}
			res.WroteUp = true
		default:
			return results, err
		}

		miss := model.MissedShiftModel{
			MissedID:            uuid.New(),
			MissedGuildID:       guildID,
			MissedUserID:        sched.ScheduleUserID,
			MissedScheduledDate: date,
			MissedWeekStart:     weekStart,
			MissedDayOfWeek:     dayName,
			MissedUPTUsed:       res.UPTUsed,
			MissedCreatedAt:     now,
		}
		if err := s.DB.Create(&miss).Error; err != nil {
			return results, err
		}

		if s.Notifier != nil {
			s.Notifier.NotifyMissedShift(events.MissedShift{
				GuildID: guildID,
				UserID:  sched.ScheduleUserID,
				Date:    date,
				Day:     dayName,
				UPTUsed: res.UPTUsed,
			})
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *AttendanceService) workedOnDate(guildID, userID string, date time.Time) (bool, error) {
	start := helper.DayStart(date)
	end := start.AddDate(0, 0, 1)
	var n int64
	err := s.DB.Model(&shiftModel.ShiftModel{}).
		Where("guild_id = ? AND user_id = ? AND clock_in >= ? AND clock_in < ?", guildID, userID, start, end).
		Count(&n).Error
	return n > 0, err
}

func (s *AttendanceService) missedRecorded(guildID, userID, date string) (bool, error) {
	var n int64
	err := s.DB.Model(&model.MissedShiftModel{}).
		Where("guild_id = ? AND user_id = ? AND scheduled_date = ?", guildID, userID, date).
		Count(&n).Error
	return n > 0, err
}
