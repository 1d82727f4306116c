package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	breakService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/breaks/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/model"
	policyService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/service"
	shiftModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
	shiftService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/service"
	schedulingService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

// Kode penolakan clock-in, urut sesuai prioritas evaluasi.
const (
	DenialDisabled     = "disabled"
	DenialCooldown     = "cooldown"
	DenialDailyLimit   = "daily_limit"
	DenialWeeklyLimit  = "weekly_limit"
	DenialNotScheduled = "not_scheduled"
)

// ClockInDenial: alasan satu staff ditolak clock-in. Nil = boleh masuk.
type ClockInDenial struct {
	Code       string        `json:"code"`
	Message    string        `json:"message"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// EnforcerService menegakkan batas harian/mingguan, cooldown, dan
// kecocokan jadwal sebelum staff boleh clock-in.
type EnforcerService struct {
	DB         *gorm.DB
	Policy     *policyService.Service
	Shifts     *shiftService.Service
	Breaks     *breakService.Service
	Scheduling *schedulingService.Service
	Notifier   events.Notifier
	Now        func() time.Time
}

func NewEnforcerService(db *gorm.DB, notifier events.Notifier) *EnforcerService {
	return &EnforcerService{
		DB:         db,
		Policy:     policyService.New(db),
		Shifts:     shiftService.New(db),
		Breaks:     breakService.New(db),
		Scheduling: schedulingService.New(db),
		Notifier:   notifier,
		Now:        time.Now,
	}
}

// CanClockIn mengevaluasi kebijakan berurutan: disabled → cooldown →
// batas jam harian → batas hari mingguan → jadwal. Penolakan pertama
// yang kena langsung dikembalikan.
func (s *EnforcerService) CanClockIn(guildID, userID string) (*ClockInDenial, error) {
	cfg, err := s.Policy.GetOrCreate(guildID)
	if err != nil {
		return nil, err
	}

	if !cfg.ConfigIsEnabled {
		return &ClockInDenial{
			Code:    DenialDisabled,
			Message: "sistem payroll sedang dinonaktifkan untuk server ini",
		}, nil
	}

	remaining, err := s.IsOnCooldown(guildID, userID)
	if err != nil {
		return nil, err
	}
	if remaining > 0 {
		return &ClockInDenial{
			Code:       DenialCooldown,
			Message:    fmt.Sprintf("masih cooldown, coba lagi dalam %s", remaining.Round(time.Minute)),
			RetryAfter: remaining,
		}, nil
	}

	worked, err := s.TodayNetWorkedMinutes(guildID, userID)
	if err != nil {
		return nil, err
	}
	dailyCap := cfg.ConfigMaxHoursPerDay * 60
	if worked >= dailyCap {
		return &ClockInDenial{
			Code:    DenialDailyLimit,
			Message: fmt.Sprintf("batas %d jam per hari sudah tercapai", cfg.ConfigMaxHoursPerDay),
		}, nil
	}

	daysUsed, err := s.weeklyDaysUsed(guildID, userID)
	if err != nil {
		return nil, err
	}
	if daysUsed >= cfg.ConfigMaxDaysPerWeek {
		return &ClockInDenial{
			Code:    DenialWeeklyLimit,
			Message: fmt.Sprintf("batas %d hari kerja per minggu sudah tercapai", cfg.ConfigMaxDaysPerWeek),
		}, nil
	}

	now := s.Now()
	hasSchedule, scheduledToday, err := s.Scheduling.ScheduledForDate(guildID, userID, now)
	if err != nil {
		return nil, err
	}
	// Tanpa jadwal minggu ini = bebas masuk; jadwal ada tapi hari ini
	// tidak terdaftar masih bisa lolos lewat work request yang disetujui.
	if hasSchedule && !scheduledToday {
		approved, err := s.Scheduling.HasApprovedWorkRequest(guildID, userID, now.Format(helper.DateLayout))
		if err != nil {
			return nil, err
		}
		if !approved {
			return &ClockInDenial{
				Code:    DenialNotScheduled,
				Message: fmt.Sprintf("kamu tidak terjadwal hari %s", helper.DayName(now)),
			}, nil
		}
	}

	return nil, nil
}

// TodayNetWorkedMinutes: menit kerja bersih hari ini — shift selesai
// hari ini (dikurangi break selesai, clamp 0 per shift) plus shift
// terbuka dengan seluruh menit berjalannya, berapa pun tanggal masuknya
// (shift lewat tengah malam tetap dihitung penuh).
func (s *EnforcerService) TodayNetWorkedMinutes(guildID, userID string) (int, error) {
	dayStart := helper.DayStart(s.Now())

	var shifts []shiftModel.ShiftModel
	err := s.DB.Where("guild_id = ? AND user_id = ? AND clock_in >= ? AND clock_out IS NOT NULL",
		guildID, userID, dayStart).
		Find(&shifts).Error
	if err != nil {
		return 0, err
	}

	total := 0
	for i := range shifts {
		sh := &shifts[i]
		mins := 0
		if sh.ShiftDurationMinutes != nil {
			mins = *sh.ShiftDurationMinutes
		}
		closed, err := s.Breaks.ClosedBreakMinutes(s.DB, sh.ShiftID)
		if err != nil {
			return 0, err
		}
		if net := mins - closed; net > 0 {
			total += net
		}
	}

	open, err := s.Shifts.GetActiveShift(guildID, userID)
	if err != nil {
		return 0, err
	}
	if open != nil {
		net, err := s.Breaks.NetWorkedMinutes(open)
		if err != nil {
			return 0, err
		}
		total += net
	}
	return total, nil
}

// weeklyDaysUsed: jumlah hari distinct (tanggal clock-in) yang sudah
// terpakai sejak awal minggu (Minggu 00:00), termasuk hari ini.
func (s *EnforcerService) weeklyDaysUsed(guildID, userID string) (int, error) {
	weekStart := helper.WeekStart(s.Now())

	var shifts []shiftModel.ShiftModel
	err := s.DB.Where("guild_id = ? AND user_id = ? AND clock_in >= ?", guildID, userID, weekStart).
		Find(&shifts).Error
	if err != nil {
		return 0, err
	}

	days := map[string]struct{}{}
	for _, sh := range shifts {
		days[sh.ShiftClockIn.Format(helper.DateLayout)] = struct{}{}
	}
	return len(days), nil
}

// ===================== COOLDOWN =====================

// SetCooldown memasang blokir 24 jam (upsert, pemicu ulang menggeser
// jendelanya).
func (s *EnforcerService) SetCooldown(guildID, userID string) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"cooldown_until": s.Now().Add(24 * time.Hour),
		}),
	}).Create(&model.CooldownModel{
		CooldownGuildID: guildID,
		CooldownUserID:  userID,
		CooldownUntil:   s.Now().Add(24 * time.Hour),
	}).Error
}

// IsOnCooldown mengembalikan sisa durasi blokir (0 = bebas). Baris yang
// terbaca sudah lewat langsung dihapus.
func (s *EnforcerService) IsOnCooldown(guildID, userID string) (time.Duration, error) {
	var cd model.CooldownModel
	err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).Take(&cd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	remaining := cd.CooldownUntil.Sub(s.Now())
	if remaining <= 0 {
		if err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
			Delete(&model.CooldownModel{}).Error; err != nil {
			return 0, err
		}
		return 0, nil
	}
	return remaining, nil
}

func (s *EnforcerService) ClearCooldown(guildID, userID string) error {
	return s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		Delete(&model.CooldownModel{}).Error
}

// ===================== SWEEP =====================

// EnforceGuild menutup paksa shift terbuka yang menit bersih hari ininya
// sudah menyentuh batas harian, lalu memasang cooldown 24 jam. Aman
// dipanggil berulang: shift yang sudah tertutup tidak tersentuh lagi.
func (s *EnforcerService) EnforceGuild(guildID string) (int, error) {
	cfg, err := s.Policy.GetOrCreate(guildID)
	if err != nil {
		return 0, err
	}
	if !cfg.ConfigIsEnabled {
		return 0, nil
	}
	dailyCap := cfg.ConfigMaxHoursPerDay * 60

	open, err := s.Shifts.GetAllActiveForOrg(guildID)
	if err != nil {
		return 0, err
	}

	forced := 0
	for i := range open {
		sh := &open[i]

		worked, err := s.TodayNetWorkedMinutesFor(sh)
		if err != nil {
			return forced, err
		}
		if worked < dailyCap {
			continue
		}

		closed, err := s.Shifts.ClockOut(sh.ShiftGuildID, sh.ShiftUserID)
		if errors.Is(err, shiftService.ErrNotClockedIn) {
			continue // sudah keburu clock out sendiri
		}
		if err != nil {
			return forced, err
		}

		if err := s.SetCooldown(sh.ShiftGuildID, sh.ShiftUserID); err != nil {
			return forced, err
		}

		hours := 0.0
		if closed.ShiftDurationMinutes != nil {
			hours = helper.Round2(float64(*closed.ShiftDurationMinutes) / 60.0)
		}
		if s.Notifier != nil {
			s.Notifier.NotifyForceClockedOut(events.ForceClockedOut{
				GuildID:     sh.ShiftGuildID,
				UserID:      sh.ShiftUserID,
				HoursWorked: hours,
			})
		}
		forced++
	}
	return forced, nil
}

// TodayNetWorkedMinutesFor: varian per pemilik shift, dipakai sweep.
func (s *EnforcerService) TodayNetWorkedMinutesFor(sh *shiftModel.ShiftModel) (int, error) {
	return s.TodayNetWorkedMinutes(sh.ShiftGuildID, sh.ShiftUserID)
}

// EnforceSweep menjalankan EnforceGuild untuk semua guild yang payroll-nya
// aktif. Error satu guild dicatat dan tidak menghentikan guild lain.
func (s *EnforcerService) EnforceSweep() (int, []error) {
	guildIDs, err := s.Policy.EnabledGuildIDs()
	if err != nil {
		return 0, []error{err}
	}

	total := 0
	var errs []error
	for _, gid := range guildIDs {
		n, err := s.EnforceGuild(gid)
		total += n
		if err != nil {
			errs = append(errs, fmt.Errorf("guild %s: %w", gid, err))
		}
	}
	return total, errs
}

// ForceClockOut: jalur admin, menutup shift tanpa memasang cooldown.
func (s *EnforcerService) ForceClockOut(guildID, userID string) (*shiftModel.ShiftModel, error) {
	return s.Shifts.ClockOut(guildID, userID)
}
