package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/model"
	policyService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/service"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

// Batas pembagian roster mingguan.
const (
	MaxStaffPerDay = 3
	MinTargetDays  = 3
	MaxTargetDays  = 4
)

var (
	ErrInvalidDay         = errors.New("nama hari tidak valid")
	ErrSwapNotPending     = errors.New("request sudah tidak pending")
	ErrNotYourRequest     = errors.New("bukan request milikmu")
	ErrDayNotScheduled    = errors.New("hari itu tidak ada di jadwalmu")
	ErrSwapTargetMismatch = errors.New("request ini ditujukan ke staff lain")
	ErrDuplicateRequest   = errors.New("sudah ada request untuk tanggal itu")
)

// Service: availability, generate roster mingguan, swap/drop, dan
// work request (izin kerja di luar jadwal).
type Service struct {
	DB     *gorm.DB
	Policy *policyService.Service
	Rand   *rand.Rand
	Now    func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{
		DB:     db,
		Policy: policyService.New(db),
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:    time.Now,
	}
}

// TimeRange: jam preferensi kerja, format "HH:MM".
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ===================== AVAILABILITY =====================

// SetAvailability upsert preferensi hari (nama hari lowercase) dan jam.
func (s *Service) SetAvailability(guildID, userID string, days []string, times TimeRange) (*model.StaffAvailabilityModel, error) {
	for _, d := range days {
		if !helper.IsWeekDay(d) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDay, d)
		}
	}
	sortDaysCanonical(days)

	daysJSON, err := json.Marshal(days)
	if err != nil {
		return nil, err
	}
	timesJSON, err := json.Marshal(times)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	av := model.StaffAvailabilityModel{
		AvailabilityID:             uuid.New(),
		AvailabilityGuildID:        guildID,
		AvailabilityUserID:         userID,
		AvailabilityPreferredDays:  datatypes.JSON(daysJSON),
		AvailabilityPreferredTimes: datatypes.JSON(timesJSON),
		AvailabilityUpdatedAt:      now,
	}
	err = s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"preferred_days":  datatypes.JSON(daysJSON),
			"preferred_times": datatypes.JSON(timesJSON),
			"updated_at":      now,
		}),
	}).Create(&av).Error
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (s *Service) GetAvailability(guildID, userID string) (*model.StaffAvailabilityModel, error) {
	var av model.StaffAvailabilityModel
	err := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).Take(&av).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (s *Service) GetAllAvailability(guildID string) ([]model.StaffAvailabilityModel, error) {
	var out []model.StaffAvailabilityModel
	err := s.DB.Where("guild_id = ?", guildID).Find(&out).Error
	return out, err
}

func (s *Service) RemoveAvailability(guildID, userID string) (bool, error) {
	res := s.DB.Where("guild_id = ? AND user_id = ?", guildID, userID).
		Delete(&model.StaffAvailabilityModel{})
	return res.RowsAffected > 0, res.Error
}

// PreferredDays decode kolom JSON jadi slice nama hari.
func PreferredDays(av *model.StaffAvailabilityModel) ([]string, error) {
	var days []string
	if err := json.Unmarshal(av.AvailabilityPreferredDays, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// ===================== GENERATE ROSTER =====================

// GenerateWeeklySchedule membagi hari kerja untuk satu minggu:
//   - target acak 3–4 hari per staff
//   - staff paling tidak fleksibel (preferensi paling sedikit) dilayani
//     duluan, preferensinya di-shuffle supaya tidak selalu hari yang sama
//   - maksimal MaxStaffPerDay staff per hari
//   - kekurangan target diisi dari hari yang paling longgar
//
// Hasil belum tersimpan; panggil SaveWeeklySchedule untuk commit.
func (s *Service) GenerateWeeklySchedule(guildID, weekStart string) (map[string][]string, error) {
	avails, err := s.GetAllAvailability(guildID)
	if err != nil {
		return nil, err
	}

	type staffPref struct {
		userID string
		days   []string
	}
	staff := make([]staffPref, 0, len(avails))
	for i := range avails {
		days, err := PreferredDays(&avails[i])
		if err != nil {
			return nil, err
		}
		staff = append(staff, staffPref{userID: avails[i].AvailabilityUserID, days: days})
	}

	// Paling sedikit pilihan = paling dulu dapat jatah.
	sort.SliceStable(staff, func(i, j int) bool {
		return len(staff[i].days) < len(staff[j].days)
	})

	dayLoad := make(map[string]int, len(helper.WeekDays))
	assignments := make(map[string][]string, len(staff))

	for _, st := range staff {
		target := MinTargetDays + s.Rand.Intn(MaxTargetDays-MinTargetDays+1)

		prefs := append([]string(nil), st.days...)
		s.Rand.Shuffle(len(prefs), func(i, j int) { prefs[i], prefs[j] = prefs[j], prefs[i] })

		assigned := make([]string, 0, target)
		taken := make(map[string]bool, target)
		for _, day := range prefs {
			if len(assigned) >= target {
				break
			}
			if dayLoad[day] >= MaxStaffPerDay {
				continue
			}
			assigned = append(assigned, day)
			taken[day] = true
			dayLoad[day]++
		}

		// Preferensi habis tapi target belum kena: ambil dari hari
		// yang paling longgar.
		if len(assigned) < target {
			spare := make([]string, 0, len(helper.WeekDays))
			for _, day := range helper.WeekDays {
				if !taken[day] && dayLoad[day] < MaxStaffPerDay {
					spare = append(spare, day)
				}
			}
			sort.SliceStable(spare, func(i, j int) bool {
				return dayLoad[spare[i]] < dayLoad[spare[j]]
			})
			for _, day := range spare {
				if len(assigned) >= target {
					break
				}
				assigned = append(assigned, day)
				taken[day] = true
				dayLoad[day]++
			}
		}

		sortDaysCanonical(assigned)
		assignments[st.userID] = assigned
	}

	return assignments, nil
}

// SaveWeeklySchedule upsert hasil generate per (guild, user, week).
func (s *Service) SaveWeeklySchedule(guildID, weekStart string, assignments map[string][]string) error {
	now := s.Now()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for userID, days := range assignments {
			daysJSON, err := json.Marshal(days)
			if err != nil {
				return err
			}
			err = tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "guild_id"}, {Name: "user_id"}, {Name: "week_start"},
				},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"assigned_days": datatypes.JSON(daysJSON),
					"created_at":    now,
				}),
			}).Create(&model.StaffScheduleModel{
				ScheduleID:           uuid.New(),
				ScheduleGuildID:      guildID,
				ScheduleUserID:       userID,
				ScheduleWeekStart:    weekStart,
				ScheduleAssignedDays: datatypes.JSON(daysJSON),
				ScheduleCreatedAt:    now,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GenerateAndSaveWeek: generate + commit sekali jalan (dipakai cron).
func (s *Service) GenerateAndSaveWeek(guildID, weekStart string) (map[string][]string, error) {
	assignments, err := s.GenerateWeeklySchedule(guildID, weekStart)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return assignments, nil
	}
	if err := s.SaveWeeklySchedule(guildID, weekStart, assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ===================== BACA JADWAL =====================

func (s *Service) GetStaffSchedule(guildID, userID, weekStart string) (*model.StaffScheduleModel, error) {
	var sched model.StaffScheduleModel
	err := s.DB.Where("guild_id = ? AND user_id = ? AND week_start = ?", guildID, userID, weekStart).
		Take(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

func (s *Service) GetAllSchedulesForWeek(guildID, weekStart string) ([]model.StaffScheduleModel, error) {
	var out []model.StaffScheduleModel
	err := s.DB.Where("guild_id = ? AND week_start = ?", guildID, weekStart).
		Order("user_id").
		Find(&out).Error
	return out, err
}

func (s *Service) HasSchedulesGenerated(guildID, weekStart string) (bool, error) {
	var n int64
	err := s.DB.Model(&model.StaffScheduleModel{}).
		Where("guild_id = ? AND week_start = ?", guildID, weekStart).
		Count(&n).Error
	return n > 0, err
}

// AssignedDays decode kolom JSON jadi slice nama hari.
func AssignedDays(sched *model.StaffScheduleModel) ([]string, error) {
	var days []string
	if err := json.Unmarshal(sched.ScheduleAssignedDays, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// ScheduledForDate: (adaJadwalMingguIni, terjadwalDiTanggalItu). Tanpa
// jadwal sama sekali berarti staff bebas masuk kapan saja.
func (s *Service) ScheduledForDate(guildID, userID string, date time.Time) (bool, bool, error) {
	weekStart := helper.WeekStartDate(date)
	sched, err := s.GetStaffSchedule(guildID, userID, weekStart)
	if err != nil {
		return false, false, err
	}
	if sched == nil {
		return false, false, nil
	}
	days, err := AssignedDays(sched)
	if err != nil {
		return false, false, err
	}
	dayName := helper.DayName(date)
	for _, d := range days {
		if d == dayName {
			return true, true, nil
		}
	}
	return true, false, nil
}

// ===================== SWAP / DROP =====================

// CreateShiftSwapRequest: drop (target NULL) atau swap (target + hari
// tukaran wajib). Requester harus benar-benar punya dayToGive; untuk
// swap, target juga harus punya dayToReceive.
func (s *Service) CreateShiftSwapRequest(guildID, requesterID string, reqType model.SwapRequestType, dayToGive, weekStart string, targetUserID, dayToReceive *string) (*model.ShiftSwapRequestModel, error) {
	if !helper.IsWeekDay(dayToGive) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, dayToGive)
	}

	owns, err := s.userHasDay(guildID, requesterID, weekStart, dayToGive)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrDayNotScheduled
	}

	if reqType == model.SwapTypeSwap {
		if targetUserID == nil || dayToReceive == nil {
			return nil, errors.New("swap butuh target user dan hari tukaran")
		}
		if !helper.IsWeekDay(*dayToReceive) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDay, *dayToReceive)
		}
		targetOwns, err := s.userHasDay(guildID, *targetUserID, weekStart, *dayToReceive)
		if err != nil {
			return nil, err
		}
		if !targetOwns {
			return nil, ErrDayNotScheduled
		}
	}

	req := model.ShiftSwapRequestModel{
		SwapID:           uuid.New(),
		SwapGuildID:      guildID,
		SwapRequesterID:  requesterID,
		SwapTargetUserID: targetUserID,
		SwapRequestType:  reqType,
		SwapDayToGive:    dayToGive,
		SwapDayToReceive: dayToReceive,
		SwapWeekStart:    weekStart,
		SwapStatus:       model.SwapStatusPending,
		SwapCreatedAt:    s.Now(),
	}
	if err := s.DB.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Service) GetShiftSwapRequest(swapID uuid.UUID) (*model.ShiftSwapRequestModel, error) {
	var req model.ShiftSwapRequestModel
	err := s.DB.Where("id = ?", swapID).Take(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Service) GetPendingSwapRequests(guildID string) ([]model.ShiftSwapRequestModel, error) {
	var out []model.ShiftSwapRequestModel
	err := s.DB.Where("guild_id = ? AND status = ?", guildID, model.SwapStatusPending).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// AcceptShiftSwap mengeksekusi request dalam satu transaksi: status
// pending → accepted (conditioned update, dobel-accept kalah), lalu
// mutasi jadwal. Drop: hari pindah dari requester ke acceptor. Swap:
// dua hari ditukar, dan hanya target yang boleh menerima.
func (s *Service) AcceptShiftSwap(swapID uuid.UUID, acceptorID string) (*model.ShiftSwapRequestModel, error) {
	var out *model.ShiftSwapRequestModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var req model.ShiftSwapRequestModel
		if err := tx.Where("id = ?", swapID).Take(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSwapNotPending
			}
			return err
		}
		if req.SwapRequesterID == acceptorID {
			return errors.New("tidak bisa menerima request sendiri")
		}
		if req.SwapRequestType == model.SwapTypeSwap {
			if req.SwapTargetUserID == nil || *req.SwapTargetUserID != acceptorID {
				return ErrSwapTargetMismatch
			}
		}

		now := s.Now()
		res := tx.Model(&model.ShiftSwapRequestModel{}).
			Where("id = ? AND status = ?", swapID, model.SwapStatusPending).
			Updates(map[string]interface{}{
				"status":       model.SwapStatusAccepted,
				"accepted_by":  acceptorID,
				"responded_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSwapNotPending
		}

		switch req.SwapRequestType {
		case model.SwapTypeDrop:
			if err := s.removeDayTx(tx, req.SwapGuildID, req.SwapRequesterID, req.SwapWeekStart, req.SwapDayToGive); err != nil {
				return err
			}
			if err := s.addDayTx(tx, req.SwapGuildID, acceptorID, req.SwapWeekStart, req.SwapDayToGive); err != nil {
				return err
			}
		case model.SwapTypeSwap:
			if err := s.removeDayTx(tx, req.SwapGuildID, req.SwapRequesterID, req.SwapWeekStart, req.SwapDayToGive); err != nil {
				return err
			}
			if err := s.removeDayTx(tx, req.SwapGuildID, acceptorID, req.SwapWeekStart, *req.SwapDayToReceive); err != nil {
				return err
			}
			if err := s.addDayTx(tx, req.SwapGuildID, req.SwapRequesterID, req.SwapWeekStart, *req.SwapDayToReceive); err != nil {
				return err
			}
			if err := s.addDayTx(tx, req.SwapGuildID, acceptorID, req.SwapWeekStart, req.SwapDayToGive); err != nil {
				return err
			}
		}

		req.SwapStatus = model.SwapStatusAccepted
		req.SwapAcceptedBy = &acceptorID
		req.SwapRespondedAt = &now
		out = &req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) DeclineShiftSwap(swapID uuid.UUID, userID string) error {
	res := s.DB.Model(&model.ShiftSwapRequestModel{}).
		Where("id = ? AND status = ?", swapID, model.SwapStatusPending).
		Updates(map[string]interface{}{
			"status":       model.SwapStatusDeclined,
			"accepted_by":  userID,
			"responded_at": s.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSwapNotPending
	}
	return nil
}

// CancelShiftSwapRequest: hanya requester sendiri, hanya saat pending.
// Cek kepemilikan dan transisi status dijalankan dalam satu transaksi,
// sejalan dengan AcceptShiftSwap.
func (s *Service) CancelShiftSwapRequest(swapID uuid.UUID, requesterID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var req model.ShiftSwapRequestModel
		err := tx.Where("id = ?", swapID).Take(&req).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSwapNotPending
		}
		if err != nil {
			return err
		}
		if req.SwapRequesterID != requesterID {
			return ErrNotYourRequest
		}

		res := tx.Model(&model.ShiftSwapRequestModel{}).
			Where("id = ? AND status = ?", swapID, model.SwapStatusPending).
			Updates(map[string]interface{}{
				"status":       model.SwapStatusCancelled,
				"responded_at": s.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSwapNotPending
		}
		return nil
	})
}

// ===================== WORK REQUEST =====================

// CreateWorkRequest: izin masuk di tanggal yang tidak terjadwal. Satu
// request aktif (pending/approved) per (user, tanggal).
func (s *Service) CreateWorkRequest(guildID, userID, date string) (*model.WorkRequestModel, error) {
	if _, err := time.Parse(helper.DateLayout, date); err != nil {
		return nil, fmt.Errorf("format tanggal harus %s: %w", helper.DateLayout, err)
	}

	var n int64
	err := s.DB.Model(&model.WorkRequestModel{}).
		Where("guild_id = ? AND user_id = ? AND requested_date = ? AND status IN ?",
			guildID, userID, date,
			[]model.WorkRequestStatus{model.WorkStatusPending, model.WorkStatusApproved}).
		Count(&n).Error
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrDuplicateRequest
	}

	req := model.WorkRequestModel{
		WorkRequestID:        uuid.New(),
		WorkRequestGuildID:   guildID,
		WorkRequestUserID:    userID,
		WorkRequestDate:      date,
		WorkRequestStatus:    model.WorkStatusPending,
		WorkRequestCreatedAt: s.Now(),
	}
	if err := s.DB.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// RespondWorkRequest: pending → approved/denied, sekali saja.
func (s *Service) RespondWorkRequest(requestID uuid.UUID, approve bool, ownerResponse string) error {
	status := model.WorkStatusDenied
	if approve {
		status = model.WorkStatusApproved
	}
	res := s.DB.Model(&model.WorkRequestModel{}).
		Where("id = ? AND status = ?", requestID, model.WorkStatusPending).
		Updates(map[string]interface{}{
			"status":         status,
			"owner_response": ownerResponse,
			"responded_at":   s.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSwapNotPending
	}
	return nil
}

func (s *Service) GetPendingWorkRequests(guildID string) ([]model.WorkRequestModel, error) {
	var out []model.WorkRequestModel
	err := s.DB.Where("guild_id = ? AND status = ?", guildID, model.WorkStatusPending).
		Order("requested_date ASC").
		Find(&out).Error
	return out, err
}

func (s *Service) HasApprovedWorkRequest(guildID, userID, date string) (bool, error) {
	var n int64
	err := s.DB.Model(&model.WorkRequestModel{}).
		Where("guild_id = ? AND user_id = ? AND requested_date = ? AND status = ?",
			guildID, userID, date, model.WorkStatusApproved).
		Count(&n).Error
	return n > 0, err
}

// ===================== INTERNAL =====================

func (s *Service) userHasDay(guildID, userID, weekStart, day string) (bool, error) {
	sched, err := s.GetStaffSchedule(guildID, userID, weekStart)
	if err != nil || sched == nil {
		return false, err
	}
	days, err := AssignedDays(sched)
	if err != nil {
		return false, err
	}
	for _, d := range days {
		if d == day {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) removeDayTx(tx *gorm.DB, guildID, userID, weekStart, day string) error {
	var sched model.StaffScheduleModel
	err := tx.Where("guild_id = ? AND user_id = ? AND week_start = ?", guildID, userID, weekStart).
		Take(&sched).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDayNotScheduled
		}
		return err
	}
	days, err := AssignedDays(&sched)
	if err != nil {
		return err
	}
	kept := days[:0]
	found := false
	for _, d := range days {
		if d == day && !found {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return ErrDayNotScheduled
	}
	return s.writeDaysTx(tx, &sched, kept)
}

func (s *Service) addDayTx(tx *gorm.DB, guildID, userID, weekStart, day string) error {
	var sched model.StaffScheduleModel
	err := tx.Where("guild_id = ? AND user_id = ? AND week_start = ?", guildID, userID, weekStart).
		Take(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		daysJSON, merr := json.Marshal([]string{day})
		if merr != nil {
			return merr
		}
		return tx.Create(&model.StaffScheduleModel{
			ScheduleID:           uuid.New(),
			ScheduleGuildID:      guildID,
			ScheduleUserID:       userID,
			ScheduleWeekStart:    weekStart,
			ScheduleAssignedDays: datatypes.JSON(daysJSON),
			ScheduleCreatedAt:    s.Now(),
		}).Error
	}
	if err != nil {
		return err
	}

	days, err := AssignedDays(&sched)
	if err != nil {
		return err
	}
	for _, d := range days {
		if d == day {
			return nil // sudah punya, no-op
		}
	}
	days = append(days, day)
	return s.writeDaysTx(tx, &sched, days)
}

func (s *Service) writeDaysTx(tx *gorm.DB, sched *model.StaffScheduleModel, days []string) error {
	sortDaysCanonical(days)
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return err
	}
	return tx.Model(&model.StaffScheduleModel{}).
		Where("id = ?", sched.ScheduleID).
		Update("assigned_days", datatypes.JSON(daysJSON)).Error
}

// sortDaysCanonical urutkan nama hari Minggu-dulu.
func sortDaysCanonical(days []string) {
	sort.SliceStable(days, func(i, j int) bool {
		return helper.WeekDayIndex(days[i]) < helper.WeekDayIndex(days[j])
	})
}
