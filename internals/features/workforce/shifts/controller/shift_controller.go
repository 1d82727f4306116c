package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	breakService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/breaks/service"
	payService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/service"
	schedulingService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/service"
	sDTO "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/dto"
	shiftModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/model"
	shiftService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/shifts/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

var validate = validator.New()

type ShiftController struct {
	Shifts   *shiftService.Service
	Breaks   *breakService.Service
	Enforcer *payService.EnforcerService
	UPT      *schedulingService.UPTService
}

func NewShiftController(db *gorm.DB, notifier events.Notifier) *ShiftController {
	return &ShiftController{
		Shifts:   shiftService.New(db),
		Breaks:   breakService.New(db),
		Enforcer: payService.NewEnforcerService(db, notifier),
		UPT:      schedulingService.NewUPTService(db),
	}
}

/* ===================== HANDLERS ===================== */

// POST /shifts/clock-in
func (h *ShiftController) ClockIn(c *fiber.Ctx) error {
	var req sDTO.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	denial, err := h.Enforcer.CanClockIn(req.GuildID, req.UserID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengecek kebijakan clock-in")
	}
	if denial != nil {
		return helper.ErrorWithDetails(c, fiber.StatusForbidden, denial.Message, fiber.Map{
			"code":        denial.Code,
			"retry_after": denial.RetryAfter.String(),
		})
	}

	sh, err := h.Shifts.ClockIn(req.GuildID, req.UserID)
	if errors.Is(err, shiftService.ErrAlreadyClockedIn) {
		return helper.Error(c, fiber.StatusConflict, "Kamu sudah clock in")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal clock in")
	}

	// Accrual UPT jalan terus walau gagal (bukan alasan menolak shift).
	date := sh.ShiftClockIn.Format(helper.DateLayout)
	_, _ = h.UPT.AccrueForClockIn(req.GuildID, req.UserID, date)

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Clock in berhasil", sDTO.NewShiftResponse(sh))
}

// POST /shifts/clock-out
func (h *ShiftController) ClockOut(c *fiber.Ctx) error {
	var req sDTO.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	sh, err := h.Shifts.ClockOut(req.GuildID, req.UserID)
	if errors.Is(err, shiftService.ErrNotClockedIn) {
		return helper.Error(c, fiber.StatusConflict, "Kamu belum clock in")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal clock out")
	}
	return helper.Success(c, "Clock out berhasil", sDTO.NewShiftResponse(sh))
}

// GET /shifts/status?guild_id=&user_id=
func (h *ShiftController) Status(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}

	resp := sDTO.StatusResponse{}
	sh, err := h.Shifts.GetActiveShift(guildID, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca shift aktif")
	}
	if sh != nil {
		r := sDTO.NewShiftResponse(sh)
		resp.Active = &r
		br, err := h.Breaks.GetActiveBreak(sh.ShiftID)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca break aktif")
		}
		resp.OnBreak = br != nil
	}
	worked, err := h.Enforcer.TodayNetWorkedMinutes(guildID, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung jam kerja")
	}
	resp.WorkedMinutes = worked

	return helper.Success(c, "OK", resp)
}

// GET /shifts/history?guild_id=&user_id=&limit=
func (h *ShiftController) History(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	shifts, err := h.Shifts.GetHistory(guildID, userID, c.QueryInt("limit"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca riwayat")
	}
	return helper.Success(c, "OK", sDTO.NewShiftResponses(shifts))
}

// GET /shifts/active?guild_id=  (semua staff yang sedang bekerja)
func (h *ShiftController) ActiveAll(c *fiber.Ctx) error {
	guildID := c.Query("guild_id")
	if guildID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id wajib diisi")
	}
	shifts, err := h.Shifts.GetAllActiveForOrg(guildID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca shift aktif")
	}
	return helper.Success(c, "OK", sDTO.NewShiftResponses(shifts))
}

// GET /shifts/stats?guild_id=&user_id=&days=
func (h *ShiftController) Stats(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	stats, err := h.Shifts.GetShiftStats(guildID, userID, c.QueryInt("days"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung statistik")
	}
	return helper.Success(c, "OK", stats)
}

/* ===================== BREAK & AKTIVITAS ===================== */

// POST /shifts/break/start
func (h *ShiftController) BreakStart(c *fiber.Ctx) error {
	sh, err := h.requireActiveShift(c)
	if err != nil {
		return err
	}
	if _, err := h.Breaks.StartBreak(sh.ShiftID); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memulai break")
	}
	return helper.Success(c, "Break dimulai", nil)
}

// POST /shifts/break/end
func (h *ShiftController) BreakEnd(c *fiber.Ctx) error {
	sh, err := h.requireActiveShift(c)
	if err != nil {
		return err
	}
	if err := h.Breaks.EndBreak(sh.ShiftID); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengakhiri break")
	}
	return helper.Success(c, "Break selesai", nil)
}

// POST /shifts/activity  (heartbeat anti auto-break)
func (h *ShiftController) ActivityPing(c *fiber.Ctx) error {
	sh, err := h.requireActiveShift(c)
	if err != nil {
		return err
	}
	if err := h.Breaks.RecordActivity(sh.ShiftGuildID, sh.ShiftUserID, sh.ShiftID); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mencatat aktivitas")
	}
	return helper.Success(c, "OK", nil)
}

func (h *ShiftController) requireActiveShift(c *fiber.Ctx) (*shiftModel.ShiftModel, error) {
	var req sDTO.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return nil, helper.ValidationError(c, err)
	}
	sh, err := h.Shifts.GetActiveShift(req.GuildID, req.UserID)
	if err != nil {
		return nil, helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca shift aktif")
	}
	if sh == nil {
		return nil, helper.Error(c, fiber.StatusConflict, "Kamu belum clock in")
	}
	return sh, nil
}
