package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	schedDTO "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/dto"
	schedModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/model"
	schedService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

var validate = validator.New()

type SchedulingController struct {
	Scheduling *schedService.Service
	Notifier   events.Notifier
}

func NewSchedulingController(db *gorm.DB, notifier events.Notifier) *SchedulingController {
	return &SchedulingController{
		Scheduling: schedService.New(db),
		Notifier:   notifier,
	}
}

/* ===================== AVAILABILITY ===================== */

// PUT /scheduling/availability
func (h *SchedulingController) SetAvailability(c *fiber.Ctx) error {
	var req schedDTO.SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	av, err := h.Scheduling.SetAvailability(req.GuildID, req.UserID, req.Days,
		schedService.TimeRange{Start: req.Start, End: req.End})
	if errors.Is(err, schedService.ErrInvalidDay) {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan availability")
	}
	return helper.Success(c, "Availability disimpan", av)
}

// GET /scheduling/availability?guild_id=&user_id=
func (h *SchedulingController) GetAvailability(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id wajib diisi")
	}
	if userID != "" {
		av, err := h.Scheduling.GetAvailability(guildID, userID)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca availability")
		}
		if av == nil {
			return helper.Error(c, fiber.StatusNotFound, "Availability belum diisi")
		}
		return helper.Success(c, "OK", av)
	}
	avails, err := h.Scheduling.GetAllAvailability(guildID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca availability")
	}
	return helper.Success(c, "OK", avails)
}

/* ===================== ROSTER ===================== */

// POST /scheduling/generate  (trigger manual, admin)
func (h *SchedulingController) GenerateWeek(c *fiber.Ctx) error {
	var req schedDTO.GenerateWeekRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	assignments, err := h.Scheduling.GenerateAndSaveWeek(req.GuildID, req.WeekStart)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal generate jadwal")
	}
	if len(assignments) > 0 && h.Notifier != nil {
		h.Notifier.NotifyWeeklyScheduleGenerated(events.WeeklyScheduleGenerated{
			GuildID:     req.GuildID,
			WeekStart:   req.WeekStart,
			Assignments: assignments,
		})
	}
	return helper.Success(c, "Jadwal mingguan dibuat", assignments)
}

// GET /scheduling/week?guild_id=&week_start=
func (h *SchedulingController) WeekSchedules(c *fiber.Ctx) error {
	guildID, weekStart := c.Query("guild_id"), c.Query("week_start")
	if guildID == "" || weekStart == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan week_start wajib diisi")
	}
	scheds, err := h.Scheduling.GetAllSchedulesForWeek(guildID, weekStart)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca jadwal")
	}
	out := make([]schedDTO.ScheduleResponse, 0, len(scheds))
	for i := range scheds {
		r, err := schedDTO.NewScheduleResponse(&scheds[i])
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Jadwal korup")
		}
		out = append(out, r)
	}
	return helper.Success(c, "OK", out)
}

// GET /scheduling/my?guild_id=&user_id=&week_start=
func (h *SchedulingController) MySchedule(c *fiber.Ctx) error {
	guildID, userID, weekStart := c.Query("guild_id"), c.Query("user_id"), c.Query("week_start")
	if guildID == "" || userID == "" || weekStart == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id, user_id, week_start wajib diisi")
	}
	sched, err := h.Scheduling.GetStaffSchedule(guildID, userID, weekStart)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca jadwal")
	}
	if sched == nil {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada jadwal minggu itu")
	}
	r, err := schedDTO.NewScheduleResponse(sched)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Jadwal korup")
	}
	return helper.Success(c, "OK", r)
}

/* ===================== SWAP / DROP ===================== */

// POST /scheduling/swaps
func (h *SchedulingController) CreateSwap(c *fiber.Ctx) error {
	var req schedDTO.SwapRequestInput
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	swap, err := h.Scheduling.CreateShiftSwapRequest(req.GuildID, req.RequesterID,
		schedModel.SwapRequestType(req.RequestType), req.DayToGive, req.WeekStart,
		req.TargetUserID, req.DayToReceive)
	switch {
	case errors.Is(err, schedService.ErrDayNotScheduled),
		errors.Is(err, schedService.ErrInvalidDay):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat request")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Request dibuat", schedDTO.NewSwapResponse(swap))
}

// GET /scheduling/swaps?guild_id=
func (h *SchedulingController) PendingSwaps(c *fiber.Ctx) error {
	guildID := c.Query("guild_id")
	if guildID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id wajib diisi")
	}
	swaps, err := h.Scheduling.GetPendingSwapRequests(guildID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca request")
	}
	return helper.Success(c, "OK", schedDTO.NewSwapResponses(swaps))
}

// POST /scheduling/swaps/:id/accept
func (h *SchedulingController) AcceptSwap(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	var req schedDTO.SwapActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	swap, err := h.Scheduling.AcceptShiftSwap(id, req.UserID)
	switch {
	case errors.Is(err, schedService.ErrSwapNotPending):
		return helper.Error(c, fiber.StatusConflict, "Request sudah tidak pending")
	case errors.Is(err, schedService.ErrSwapTargetMismatch):
		return helper.Error(c, fiber.StatusForbidden, "Request ini bukan untukmu")
	case err != nil:
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menerima request")
	}
	return helper.Success(c, "Request diterima", schedDTO.NewSwapResponse(swap))
}

// POST /scheduling/swaps/:id/decline
func (h *SchedulingController) DeclineSwap(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	var req schedDTO.SwapActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Scheduling.DeclineShiftSwap(id, req.UserID); err != nil {
		if errors.Is(err, schedService.ErrSwapNotPending) {
			return helper.Error(c, fiber.StatusConflict, "Request sudah tidak pending")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menolak request")
	}
	return helper.Success(c, "Request ditolak", nil)
}

// POST /scheduling/swaps/:id/cancel
func (h *SchedulingController) CancelSwap(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	var req schedDTO.SwapActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	err = h.Scheduling.CancelShiftSwapRequest(id, req.UserID)
	switch {
	case errors.Is(err, schedService.ErrNotYourRequest):
		return helper.Error(c, fiber.StatusForbidden, "Bukan request milikmu")
	case errors.Is(err, schedService.ErrSwapNotPending):
		return helper.Error(c, fiber.StatusConflict, "Request sudah tidak pending")
	case err != nil:
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membatalkan request")
	}
	return helper.Success(c, "Request dibatalkan", nil)
}

/* ===================== WORK REQUEST ===================== */

// POST /scheduling/work-requests
func (h *SchedulingController) CreateWorkRequest(c *fiber.Ctx) error {
	var req schedDTO.WorkRequestInput
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	wr, err := h.Scheduling.CreateWorkRequest(req.GuildID, req.UserID, req.Date)
	if errors.Is(err, schedService.ErrDuplicateRequest) {
		return helper.Error(c, fiber.StatusConflict, "Sudah ada request untuk tanggal itu")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat work request")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Work request dibuat", wr)
}

// POST /scheduling/work-requests/:id/respond
func (h *SchedulingController) RespondWorkRequest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	var req schedDTO.WorkRequestRespondInput
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := h.Scheduling.RespondWorkRequest(id, req.Approve, req.Response); err != nil {
		if errors.Is(err, schedService.ErrSwapNotPending) {
			return helper.Error(c, fiber.StatusConflict, "Request sudah direspon")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal merespon request")
	}
	return helper.Success(c, "Request direspon", nil)
}

// GET /scheduling/work-requests?guild_id=
func (h *SchedulingController) PendingWorkRequests(c *fiber.Ctx) error {
	guildID := c.Query("guild_id")
	if guildID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id wajib diisi")
	}
	reqs, err := h.Scheduling.GetPendingWorkRequests(guildID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca request")
	}
	return helper.Success(c, "OK", reqs)
}
