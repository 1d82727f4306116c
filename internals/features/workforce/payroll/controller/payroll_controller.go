package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	pDTO "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/dto"
	payModel "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/model"
	payService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/payroll/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

var validate = validator.New()

type PayrollController struct {
	Pay      *payService.PayService
	Enforcer *payService.EnforcerService
}

func NewPayrollController(db *gorm.DB, notifier events.Notifier) *PayrollController {
	return &PayrollController{
		Pay:      payService.NewPayService(db),
		Enforcer: payService.NewEnforcerService(db, notifier),
	}
}

// parseRange: rentang inklusif, end digeser ke akhir hari.
func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(helper.DateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(helper.DateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end.AddDate(0, 0, 1).Add(-time.Second), nil
}

/* ===================== KALKULASI ===================== */

// POST /payroll/calculate
func (h *PayrollController) Calculate(c *fiber.Ctx) error {
	var req pDTO.CalculatePayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
	}

	res, err := h.Pay.CalculatePayWithMultiplier(req.GuildID, req.UserID, req.RoleIDs, start, end)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung gaji")
	}
	return helper.Success(c, "OK", res)
}

/* ===================== ADJUSTMENT ===================== */

// PUT /payroll/adjustments
func (h *PayrollController) SetAdjustment(c *fiber.Ctx) error {
	var req pDTO.AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	err := h.Pay.SetAdjustment(req.GuildID, req.TargetID,
		payModel.AdjustmentTargetType(req.TargetType), req.Multiplier, req.Reason, req.CreatedBy)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan adjustment")
	}
	return helper.Success(c, "Adjustment disimpan", nil)
}

// GET /payroll/adjustments?guild_id=
func (h *PayrollController) ListAdjustments(c *fiber.Ctx) error {
	guildID := c.Query("guild_id")
	if guildID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id wajib diisi")
	}
	adjs, err := h.Pay.ListAdjustments(guildID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca adjustment")
	}
	return helper.Success(c, "OK", pDTO.NewAdjustmentResponses(adjs))
}

// DELETE /payroll/adjustments
func (h *PayrollController) RemoveAdjustment(c *fiber.Ctx) error {
	var req pDTO.RemoveAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	removed, err := h.Pay.RemoveAdjustment(req.GuildID, req.TargetID,
		payModel.AdjustmentTargetType(req.TargetType))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus adjustment")
	}
	if !removed {
		return helper.Error(c, fiber.StatusNotFound, "Adjustment tidak ditemukan")
	}
	return helper.Success(c, "Adjustment dihapus", nil)
}

/* ===================== PAY PERIOD ===================== */

// POST /payroll/periods
func (h *PayrollController) CreatePayPeriod(c *fiber.Ctx) error {
	var req pDTO.CalculatePayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
	}

	period, err := h.Pay.CreatePayPeriod(req.GuildID, req.UserID, start, end)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat pay period")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pay period dibuat", pDTO.NewPayPeriodResponse(period))
}

// POST /payroll/periods/:id/pay
func (h *PayrollController) MarkPaid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	marked, err := h.Pay.MarkPayPeriodPaid(id)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menandai paid")
	}
	if !marked {
		return helper.Error(c, fiber.StatusConflict, "Pay period sudah paid atau tidak ditemukan")
	}
	return helper.Success(c, "Pay period ditandai paid", nil)
}

// GET /payroll/periods/unpaid?guild_id=&user_id=
func (h *PayrollController) UnpaidPeriods(c *fiber.Ctx) error {
	guildID := c.Query("guild_id")
	if guildID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id wajib diisi")
	}
	periods, err := h.Pay.GetUnpaidPayPeriods(guildID, c.Query("user_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca pay period")
	}
	return helper.Success(c, "OK", pDTO.NewPayPeriodResponses(periods))
}

// GET /payroll/periods?guild_id=&user_id=&limit=
func (h *PayrollController) UserPeriods(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	periods, err := h.Pay.GetUserPayPeriods(guildID, userID, c.QueryInt("limit"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca pay period")
	}
	return helper.Success(c, "OK", pDTO.NewPayPeriodResponses(periods))
}

// GET /payroll/balances?guild_id=  (semua staff, urut terbesar)
func (h *PayrollController) Balances(c *fiber.Ctx) error {
	guildID := c.Query("guild_id")
	if guildID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id wajib diisi")
	}
	balances, err := h.Pay.GetAllUnpaidBalances(guildID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca saldo")
	}
	return helper.Success(c, "OK", balances)
}

/* ===================== ENFORCEMENT (ADMIN) ===================== */

// POST /payroll/enforce/:guild_id  (trigger sweep manual)
func (h *PayrollController) EnforceGuild(c *fiber.Ctx) error {
	forced, err := h.Enforcer.EnforceGuild(c.Params("guild_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Sweep gagal")
	}
	return helper.Success(c, "Sweep selesai", fiber.Map{"forced": forced})
}

// GET /payroll/cooldown?guild_id=&user_id=
func (h *PayrollController) CooldownStatus(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	remaining, err := h.Enforcer.IsOnCooldown(guildID, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca cooldown")
	}
	return helper.Success(c, "OK", fiber.Map{
		"on_cooldown":       remaining > 0,
		"remaining_seconds": int(remaining.Seconds()),
	})
}

// DELETE /payroll/cooldown
func (h *PayrollController) ClearCooldown(c *fiber.Ctx) error {
	var req pDTO.ResetHoursRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if req.GuildID == "" || req.UserID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	if err := h.Enforcer.ClearCooldown(req.GuildID, req.UserID); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus cooldown")
	}
	return helper.Success(c, "Cooldown dihapus", nil)
}

// POST /payroll/reset-hours  (destruktif, admin only)
func (h *PayrollController) ResetHours(c *fiber.Ctx) error {
	var req pDTO.ResetHoursRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := h.Pay.ResetPayrollHours(req.GuildID, req.UserID, req.Days)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mereset jam kerja")
	}
	return helper.Success(c, "Jam kerja direset", res)
}
