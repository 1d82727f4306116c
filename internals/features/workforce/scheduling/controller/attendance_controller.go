package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schedDTO "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/dto"
	schedService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/scheduling/service"
	"github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/events"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

type AttendanceController struct {
	UPT        *schedService.UPTService
	Attendance *schedService.AttendanceService
}

func NewAttendanceController(db *gorm.DB, notifier events.Notifier) *AttendanceController {
	return &AttendanceController{
		UPT:        schedService.NewUPTService(db),
		Attendance: schedService.NewAttendanceService(db, notifier),
	}
}

/* ===================== UPT ===================== */

// GET /scheduling/upt?guild_id=&user_id=
func (h *AttendanceController) UPTBalance(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	bal, err := h.UPT.GetBalance(guildID, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca saldo UPT")
	}
	return helper.Success(c, "OK", schedDTO.NewUPTBalanceResponse(bal))
}

// GET /scheduling/upt/history?guild_id=&user_id=&limit=
func (h *AttendanceController) UPTHistory(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	hist, err := h.UPT.History(guildID, userID, c.QueryInt("limit"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca riwayat UPT")
	}
	return helper.Success(c, "OK", hist)
}

// POST /scheduling/upt/adjust  (koreksi manual admin)
func (h *AttendanceController) UPTAdjust(c *fiber.Ctx) error {
	var req schedDTO.UPTAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var date *string
	if req.Date != "" {
		date = &req.Date
	}
	if err := h.UPT.Adjust(req.GuildID, req.UserID, req.Amount, date); err != nil {
		if errors.Is(err, schedService.ErrInsufficientUPT) {
			return helper.Error(c, fiber.StatusConflict, "Saldo UPT tidak cukup")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyesuaikan UPT")
	}
	return helper.Success(c, "Saldo UPT disesuaikan", nil)
}

/* ===================== WRITEUP & MISSED ===================== */

// GET /scheduling/writeups?guild_id=&user_id=
func (h *AttendanceController) Writeups(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	ws, err := h.Attendance.ListWriteups(guildID, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca writeup")
	}
	return helper.Success(c, "OK", ws)
}

// DELETE /scheduling/writeups?guild_id=&user_id=
func (h *AttendanceController) ClearWriteups(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	n, err := h.Attendance.ClearWriteups(guildID, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus writeup")
	}
	return helper.Success(c, "Writeup dihapus", fiber.Map{"deleted": n})
}

// GET /scheduling/missed?guild_id=&user_id=&limit=
func (h *AttendanceController) MissedShifts(c *fiber.Ctx) error {
	guildID, userID := c.Query("guild_id"), c.Query("user_id")
	if guildID == "" || userID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "guild_id dan user_id wajib diisi")
	}
	ms, err := h.Attendance.ListMissedShifts(guildID, userID, c.QueryInt("limit"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca missed shift")
	}
	return helper.Success(c, "OK", ms)
}

// POST /scheduling/missed/check/:guild_id  (trigger manual cek harian)
func (h *AttendanceController) CheckMissedToday(c *fiber.Ctx) error {
	results, err := h.Attendance.CheckMissedShiftsToday(c.Params("guild_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Pengecekan gagal")
	}
	return helper.Success(c, "Pengecekan selesai", fiber.Map{"missed": len(results)})
}
