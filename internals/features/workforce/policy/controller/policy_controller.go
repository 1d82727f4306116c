package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pDTO "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/dto"
	policyService "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/service"
	helper "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/helpers"
)

var validate = validator.New()

type PolicyController struct {
	Policy *policyService.Service
}

func NewPolicyController(db *gorm.DB) *PolicyController {
	return &PolicyController{Policy: policyService.New(db)}
}

// GET /policy/:guild_id  (lazy-create kalau belum ada)
func (h *PolicyController) Get(c *fiber.Ctx) error {
	guildID := c.Params("guild_id")
	cfg, err := h.Policy.GetOrCreate(guildID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membaca konfigurasi")
	}
	return helper.Success(c, "OK", pDTO.NewConfigResponse(cfg))
}

// PATCH /policy/:guild_id
func (h *PolicyController) Update(c *fiber.Ctx) error {
	guildID := c.Params("guild_id")

	var req pDTO.UpdateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	cfg, err := h.Policy.Update(guildID, req.ToInput())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui konfigurasi")
	}
	return helper.Success(c, "Konfigurasi diperbarui", pDTO.NewConfigResponse(cfg))
}
