package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pctrl "github.com/nflgamergod-art/SynapseAI-bot1-sub001/internals/features/workforce/policy/controller"
)

func PolicyRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := pctrl.NewPolicyController(db)

	// Prefix: /policy
	policy := api.Group("/policy")
	policy.Get("/:guild_id", ctrl.Get)
	policy.Patch("/:guild_id", ctrl.Update)
}
