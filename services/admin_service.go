package services

import (
	"errors"
	"log"
	"time"

	"cobblemon-community-api/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// hardcodedResetAdmins may trigger the full wipe even without the isAdmin
// flag; this mirrors the break-glass list the community owner controls.
var hardcodedResetAdmins = map[string]bool{
	"478742167557505034": true,
}

const resetConfirmation = "RESET_ALL_DATA"

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// ResetDatabase wipes the community data. Double-gated: the caller must be
// on the hardcoded allow-list AND send the literal confirmation string.
func (s *AdminService) ResetDatabase(c *fiber.Ctx) error {
	discordID, _ := c.Locals("discordId").(string)
	if discordID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No autenticado"})
	}
	if !hardcodedResetAdmins[discordID] {
		return c.Status(403).JSON(fiber.Map{"error": "No autorizado. Requieres permisos de administrador."})
	}

	type Req struct {
		ConfirmReset string `json:"confirmReset"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.ConfirmReset != resetConfirmation {
		return c.Status(400).JSON(fiber.Map{"error": `Debes confirmar con "RESET_ALL_DATA"`})
	}

	log.Printf("[RESET] === FULL DATA RESET STARTING (by %s) ===", discordID)

	deleted := fiber.Map{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		wipe := func(name string, model interface{}) error {
			result := tx.Where("1 = 1").Delete(model)
			if result.Error != nil {
				return result.Error
			}
			deleted[name] = result.RowsAffected
			return nil
		}
		if err := wipe("users", &models.User{}); err != nil {
			return err
		}
		if err := wipe("starters", &models.Starter{}); err != nil {
			return err
		}
		if err := wipe("tournaments", &models.Tournament{}); err != nil {
			return err
		}
		return wipe("shopPurchases", &models.ShopPurchase{})
	})
	if err != nil {
		log.Printf("[RESET] CRITICAL: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Error al resetear"})
	}

	log.Printf("[RESET] === RESET COMPLETE: %v ===", deleted)
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Base de datos COMPLETAMENTE reseteada",
		"deleted":   deleted,
		"timestamp": time.Now(),
	})
}

// SetBan toggles the banned flag by Minecraft uuid or Discord id.
func (s *AdminService) SetBan(c *fiber.Ctx) error {
	type Req struct {
		UUID      string `json:"uuid"`
		DiscordID string `json:"discordId"`
		Banned    bool   `json:"banned"`
		Reason    string `json:"reason"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.UUID == "" && req.DiscordID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "uuid or discordId required"})
	}

	query := s.DB
	if req.UUID != "" {
		query = query.Where("minecraft_uuid = ?", req.UUID)
	} else {
		query = query.Where("discord_id = ?", req.DiscordID)
	}
	var user models.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Jugador no encontrado"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	updates := map[string]interface{}{"banned": req.Banned}
	if req.Banned {
		now := time.Now()
		updates["ban_reason"] = req.Reason
		updates["banned_at"] = &now
	} else {
		updates["ban_reason"] = ""
		updates["banned_at"] = nil
	}
	if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	log.Printf("[ADMIN] ban=%v for user %s (by %s)", req.Banned, user.ID, adminIdentity(c))
	return c.JSON(fiber.Map{"success": true, "banned": req.Banned})
}
