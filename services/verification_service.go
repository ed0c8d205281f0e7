package services

import (
	"errors"
	"log"
	"time"

	"cobblemon-community-api/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationService links Minecraft players to Discord accounts through a
// one-time code generated in-game.
type VerificationService struct {
	DB *gorm.DB
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{DB: db}
}

// Register stores a pending verification code pushed by the plugin when a
// player runs the link command. The Minecraft user row is created on demand.
func (s *VerificationService) Register(c *fiber.Ctx) error {
	type Req struct {
		UUID     string `json:"uuid"`
		Username string `json:"username"`
		Code     string `json:"code"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.UUID == "" || req.Username == "" || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing required fields"})
	}

	var existing models.User
	err := s.DB.First(&existing, "minecraft_uuid = ?", req.UUID).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"minecraft_username": req.Username,
			"verification_code":  req.Code,
			"verified":           false,
		}
		if err := s.DB.Model(&existing).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Error registering verification"})
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		mcUUID := req.UUID
		user := models.User{
			ID:                uuid.NewString(),
			MinecraftUUID:     &mcUUID,
			MinecraftUsername: req.Username,
			Nickname:          req.Username,
			VerificationCode:  req.Code,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Error registering verification"})
		}
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Error registering verification"})
	}

	log.Printf("[VERIFY] code registered for %s (%s)", req.Username, req.UUID)
	return c.JSON(fiber.Map{"success": true})
}

// Check is polled by the plugin to see whether a code has been claimed on
// the website. Verified users still match through lastVerificationCode
// because the active code is cleared on success.
func (s *VerificationService) Check(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Code is required"})
	}

	var user models.User
	err := s.DB.
		Where("verification_code = ? OR (verified = ? AND last_verification_code = ?)", code, true, code).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"verified": false, "error": "Code not found"})
	}
	if err != nil {
		return c.JSON(fiber.Map{"verified": false, "error": "Error checking verification"})
	}
	return c.JSON(fiber.Map{
		"verified":      user.Verified,
		"discordLinked": user.DiscordID != nil,
	})
}

// SubmitCode is the website side of the flow: the logged-in Discord user
// types the in-game code. If that Discord identity already rolled a starter
// on the web, its record is merged into the Minecraft one (starter data from
// the Discord record wins) and the duplicate row is deleted.
func (s *VerificationService) SubmitCode(c *fiber.Ctx) error {
	type Req struct {
		Code            string `json:"code"`
		DiscordID       string `json:"discordId"`
		DiscordUsername string `json:"discordUsername"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Code == "" || req.DiscordID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Código y Discord ID requeridos"})
	}

	var minecraftUser models.User
	err := s.DB.First(&minecraftUser, "verification_code = ?", req.Code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "Código no válido. Asegúrate de escribirlo correctamente."})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al verificar"})
	}

	now := time.Now()

	var discordUser models.User
	err = s.DB.
		Where("discord_id = ? AND id != ?", req.DiscordID, minecraftUser.ID).
		First(&discordUser).Error
	hasDuplicate := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(500).JSON(fiber.Map{"error": "Error al verificar"})
	}

	updates := map[string]interface{}{
		"discord_id":             req.DiscordID,
		"discord_username":       req.DiscordUsername,
		"verified":               true,
		"verified_at":            &now,
		"last_verification_code": req.Code,
		"verification_code":      "",
	}
	if hasDuplicate {
		if req.DiscordUsername == "" {
			updates["discord_username"] = discordUser.DiscordUsername
		}
		nickname := discordUser.Nickname
		if nickname == "" {
			nickname = minecraftUser.Nickname
		}
		updates["nickname"] = nickname
		updates["starter_id"] = discordUser.StarterID
		updates["starter_is_shiny"] = discordUser.StarterIsShiny
		updates["rolled_at"] = discordUser.RolledAt
		updates["is_admin"] = discordUser.IsAdmin
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if hasDuplicate {
			// free the unique discord_id before reassigning it
			if err := tx.Delete(&models.User{}, "id = ?", discordUser.ID).Error; err != nil {
				return err
			}
		}
		return tx.Model(&minecraftUser).Updates(updates).Error
	})
	if err != nil {
		log.Printf("[VERIFY] merge failed for %s: %v", req.DiscordID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Error al verificar"})
	}
	if hasDuplicate {
		log.Printf("[VERIFY] merged discord user %s into minecraft user %s", req.DiscordID, *minecraftUser.MinecraftUUID)
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"message":           "¡Verificación exitosa! Ya puedes moverte en el servidor.",
		"minecraftUsername": minecraftUser.MinecraftUsername,
	})
}

// VerifyInGame is the plugin-side confirmation: the player types the code
// back in Minecraft. The Discord link, if any, is kept.
func (s *VerificationService) VerifyInGame(c *fiber.Ctx) error {
	type Req struct {
		MinecraftUUID string `json:"minecraftUuid"`
		Code          string `json:"code"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "invalid JSON"})
	}
	if req.MinecraftUUID == "" || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Missing required fields"})
	}

	var user models.User
	err := s.DB.
		Where("minecraft_uuid = ? AND verification_code = ?", req.MinecraftUUID, req.Code).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"success": false, "error": "Invalid verification code"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Error verifying code"})
	}

	now := time.Now()
	updates := map[string]interface{}{
		"verified":               true,
		"verified_at":            &now,
		"last_verification_code": req.Code,
		"verification_code":      "",
	}
	if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Error verifying code"})
	}

	log.Printf("[VERIFY] in-game verification for %s", user.MinecraftUsername)
	return c.JSON(fiber.Map{"success": true, "message": "Verification successful"})
}
