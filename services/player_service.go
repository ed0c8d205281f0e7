package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"cobblemon-community-api/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

// Sync throttling and payload bounds.
const (
	syncThrottle = 5 * time.Second
	maxPartySize = 6
	maxPCStorage = 50
)

// Sync receives the periodic player push from the Minecraft plugin. At most
// one sync per uuid is accepted every 5 seconds, judged against the stored
// syncedAt column so the throttle survives restarts and replicas. Throttled
// requests still succeed so the plugin does not retry.
func (s *PlayerService) Sync(c *fiber.Ctx) error {
	type Req struct {
		UUID                 string            `json:"uuid"`
		Username             string            `json:"username"`
		Online               bool              `json:"online"`
		LastSeen             *time.Time        `json:"lastSeen"`
		Party                []json.RawMessage `json:"party"`
		PCStorage            []json.RawMessage `json:"pcStorage"`
		CobbleDollarsBalance int64             `json:"cobbleDollarsBalance"`
		Badges               *int              `json:"badges"`
		PlaytimeMinutes      *int              `json:"playtimeMinutes"`
		Level                *int              `json:"level"`
		Groups               []string          `json:"groups"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.UUID == "" || req.Username == "" {
		return c.Status(400).JSON(fiber.Map{"error": "UUID and username required"})
	}

	now := time.Now()

	var existing models.User
	err := s.DB.First(&existing, "minecraft_uuid = ?", req.UUID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[SYNC] lookup failed for %s: %v", req.UUID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Error syncing player data"})
	}
	found := err == nil

	if found && existing.SyncedAt != nil && now.Sub(*existing.SyncedAt) < syncThrottle {
		return c.JSON(fiber.Map{"success": true, "rateLimited": true})
	}

	lastSeen := now
	if req.LastSeen != nil {
		lastSeen = *req.LastSeen
	}

	updates := map[string]interface{}{
		"minecraft_username":     req.Username,
		"nickname":               req.Username,
		"minecraft_online":       req.Online,
		"minecraft_last_seen":    &lastSeen,
		"cobble_dollars_balance": req.CobbleDollarsBalance,
		"synced_at":              &now,
	}
	if req.Badges != nil {
		updates["badges"] = *req.Badges
	}
	if req.PlaytimeMinutes != nil {
		updates["playtime_minutes"] = *req.PlaytimeMinutes
	}
	if req.Level != nil {
		updates["level"] = *req.Level
	}
	if req.Groups != nil {
		if data, err := json.Marshal(req.Groups); err == nil {
			updates["player_groups"] = string(data)
		}
	}
	if len(req.Party) > 0 {
		party := req.Party
		if len(party) > maxPartySize {
			party = party[:maxPartySize]
		}
		if data, err := json.Marshal(party); err == nil {
			updates["pokemon_party"] = string(data)
		}
	}
	if len(req.PCStorage) > 0 {
		pc := req.PCStorage
		if len(pc) > maxPCStorage {
			pc = pc[:maxPCStorage]
		}
		if data, err := json.Marshal(pc); err == nil {
			updates["pc_storage"] = string(data)
		}
	}

	if found {
		if err := s.DB.Model(&existing).Updates(updates).Error; err != nil {
			log.Printf("[SYNC] update failed for %s: %v", req.UUID, err)
			return c.Status(500).JSON(fiber.Map{"error": "Error syncing player data"})
		}
		return c.JSON(fiber.Map{"success": true, "banned": existing.Banned})
	}

	mcUUID := req.UUID
	user := models.User{
		ID:                   uuid.NewString(),
		MinecraftUUID:        &mcUUID,
		MinecraftUsername:    req.Username,
		Nickname:             req.Username,
		MinecraftOnline:      req.Online,
		MinecraftLastSeen:    &lastSeen,
		CobbleDollarsBalance: req.CobbleDollarsBalance,
		SyncedAt:             &now,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("[SYNC] create failed for %s: %v", req.UUID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Error syncing player data"})
	}
	// apply the optional attribute updates on the fresh row too
	if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("[SYNC] attribute update failed for %s: %v", req.UUID, err)
	}
	return c.JSON(fiber.Map{"success": true, "banned": false})
}

// GetAllPlayers lists every user with a Minecraft identity.
func (s *PlayerService) GetAllPlayers(c *fiber.Ctx) error {
	var players []models.User
	if err := s.DB.Where("minecraft_uuid IS NOT NULL").Find(&players).Error; err != nil {
		log.Printf("[SYNC] player list failed: %v", err)
		return c.JSON(fiber.Map{"players": []models.User{}})
	}
	return c.JSON(fiber.Map{"players": players})
}

// GetBanStatus lets the plugin check bans before letting a player join.
// Unknown players are simply not banned.
func (s *PlayerService) GetBanStatus(c *fiber.Ctx) error {
	mcUUID := c.Query("uuid")
	if mcUUID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "UUID is required"})
	}
	var user models.User
	err := s.DB.First(&user, "minecraft_uuid = ?", mcUUID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"banned": false})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error checking ban status"})
	}
	return c.JSON(fiber.Map{
		"banned":    user.Banned,
		"banReason": user.BanReason,
		"bannedAt":  user.BannedAt,
	})
}

// MarkStarterGiven records in-game delivery of the rolled starter and keeps
// the claim ledger consistent when the plugin reports the pokemonId.
func (s *PlayerService) MarkStarterGiven(c *fiber.Ctx) error {
	type Req struct {
		UUID      string `json:"uuid"`
		PokemonID int    `json:"pokemonId"`
		Given     *bool  `json:"given"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.UUID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "UUID is required"})
	}

	var user models.User
	if err := s.DB.First(&user, "minecraft_uuid = ?", req.UUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	given := req.Given == nil || *req.Given
	now := time.Now()
	updates := map[string]interface{}{
		"starter_given":    given,
		"starter_given_at": &now,
	}
	if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	if given && req.PokemonID > 0 {
		nickname := user.MinecraftUsername
		if nickname == "" {
			nickname = user.Nickname
		}
		if nickname == "" {
			nickname = user.DiscordUsername
		}
		if nickname == "" {
			nickname = "Desconocido"
		}
		name := "Unknown"
		if data := models.FindStarterData(req.PokemonID); data != nil {
			name = data.Name
		}
		claimedBy := req.UUID
		if user.DiscordID != nil {
			claimedBy = *user.DiscordID
		}
		claim := models.Starter{
			ID:                uuid.NewString(),
			PokemonID:         req.PokemonID,
			Name:              name,
			IsClaimed:         true,
			ClaimedBy:         &claimedBy,
			ClaimedByNickname: nickname,
			MinecraftUsername: user.MinecraftUsername,
			IsShiny:           user.StarterIsShiny,
			ClaimedAt:         &now,
		}
		err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "pokemon_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "is_claimed", "claimed_by", "claimed_by_nickname",
				"minecraft_username", "is_shiny", "claimed_at",
			}),
		}).Create(&claim).Error
		if err != nil {
			log.Printf("[SYNC] starter-given claim upsert failed for %s: %v", req.UUID, err)
		}
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetVerificationStatus lets the plugin poll whether a player linked Discord.
func (s *PlayerService) GetVerificationStatus(c *fiber.Ctx) error {
	mcUUID := c.Query("uuid")
	if mcUUID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "UUID is required"})
	}
	var user models.User
	err := s.DB.First(&user, "minecraft_uuid = ?", mcUUID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"verified": false, "exists": false})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error checking verification status"})
	}
	return c.JSON(fiber.Map{
		"verified":      user.Verified,
		"exists":        true,
		"discordLinked": user.DiscordID != nil,
		"banned":        user.Banned,
	})
}

// GetServerStatus returns the latest Minecraft server status sampled by the
// background poller.
func (s *PlayerService) GetServerStatus(c *fiber.Ctx) error {
	var status models.ServerStatus
	err := s.DB.First(&status, "id = ?", models.ServerStatusID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"online": false, "checkedAt": nil})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching server status"})
	}
	return c.JSON(fiber.Map{
		"online":      status.Online,
		"playerCount": status.PlayerCount,
		"maxPlayers":  status.MaxPlayers,
		"motd":        status.MOTD,
		"version":     status.Version,
		"checkedAt":   status.CheckedAt,
	})
}
