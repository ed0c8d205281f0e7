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
)

type LevelCapService struct {
	DB *gorm.DB
}

func NewLevelCapService(db *gorm.DB) *LevelCapService {
	return &LevelCapService{DB: db}
}

// GetEffectiveCaps resolves the caps for one player. Unknown players and a
// missing config both resolve to the unbounded fallback so the plugin can
// always enforce something.
func (s *LevelCapService) GetEffectiveCaps(c *fiber.Ctx) error {
	mcUUID := c.Query("uuid")
	if mcUUID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "UUID requerido"})
	}

	now := time.Now()

	var user models.User
	userErr := s.DB.First(&user, "minecraft_uuid = ?", mcUUID).Error
	config, cfgErr := s.loadConfig()
	if cfgErr != nil || errors.Is(userErr, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{
			"success":      true,
			"captureCap":   unboundedCapFallback,
			"ownershipCap": unboundedCapFallback,
			"appliedRules": []string{},
			"calculatedAt": now,
		})
	}
	if userErr != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Error calculando caps"})
	}

	global, err := config.Global()
	if err != nil {
		log.Printf("[LEVELCAP] corrupt global config: %v", err)
		global = models.DefaultGlobalCapConfig()
	}
	staticRules, err := config.StaticRules()
	if err != nil {
		log.Printf("[LEVELCAP] corrupt static rules: %v", err)
	}
	timeRules, err := config.TimeRules()
	if err != nil {
		log.Printf("[LEVELCAP] corrupt time rules: %v", err)
	}

	caps := ResolveEffectiveCaps(global, staticRules, timeRules, PlayerCapAttributes{
		MinecraftUUID:   mcUUID,
		Groups:          user.Groups(),
		Badges:          user.Badges,
		PlaytimeMinutes: user.PlaytimeMinutes,
		Level:           user.Level,
	}, now)

	return c.JSON(fiber.Map{
		"success":         true,
		"captureCap":      caps.CaptureCap,
		"ownershipCap":    caps.OwnershipCap,
		"appliedRules":    caps.AppliedRules,
		"calculatedAt":    caps.CalculatedAt,
		"enforcementMode": global.EnforcementMode,
		"messages":        global.CustomMessages,
	})
}

// GetConfig returns the whole level-cap document for the admin dashboard.
func (s *LevelCapService) GetConfig(c *fiber.Ctx) error {
	config, err := s.loadOrSeedConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	global, _ := config.Global()
	staticRules, _ := config.StaticRules()
	timeRules, _ := config.TimeRules()
	if staticRules == nil {
		staticRules = []models.StaticCapRule{}
	}
	if timeRules == nil {
		timeRules = []models.TimeBasedCapRule{}
	}
	return c.JSON(fiber.Map{
		"globalConfig":   global,
		"staticRules":    staticRules,
		"timeBasedRules": timeRules,
		"updatedAt":      config.UpdatedAt,
	})
}

// UpdateConfig replaces the global toggles/formulas and records the change.
func (s *LevelCapService) UpdateConfig(c *fiber.Ctx) error {
	var global models.GlobalCapConfig
	if err := c.BodyParser(&global); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if global.EnforcementMode != models.EnforcementModeHard && global.EnforcementMode != models.EnforcementModeSoft {
		return c.Status(400).JSON(fiber.Map{"error": "enforcement_mode must be 'hard' or 'soft'"})
	}

	config, err := s.loadOrSeedConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	before, _ := config.Global()
	if err := config.SetGlobal(global); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save config"})
	}
	s.audit(config, c, "update_global_config", before, global)
	if err := s.saveConfig(config); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save config"})
	}
	return c.JSON(fiber.Map{"success": true, "globalConfig": global})
}

func (s *LevelCapService) CreateStaticRule(c *fiber.Ctx) error {
	var rule models.StaticCapRule
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if rule.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	if rule.CaptureCap == nil && rule.OwnershipCap == nil {
		return c.Status(400).JSON(fiber.Map{"error": "rule must set capture_cap or ownership_cap"})
	}
	rule.ID = uuid.NewString()
	rule.CreatedBy = adminIdentity(c)
	rule.CreatedAt = time.Now()

	config, err := s.loadOrSeedConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	rules, _ := config.StaticRules()
	rules = append(rules, rule)
	if err := config.SetStaticRules(rules); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save rule"})
	}
	s.audit(config, c, "create_static_rule", nil, rule)
	if err := s.saveConfig(config); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save rule"})
	}
	return c.Status(201).JSON(rule)
}

func (s *LevelCapService) UpdateStaticRule(c *fiber.Ctx) error {
	id := c.Params("id")
	var updated models.StaticCapRule
	if err := c.BodyParser(&updated); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	config, err := s.loadOrSeedConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	rules, _ := config.StaticRules()
	idx := -1
	for i := range rules {
		if rules[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c.Status(404).JSON(fiber.Map{"error": "regla no encontrada"})
	}
	before := rules[idx]
	updated.ID = before.ID
	updated.CreatedBy = before.CreatedBy
	updated.CreatedAt = before.CreatedAt
	rules[idx] = updated
	if err := config.SetStaticRules(rules); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save rule"})
	}
	s.audit(config, c, "update_static_rule", before, updated)
	if err := s.saveConfig(config); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save rule"})
	}
	return c.JSON(updated)
}

func (s *LevelCapService) DeleteStaticRule(c *fiber.Ctx) error {
	id := c.Params("id")
	config, err := s.loadOrSeedConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	rules, _ := config.StaticRules()
	kept := make([]models.StaticCapRule, 0, len(rules))
	var removed *models.StaticCapRule
	for i := range rules {
		if rules[i].ID == id {
			removed = &rules[i]
			continue
		}
		kept = append(kept, rules[i])
	}
	if removed == nil {
		return c.Status(404).JSON(fiber.Map{"error": "regla no encontrada"})
	}
	if err := config.SetStaticRules(kept); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save"})
	}
	s.audit(config, c, "delete_static_rule", *removed, nil)
	if err := s.saveConfig(config); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *LevelCapService) CreateTimeRule(c *fiber.Ctx) error {
	var rule models.TimeBasedCapRule
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if rule.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	switch rule.TargetCap {
	case models.CapTargetCapture, models.CapTargetOwnership, models.CapTargetBoth:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "target_cap must be capture, ownership or both"})
	}
	switch rule.Progression.Type {
	case models.ProgressionDaily, models.ProgressionInterval, models.ProgressionSchedule:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "progression type must be daily, interval or schedule"})
	}
	rule.ID = uuid.NewString()
	rule.CreatedBy = adminIdentity(c)
	rule.CreatedAt = time.Now()
	rule.CurrentCap = TimeBasedCapAt(rule, time.Now())
	rule.LastUpdate = time.Now()

	config, err := s.loadOrSeedConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	rules, _ := config.TimeRules()
	rules = append(rules, rule)
	if err := config.SetTimeRules(rules); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save rule"})
	}
	s.audit(config, c, "create_time_rule", nil, rule)
	if err := s.saveConfig(config); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save rule"})
	}
	return c.Status(201).JSON(rule)
}

func (s *LevelCapService) UpdateTimeRule(c *fiber.Ctx) error {
	id := c.Params("id")
	var updated models.TimeBasedCapRule
	if err := c.BodyParser(&updated); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	config, err := s.loadOrSeedConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	rules, _ := config.TimeRules()
	idx := -1
	for i := range rules {
		if rules[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c.Status(404).JSON(fiber.Map{"error": "regla no encontrada"})
	}
	before := rules[idx]
	updated.ID = before.ID
	updated.CreatedBy = before.CreatedBy
	updated.CreatedAt = before.CreatedAt
	updated.CurrentCap = TimeBasedCapAt(updated, time.Now())
	updated.LastUpdate = time.Now()
	rules[idx] = updated
	if err := config.SetTimeRules(rules); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save rule"})
	}
	s.audit(config, c, "update_time_rule", before, updated)
	if err := s.saveConfig(config); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save rule"})
	}
	return c.JSON(updated)
}

func (s *LevelCapService) DeleteTimeRule(c *fiber.Ctx) error {
	id := c.Params("id")
	config, err := s.loadOrSeedConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	rules, _ := config.TimeRules()
	kept := make([]models.TimeBasedCapRule, 0, len(rules))
	var removed *models.TimeBasedCapRule
	for i := range rules {
		if rules[i].ID == id {
			removed = &rules[i]
			continue
		}
		kept = append(kept, rules[i])
	}
	if removed == nil {
		return c.Status(404).JSON(fiber.Map{"error": "regla no encontrada"})
	}
	if err := config.SetTimeRules(kept); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save"})
	}
	s.audit(config, c, "delete_time_rule", *removed, nil)
	if err := s.saveConfig(config); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetHistory returns the append-only audit trail, newest first.
func (s *LevelCapService) GetHistory(c *fiber.Ctx) error {
	config, err := s.loadOrSeedConfig()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	history, err := config.History()
	if err != nil {
		log.Printf("[LEVELCAP] corrupt history: %v", err)
		history = nil
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	if history == nil {
		history = []models.CapChange{}
	}
	return c.JSON(fiber.Map{"history": history})
}

// RefreshTimeRuleCaps recomputes the denormalized CurrentCap snapshots.
// Called from the scheduler every minute.
func (s *LevelCapService) RefreshTimeRuleCaps() {
	config, err := s.loadConfig()
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[SCHEDULER] level-cap config load failed: %v", err)
		}
		return
	}
	rules, err := config.TimeRules()
	if err != nil || len(rules) == 0 {
		return
	}
	now := time.Now()
	changed := false
	for i := range rules {
		if !rules[i].Active {
			continue
		}
		current := TimeBasedCapAt(rules[i], now)
		if current != rules[i].CurrentCap {
			rules[i].CurrentCap = current
			rules[i].LastUpdate = now
			changed = true
		}
	}
	if !changed {
		return
	}
	if err := config.SetTimeRules(rules); err != nil {
		log.Printf("[SCHEDULER] failed to encode time rules: %v", err)
		return
	}
	if err := s.saveConfig(config); err != nil {
		log.Printf("[SCHEDULER] failed to persist time rule caps: %v", err)
	}
}

func (s *LevelCapService) loadConfig() (*models.LevelCapConfig, error) {
	var config models.LevelCapConfig
	if err := s.DB.First(&config, "id = ?", models.LevelCapConfigID).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

// loadOrSeedConfig creates the singleton row with defaults on first access.
func (s *LevelCapService) loadOrSeedConfig() (*models.LevelCapConfig, error) {
	config, err := s.loadConfig()
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	config = &models.LevelCapConfig{ID: models.LevelCapConfigID}
	if err := config.SetGlobal(models.DefaultGlobalCapConfig()); err != nil {
		return nil, err
	}
	if err := s.DB.Create(config).Error; err != nil {
		return nil, err
	}
	return config, nil
}

func (s *LevelCapService) saveConfig(config *models.LevelCapConfig) error {
	return s.DB.Model(config).Updates(map[string]interface{}{
		"global_json":       config.GlobalJSON,
		"static_rules_json": config.StaticRulesJSON,
		"time_rules_json":   config.TimeRulesJSON,
		"history_json":      config.HistoryJSON,
	}).Error
}

func (s *LevelCapService) audit(config *models.LevelCapConfig, c *fiber.Ctx, action string, before, after interface{}) {
	change := models.CapChange{
		Timestamp: time.Now(),
		Admin:     adminIdentity(c),
		Action:    action,
		Reason:    c.Query("reason"),
	}
	if before != nil {
		if data, err := json.Marshal(before); err == nil {
			change.Before = data
		}
	}
	if after != nil {
		if data, err := json.Marshal(after); err == nil {
			change.After = data
		}
	}
	if err := config.AppendHistory(change); err != nil {
		log.Printf("[LEVELCAP] failed to append history: %v", err)
	}
}

// adminIdentity reads the acting admin from the gateway-injected headers.
func adminIdentity(c *fiber.Ctx) string {
	if id, ok := c.Locals("discordId").(string); ok && id != "" {
		return id
	}
	return "unknown"
}
