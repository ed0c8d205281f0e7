package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"cobblemon-community-api/models"
	"cobblemon-community-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GachaService struct {
	DB      *gorm.DB
	Persona *PersonaClient
}

func NewGachaService(db *gorm.DB, persona *PersonaClient) *GachaService {
	return &GachaService{DB: db, Persona: persona}
}

// shinyChance is the independent Bernoulli applied to every successful roll.
const shinyChance = 0.01

// GetRollStatus tells the frontend whether this Discord user can still roll,
// and shows their starter when they already did.
func (s *GachaService) GetRollStatus(c *fiber.Ctx) error {
	discordID := c.Query("discordId")
	if discordID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "No discordId provided"})
	}

	var claimedCount int64
	if err := s.DB.Model(&models.Starter{}).Where("is_claimed = ?", true).Count(&claimedCount).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error"})
	}
	total := len(models.StartersData)
	available := total - int(claimedCount)

	var user models.User
	err := s.DB.First(&user, "discord_id = ?", discordID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(500).JSON(fiber.Map{"error": "Error"})
	}

	if err == nil && user.HasRolled() {
		starterData := models.FindStarterData(*user.StarterID)
		if starterData != nil {
			return c.JSON(fiber.Map{
				"canRoll":  false,
				"reason":   "already_rolled",
				"nickname": user.Nickname,
				"starter": fiber.Map{
					"data":    starterData,
					"isShiny": user.StarterIsShiny,
					"sprites": models.StarterSprites(starterData.PokemonID, user.StarterIsShiny),
				},
				"totalStarters":  total,
				"availableCount": available,
			})
		}
	}

	return c.JSON(fiber.Map{
		"canRoll":        true,
		"nickname":       user.Nickname,
		"totalStarters":  total,
		"availableCount": available,
	})
}

// Roll performs the classic uniform gacha draw. The acting identity comes
// from the authenticated request context, never from the body.
func (s *GachaService) Roll(c *fiber.Ctx) error {
	discordID, discordUsername := requestIdentity(c)
	if discordID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No autenticado"})
	}

	user, err := s.findOrCreateUser(discordID, discordUsername)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error creating user"})
	}
	if user.HasRolled() {
		return c.Status(400).JSON(fiber.Map{"error": "¡Ya has hecho tu tirada!", "alreadyRolled": true})
	}

	available, err := s.availableStarters()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error en la tirada"})
	}
	if len(available) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No hay starters disponibles"})
	}

	selected := available[rand.Intn(len(available))]
	return s.processSelection(c, user, selected, discordUsername, false)
}

// requestIdentity reads the trusted proxy identity placed in the request
// context by the user middleware.
func requestIdentity(c *fiber.Ctx) (discordID, discordUsername string) {
	discordID, _ = c.Locals("discordId").(string)
	discordUsername, _ = c.Locals("discordUsername").(string)
	return discordID, discordUsername
}

// soulDrivenQuestions pair positionally with the six submitted answers.
var soulDrivenQuestions = []string{
	"¿Cuál es tu estilo de combate preferido?",
	"¿Qué ambiente te gusta más?",
	"¿Cómo describirías tu personalidad?",
	"¿Qué valoras más en un compañero?",
	"Describe tu mayor fortaleza:",
	"¿Cuál es tu mayor sueño o meta?",
}

// SoulDriven rolls via a personality questionnaire: the answers go to the
// completions API together with the available catalog, and the draw is
// weighted toward the model's top suggestions.
func (s *GachaService) SoulDriven(c *fiber.Ctx) error {
	type Req struct {
		Answers []string `json:"answers"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	discordID, discordUsername := requestIdentity(c)
	if discordID == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No autenticado"})
	}
	if len(req.Answers) != len(soulDrivenQuestions) {
		return c.Status(400).JSON(fiber.Map{"error": "Debes responder todas las preguntas"})
	}

	user, err := s.findOrCreateUser(discordID, discordUsername)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error creating user"})
	}
	if user.HasRolled() {
		return c.Status(400).JSON(fiber.Map{"error": "¡Ya has hecho tu tirada!", "alreadyRolled": true})
	}

	available, err := s.availableStarters()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error en la tirada Soul Driven"})
	}
	if len(available) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No hay starters disponibles"})
	}

	suggested := s.suggestStarters(req.Answers, available)
	var selected models.StarterData
	if len(suggested) == 0 {
		log.Printf("[GACHA] soul-driven got no usable suggestions, falling back to random")
		selected = available[rand.Intn(len(available))]
	} else {
		idx := weightedPick(len(suggested), rand.Float64())
		selected = suggested[idx]
		log.Printf("[GACHA] soul-driven suggestions: %s, picked %s",
			starterNames(suggested), selected.Name)
	}
	return s.processSelection(c, user, selected, discordUsername, true)
}

// GetAllStarters serves the Pokédex view: the static catalog merged with
// live claim state, grouped by generation.
func (s *GachaService) GetAllStarters(c *fiber.Ctx) error {
	var claims []models.Starter
	if err := s.DB.Where("is_claimed = ?", true).Find(&claims).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error"})
	}
	claimMap := make(map[int]models.Starter, len(claims))
	for _, cl := range claims {
		claimMap[cl.PokemonID] = cl
	}

	byGeneration := make(map[int][]fiber.Map)
	for _, starter := range models.StartersData {
		entry := fiber.Map{
			"data": starter,
			"sprites": fiber.Map{
				"normal": models.StarterSprites(starter.PokemonID, false),
				"shiny":  models.StarterSprites(starter.PokemonID, true),
			},
			"isClaimed": false,
		}
		if cl, ok := claimMap[starter.PokemonID]; ok {
			displayName := cl.MinecraftUsername
			if displayName == "" {
				displayName = cl.ClaimedByNickname
			}
			if displayName == "" {
				displayName = "Desconocido"
			}
			entry["isClaimed"] = true
			entry["claimedBy"] = displayName
			entry["claimedAt"] = cl.ClaimedAt
			entry["isShiny"] = cl.IsShiny
		}
		byGeneration[starter.Generation] = append(byGeneration[starter.Generation], entry)
	}

	generations := make([]int, 0, len(byGeneration))
	for gen := range byGeneration {
		generations = append(generations, gen)
	}
	sort.Ints(generations)

	return c.JSON(fiber.Map{
		"byGeneration": byGeneration,
		"generations":  generations,
		"total":        len(models.StartersData),
		"claimed":      len(claims),
	})
}

func (s *GachaService) findOrCreateUser(discordID, discordUsername string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "discord_id = ?", discordID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if discordUsername == "" {
		discordUsername = "Unknown"
	}
	user = models.User{
		ID:              uuid.NewString(),
		DiscordID:       &discordID,
		DiscordUsername: discordUsername,
		Nickname:        discordUsername,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// availableStarters computes the candidate pool: catalog minus claimed.
func (s *GachaService) availableStarters() ([]models.StarterData, error) {
	var claims []models.Starter
	if err := s.DB.Where("is_claimed = ?", true).Find(&claims).Error; err != nil {
		return nil, err
	}
	claimedIDs := make(map[int]bool, len(claims))
	for _, cl := range claims {
		claimedIDs[cl.PokemonID] = true
	}
	return availablePool(models.StartersData, claimedIDs), nil
}

func availablePool(catalog []models.StarterData, claimedIDs map[int]bool) []models.StarterData {
	pool := make([]models.StarterData, 0, len(catalog))
	for _, s := range catalog {
		if !claimedIDs[s.PokemonID] {
			pool = append(pool, s)
		}
	}
	return pool
}

// suggestStarters asks the completions API for the five best personality
// matches and maps its answer lines back to catalog entries.
func (s *GachaService) suggestStarters(answers []string, available []models.StarterData) []models.StarterData {
	var catalogLines []string
	for _, p := range available {
		catalogLines = append(catalogLines,
			fmt.Sprintf("%s (%s) - %s", p.Name, strings.Join(p.Types, "/"), p.Description))
	}

	var qa []string
	for i, q := range soulDrivenQuestions {
		qa = append(qa, fmt.Sprintf("%d. %s\n   Respuesta: %s", i+1, q, answers[i]))
	}

	prompt := fmt.Sprintf(`Eres un psicólogo especializado en análisis de personalidad. Analiza el siguiente perfil:

%s

Basándote en esta información, identifica los 5 rasgos de personalidad más dominantes de esta persona.

Para cada rasgo, relaciona qué criatura de esta lista sería más compatible con ese aspecto de su personalidad:

%s

Responde ÚNICAMENTE en el formato exacto:
1. [Nombre del Pokemon]
2. [Nombre del Pokemon]
3. [Nombre del Pokemon]
4. [Nombre del Pokemon]
5. [Nombre del Pokemon]

Sin explicaciones, solo nombres. Usa SOLO los Pokémon listados arriba.`,
		strings.Join(qa, "\n\n"), strings.Join(catalogLines, "\n"))

	response, err := s.Persona.Complete(prompt)
	if err != nil {
		log.Printf("[GACHA] soul-driven completion failed: %v", err)
		return nil
	}
	return parseSuggestions(response, available)
}

var suggestionLineRe = regexp.MustCompile(`^\d+\.\s*(.+)$`)

// parseSuggestions extracts "N. Name" lines and matches each name against
// the available catalog, tolerating accents, case and extra words around
// the name. Duplicates keep their first position.
func parseSuggestions(response string, available []models.StarterData) []models.StarterData {
	var suggested []models.StarterData
	seen := make(map[int]bool)
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		m := suggestionLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := utils.NormalizeName(utils.ASCIIFold(m[1]))
		for _, s := range available {
			candidate := utils.NormalizeName(s.Name)
			if name == candidate || strings.Contains(name, candidate) {
				if !seen[s.PokemonID] {
					seen[s.PokemonID] = true
					suggested = append(suggested, s)
				}
				break
			}
		}
	}
	return suggested
}

// suggestionWeights bias the draw toward the model's first picks.
var suggestionWeights = []float64{0.40, 0.25, 0.20, 0.10, 0.05}

// weightedPick maps a uniform draw in [0,1) to a suggestion index. When
// fewer than five suggestions are present and the draw lands past their
// cumulative weight, the top suggestion wins.
func weightedPick(n int, draw float64) int {
	cumulative := 0.0
	for i := 0; i < n && i < len(suggestionWeights); i++ {
		cumulative += suggestionWeights[i]
		if draw < cumulative {
			return i
		}
	}
	return 0
}

// processSelection claims the chosen starter for the user: the user row is
// written first, then the claim ledger. A failed ledger write rolls the
// user back; a failed rollback is logged and left for manual repair.
func (s *GachaService) processSelection(c *fiber.Ctx, user *models.User, selected models.StarterData, discordUsername string, soulDriven bool) error {
	isShiny := rand.Float64() < shinyChance
	now := time.Now()

	userUpdates := map[string]interface{}{
		"starter_id":       selected.PokemonID,
		"starter_is_shiny": isShiny,
		"rolled_at":        &now,
	}
	if err := s.DB.Model(user).Updates(userUpdates).Error; err != nil {
		log.Printf("[GACHA] user update failed for %s: %v", user.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Error durante la tirada. Por favor intenta de nuevo."})
	}

	nickname := discordUsername
	if nickname == "" {
		nickname = user.Nickname
	}
	if nickname == "" {
		nickname = user.DiscordUsername
	}
	if nickname == "" {
		nickname = "Desconocido"
	}

	claim := models.Starter{
		ID:                uuid.NewString(),
		PokemonID:         selected.PokemonID,
		Name:              selected.Name,
		IsClaimed:         true,
		ClaimedBy:         user.DiscordID,
		ClaimedByNickname: nickname,
		MinecraftUsername: user.MinecraftUsername,
		IsShiny:           isShiny,
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
		log.Printf("[GACHA] claim failed for %s (pokemon %d): %v", user.ID, selected.PokemonID, err)
		rollback := map[string]interface{}{
			"starter_id":       nil,
			"starter_is_shiny": false,
			"rolled_at":        nil,
		}
		if rbErr := s.DB.Model(user).Updates(rollback).Error; rbErr != nil {
			log.Printf("[GACHA] CRITICAL: rollback failed for user %s: %v", user.ID, rbErr)
		} else {
			log.Printf("[GACHA] rollback successful: user %s reverted", user.ID)
		}
		return c.Status(500).JSON(fiber.Map{"error": "Error durante la tirada. Por favor intenta de nuevo."})
	}

	sprites := models.StarterSprites(selected.PokemonID, isShiny)
	go s.announceStarter(nickname, selected, isShiny, sprites)

	message := fmt.Sprintf("¡Felicidades! Has obtenido a %s!", selected.Name)
	if soulDriven {
		message = fmt.Sprintf("¡Tu alma resuena con %s!", selected.Name)
	}
	if isShiny {
		message = "🌟 ¡INCREÍBLE! ¡Has obtenido un SHINY!"
		if soulDriven {
			message = "🌟 ¡INCREÍBLE! ¡Tu alma ha atraído un SHINY!"
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"starter": fiber.Map{
			"data":    selected,
			"isShiny": isShiny,
			"sprites": sprites,
		},
		"message": message,
	})
}

func (s *GachaService) announceStarter(nickname string, starter models.StarterData, isShiny bool, sprites models.StarterSpriteSet) {
	title := fmt.Sprintf("🎲 %s ha obtenido a %s", nickname, starter.Name)
	color := 0x4CAF50
	if isShiny {
		title = fmt.Sprintf("🌟 ¡%s ha obtenido a %s SHINY!", nickname, starter.Name)
		color = 0xFFD700
	}
	utils.SendDiscordWebhook(os.Getenv("DISCORD_WEBHOOK_URL"), "", []utils.DiscordEmbed{{
		Title:       title,
		Description: starter.Description,
		Color:       color,
		Thumbnail:   &utils.DiscordEmbedImage{URL: sprites.Artwork},
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}})
}

func starterNames(starters []models.StarterData) string {
	names := make([]string, len(starters))
	for i, s := range starters {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}
