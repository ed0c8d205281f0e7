package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"cobblemon-community-api/models"
	"cobblemon-community-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type TournamentService struct {
	DB *gorm.DB
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{DB: db}
}

func (s *TournamentService) CreateTournament(c *fiber.Ctx) error {
	type Req struct {
		Name            string     `json:"name"`
		ParticipantIDs  []string   `json:"participant_ids"`
		BracketType     string     `json:"bracket_type"`
		CreatorID       string     `json:"creator_id"`
		Description     string     `json:"description"`
		MaxParticipants int        `json:"max_participants"`
		ScheduledStart  *time.Time `json:"scheduled_start"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Name == "" || len(req.ParticipantIDs) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "se necesita nombre y al menos 2 participantes"})
	}
	bracketType := req.BracketType
	if bracketType == "" {
		bracketType = "single"
	}
	// "double" is accepted and stored but brackets are always single-elim.
	if bracketType != "single" && bracketType != "double" {
		return c.Status(400).JSON(fiber.Map{"error": "bracket_type must be 'single' or 'double'"})
	}

	rounds, err := BuildBracket(req.ParticipantIDs, nil)
	if err != nil {
		if errors.Is(err, ErrNeedsAtLeastTwo) {
			return c.Status(400).JSON(fiber.Map{"error": "se necesita nombre y al menos 2 participantes"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "error al crear torneo"})
	}

	participants := make([]models.TournamentParticipant, len(req.ParticipantIDs))
	for i, id := range req.ParticipantIDs {
		participants[i] = models.TournamentParticipant{
			VisitorID: id,
			Seed:      i + 1,
			Status:    models.ParticipantStatusRegistered,
		}
	}

	creator := req.CreatorID
	if creator == "" {
		creator = "unknown"
	}
	tournament := &models.Tournament{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Slug:            slug.Make(req.Name),
		Description:     req.Description,
		CreatedBy:       creator,
		Status:          models.TournamentStatusDraft,
		BracketType:     bracketType,
		MaxParticipants: req.MaxParticipants,
		ScheduledStart:  req.ScheduledStart,
	}
	if err := tournament.SetParticipantList(participants); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "error al crear torneo"})
	}
	if err := tournament.SetBracket(rounds); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "error al crear torneo"})
	}

	if err := s.DB.Create(tournament).Error; err != nil {
		log.Printf("[TOURNAMENT] create failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "error al crear torneo"})
	}
	return c.Status(201).JSON(fiber.Map{
		"success":       true,
		"tournament_id": tournament.ID,
		"tournament":    s.tournamentResponse(tournament),
	})
}

func (s *TournamentService) GetAllTournaments(c *fiber.Ctx) error {
	var tournaments []models.Tournament
	if err := s.DB.Order("created_at DESC").Find(&tournaments).Error; err != nil {
		log.Printf("[TOURNAMENT] list failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "error al obtener torneos"})
	}
	out := make([]fiber.Map, 0, len(tournaments))
	for i := range tournaments {
		out = append(out, s.tournamentResponse(&tournaments[i]))
	}
	return c.JSON(fiber.Map{"tournaments": out})
}

func (s *TournamentService) GetTournamentByID(c *fiber.Ctx) error {
	id := c.Params("id")
	var tournament models.Tournament
	if err := s.DB.Where("id = ? OR slug = ?", id, id).First(&tournament).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "torneo no encontrado"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(s.tournamentResponse(&tournament))
}

// PatchTournament dispatches the bracket mutations. The winner of
// setMatchResult is taken as sent, without checking it was one of the two
// seated players; admins use that to force-resolve byes and disputed games.
func (s *TournamentService) PatchTournament(c *fiber.Ctx) error {
	type Req struct {
		Action string `json:"action"`
		Data   struct {
			MatchID      string `json:"match_id"`
			WinnerID     string `json:"winner_id"`
			Player1Score int    `json:"player1_score"`
			Player2Score int    `json:"player2_score"`
			Status       string `json:"status"`
			VisitorID    string `json:"visitor_id"`
		} `json:"data"`
	}
	id := c.Params("id")
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "torneo no encontrado"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	switch req.Action {
	case "setMatchResult":
		return s.setMatchResult(c, &tournament, req.Data.MatchID, req.Data.WinnerID, req.Data.Player1Score, req.Data.Player2Score)
	case "updateStatus":
		return s.updateStatus(c, &tournament, req.Data.Status)
	case "setWinner":
		return s.setWinner(c, &tournament, req.Data.WinnerID)
	case "removeParticipant":
		return s.removeParticipant(c, &tournament, req.Data.VisitorID)
	default:
		return c.Status(400).JSON(fiber.Map{"error": "acción no válida"})
	}
}

// recordMatchResult writes a result into the tournament's stored bracket and
// reports whether the resolved match was the final. Status, winner and
// completion stay untouched; crowning the champion is the setWinner action.
func recordMatchResult(tournament *models.Tournament, matchID, winnerID string, p1Score, p2Score int) (bool, error) {
	rounds, err := tournament.Bracket()
	if err != nil {
		return false, err
	}
	final, err := ApplyMatchResult(rounds, matchID, winnerID, p1Score, p2Score)
	if err != nil {
		return false, err
	}
	if err := tournament.SetBracket(rounds); err != nil {
		return false, err
	}
	return final, nil
}

func (s *TournamentService) setMatchResult(c *fiber.Ctx, tournament *models.Tournament, matchID, winnerID string, p1Score, p2Score int) error {
	if matchID == "" || winnerID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "match_id and winner_id are required"})
	}
	final, err := recordMatchResult(tournament, matchID, winnerID, p1Score, p2Score)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "match no encontrado"})
		}
		log.Printf("[TOURNAMENT] match result failed on %s: %v", tournament.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "error al actualizar torneo"})
	}

	updates := map[string]interface{}{"rounds_json": tournament.RoundsJSON}
	if err := s.DB.Model(tournament).Updates(updates).Error; err != nil {
		log.Printf("[TOURNAMENT] match result update failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "error al actualizar torneo"})
	}
	return c.JSON(fiber.Map{"success": true, "completed": final})
}

func (s *TournamentService) updateStatus(c *fiber.Ctx, tournament *models.Tournament, status string) error {
	if !tournament.CanTransitionTo(status) {
		return c.Status(400).JSON(fiber.Map{
			"error":   "invalid status transition",
			"current": tournament.Status,
			"wanted":  status,
		})
	}
	now := time.Now()
	updates := map[string]interface{}{"status": status}
	switch status {
	case models.TournamentStatusActive:
		updates["started_at"] = &now
	case models.TournamentStatusCompleted, models.TournamentStatusCancelled:
		updates["completed_at"] = &now
	}
	if err := s.DB.Model(tournament).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "error al actualizar torneo"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *TournamentService) setWinner(c *fiber.Ctx, tournament *models.Tournament, winnerID string) error {
	if winnerID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "winner_id is required"})
	}
	now := time.Now()
	updates := map[string]interface{}{
		"winner_id":    winnerID,
		"status":       models.TournamentStatusCompleted,
		"completed_at": &now,
	}
	if err := s.DB.Model(tournament).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "error al actualizar torneo"})
	}
	go utils.SendDiscordWebhook(os.Getenv("DISCORD_WEBHOOK_URL"), "", []utils.DiscordEmbed{{
		Title:       "🏆 Torneo finalizado",
		Description: fmt.Sprintf("**%s** tiene campeón: <@%s>", tournament.Name, winnerID),
		Color:       0xFFD700,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}})
	return c.JSON(fiber.Map{"success": true})
}

// removeParticipant is only allowed before the bracket is being played; the
// bracket is rebuilt from the remaining field.
func (s *TournamentService) removeParticipant(c *fiber.Ctx, tournament *models.Tournament, visitorID string) error {
	if visitorID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "visitor_id is required"})
	}
	if tournament.Status != models.TournamentStatusDraft && tournament.Status != models.TournamentStatusRegistration {
		return c.Status(400).JSON(fiber.Map{"error": "participants can only be removed before the tournament starts"})
	}
	participants, err := tournament.ParticipantList()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "error al actualizar torneo"})
	}
	remaining := make([]models.TournamentParticipant, 0, len(participants))
	found := false
	for _, p := range participants {
		if p.VisitorID == visitorID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return c.Status(404).JSON(fiber.Map{"error": "participante no encontrado"})
	}
	if len(remaining) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "se necesitan al menos 2 participantes"})
	}
	for i := range remaining {
		remaining[i].Seed = i + 1
	}
	ids := make([]string, len(remaining))
	for i, p := range remaining {
		ids[i] = p.VisitorID
	}
	rounds, err := BuildBracket(ids, nil)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "error al actualizar torneo"})
	}
	if err := tournament.SetParticipantList(remaining); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "error al actualizar torneo"})
	}
	if err := tournament.SetBracket(rounds); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "error al actualizar torneo"})
	}
	updates := map[string]interface{}{
		"participants_json": tournament.ParticipantsJSON,
		"rounds_json":       tournament.RoundsJSON,
	}
	if err := s.DB.Model(tournament).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "error al actualizar torneo"})
	}
	return c.JSON(fiber.Map{"success": true, "tournament": s.tournamentResponse(tournament)})
}

func (s *TournamentService) DeleteTournament(c *fiber.Ctx) error {
	id := c.Params("id")
	result := s.DB.Delete(&models.Tournament{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "torneo no encontrado"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// ActivateScheduled flips upcoming tournaments to active once their
// scheduled start passes. Called from the scheduler every minute.
func (s *TournamentService) ActivateScheduled() {
	now := time.Now()
	var tournaments []models.Tournament
	err := s.DB.
		Where("status = ? AND scheduled_start IS NOT NULL AND scheduled_start <= ?", models.TournamentStatusUpcoming, now).
		Find(&tournaments).Error
	if err != nil {
		log.Printf("[SCHEDULER] scheduled tournament lookup failed: %v", err)
		return
	}
	for i := range tournaments {
		t := &tournaments[i]
		updates := map[string]interface{}{
			"status":     models.TournamentStatusActive,
			"started_at": &now,
		}
		if err := s.DB.Model(t).Updates(updates).Error; err != nil {
			log.Printf("[SCHEDULER] failed to activate tournament %s: %v", t.ID, err)
			continue
		}
		log.Printf("[SCHEDULER] tournament %s (%s) activated", t.Name, t.ID)
	}
}

// tournamentResponse inlines the decoded participant list and bracket the
// way clients expect them, instead of the raw JSON columns.
func (s *TournamentService) tournamentResponse(t *models.Tournament) fiber.Map {
	participants, err := t.ParticipantList()
	if err != nil {
		log.Printf("[TOURNAMENT] corrupt participants on %s: %v", t.ID, err)
	}
	rounds, err := t.Bracket()
	if err != nil {
		log.Printf("[TOURNAMENT] corrupt bracket on %s: %v", t.ID, err)
	}
	return fiber.Map{
		"id":               t.ID,
		"name":             t.Name,
		"slug":             t.Slug,
		"description":      t.Description,
		"created_by":       t.CreatedBy,
		"status":           t.Status,
		"bracket_type":     t.BracketType,
		"max_participants": t.MaxParticipants,
		"winner_id":        t.WinnerID,
		"scheduled_start":  t.ScheduledStart,
		"started_at":       t.StartedAt,
		"completed_at":     t.CompletedAt,
		"participants":     participants,
		"rounds":           rounds,
		"created_at":       t.CreatedAt,
		"updated_at":       t.UpdatedAt,
	}
}
