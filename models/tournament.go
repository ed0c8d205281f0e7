package models

import (
	"encoding/json"
	"time"
)

// Tournament statuses. Transitions follow this order; Cancelled is
// reachable from any non-terminal status.
const (
	TournamentStatusDraft        = "draft"
	TournamentStatusRegistration = "registration"
	TournamentStatusUpcoming     = "upcoming"
	TournamentStatusActive       = "active"
	TournamentStatusCompleted    = "completed"
	TournamentStatusCancelled    = "cancelled"
)

// Match statuses within a bracket.
const (
	MatchStatusPending       = "pending"
	MatchStatusReady         = "ready"
	MatchStatusActive        = "active"
	MatchStatusCompleted     = "completed"
	MatchStatusRequiresAdmin = "requires_admin"
)

// Participant statuses.
const (
	ParticipantStatusRegistered = "registered"
	ParticipantStatusActive     = "active"
	ParticipantStatusEliminated = "eliminated"
	ParticipantStatusWinner     = "winner"
)

// Tournament is one competitive event. The participant list and the bracket
// are embedded as JSON text columns; ParticipantList/Bracket decode them.
type Tournament struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"not null"`
	Slug            string     `json:"slug" gorm:"index"`
	Description     string     `json:"description"`
	CreatedBy       string     `json:"created_by"`
	Status          string     `json:"status" gorm:"default:'draft'"`
	BracketType     string     `json:"bracket_type" gorm:"default:'single'"` // "double" is stored but generation is always single-elim
	MaxParticipants int        `json:"max_participants" gorm:"default:0"`
	WinnerID        *string    `json:"winner_id,omitempty"`
	ScheduledStart  *time.Time `json:"scheduled_start,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`

	ParticipantsJSON string `json:"-" gorm:"type:text;column:participants_json"`
	RoundsJSON       string `json:"-" gorm:"type:text;column:rounds_json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TournamentParticipant is one entry in the embedded participant list.
type TournamentParticipant struct {
	VisitorID string `json:"visitor_id"`
	Seed      int    `json:"seed"`
	Status    string `json:"status"`
}

// TournamentMatch is a single bracket slot. Player slots are nil while the
// feeding matches are unresolved (or permanently, for a bye's empty side).
// NextMatchID is nil only for final-round matches.
type TournamentMatch struct {
	MatchID      string  `json:"match_id"`
	Player1ID    *string `json:"player1_id"`
	Player2ID    *string `json:"player2_id"`
	Player1Score int     `json:"player1_score"`
	Player2Score int     `json:"player2_score"`
	WinnerID     *string `json:"winner_id"`
	IsBye        bool    `json:"is_bye"`
	Status       string  `json:"status"`
	NextMatchID  *string `json:"next_match_id"`
}

// TournamentRound groups the matches of one bracket depth.
type TournamentRound struct {
	RoundNumber int               `json:"round_number"`
	Name        string            `json:"name"`
	Matches     []TournamentMatch `json:"matches"`
}

// ParticipantList decodes the embedded participant column.
func (t *Tournament) ParticipantList() ([]TournamentParticipant, error) {
	if t.ParticipantsJSON == "" {
		return nil, nil
	}
	var participants []TournamentParticipant
	if err := json.Unmarshal([]byte(t.ParticipantsJSON), &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// SetParticipantList encodes the participant list into its column.
func (t *Tournament) SetParticipantList(participants []TournamentParticipant) error {
	data, err := json.Marshal(participants)
	if err != nil {
		return err
	}
	t.ParticipantsJSON = string(data)
	return nil
}

// Bracket decodes the embedded rounds column.
func (t *Tournament) Bracket() ([]TournamentRound, error) {
	if t.RoundsJSON == "" {
		return nil, nil
	}
	var rounds []TournamentRound
	if err := json.Unmarshal([]byte(t.RoundsJSON), &rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}

// SetBracket encodes the rounds into their column.
func (t *Tournament) SetBracket(rounds []TournamentRound) error {
	data, err := json.Marshal(rounds)
	if err != nil {
		return err
	}
	t.RoundsJSON = string(data)
	return nil
}

// statusOrder ranks the monotonic statuses; cancelled is handled apart.
var statusOrder = map[string]int{
	TournamentStatusDraft:        0,
	TournamentStatusRegistration: 1,
	TournamentStatusUpcoming:     2,
	TournamentStatusActive:       3,
	TournamentStatusCompleted:    4,
}

// CanTransitionTo reports whether moving from the current status to next is
// allowed: forward-only through the documented order, with cancelled
// reachable from any non-terminal state.
func (t *Tournament) CanTransitionTo(next string) bool {
	if t.Status == TournamentStatusCompleted || t.Status == TournamentStatusCancelled {
		return false
	}
	if next == TournamentStatusCancelled {
		return true
	}
	cur, okCur := statusOrder[t.Status]
	nxt, okNext := statusOrder[next]
	if !okCur || !okNext {
		return false
	}
	return nxt > cur
}
