package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"cobblemon-community-api/models"
)

// ErrNeedsAtLeastTwo is returned when a bracket is requested for fewer than
// two participants.
var ErrNeedsAtLeastTwo = errors.New("need at least 2 participants")

// BuildBracket constructs a single-elimination bracket for the given
// participant IDs. Participants are shuffled, the field is padded to the
// next power of two with byes, and bye matches come back already completed
// with their sole occupant as winner. rng may be nil to use the global
// source; tests pass a seeded one.
func BuildBracket(participantIDs []string, rng *rand.Rand) ([]models.TournamentRound, error) {
	count := len(participantIDs)
	if count < 2 {
		return nil, ErrNeedsAtLeastTwo
	}

	nextPow2 := 1
	for nextPow2 < count {
		nextPow2 *= 2
	}
	totalRounds := int(math.Ceil(math.Log2(float64(nextPow2))))

	shuffled := make([]string, count)
	copy(shuffled, participantIDs)
	if rng != nil {
		rng.Shuffle(count, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	} else {
		rand.Shuffle(count, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	}

	rounds := make([]models.TournamentRound, 0, totalRounds)

	// First round: seed shuffled players pairwise, remaining slots are byes.
	firstMatches := make([]models.TournamentMatch, 0, nextPow2/2)
	pIdx := 0
	take := func() *string {
		if pIdx >= len(shuffled) {
			return nil
		}
		id := shuffled[pIdx]
		pIdx++
		return &id
	}
	for i := 0; i < nextPow2/2; i++ {
		player1 := take()
		player2 := take()
		isBye := player1 == nil || player2 == nil

		m := models.TournamentMatch{
			MatchID:   fmt.Sprintf("r1-m%d", i),
			Player1ID: player1,
			Player2ID: player2,
			IsBye:     isBye,
			Status:    models.MatchStatusPending,
		}
		if totalRounds > 1 {
			next := fmt.Sprintf("r2-m%d", i/2)
			m.NextMatchID = &next
		}
		if isBye {
			m.Status = models.MatchStatusCompleted
			if player1 != nil {
				m.WinnerID = player1
			} else {
				m.WinnerID = player2
			}
		}
		firstMatches = append(firstMatches, m)
	}

	firstName := "Ronda 1"
	if totalRounds == 1 {
		firstName = "Final"
	} else if totalRounds == 2 {
		firstName = "Semifinal"
	}
	rounds = append(rounds, models.TournamentRound{
		RoundNumber: 1,
		Name:        firstName,
		Matches:     firstMatches,
	})

	// Subsequent rounds start empty and fill as winners advance.
	for r := 2; r <= totalRounds; r++ {
		matchCount := len(rounds[r-2].Matches) / 2
		matches := make([]models.TournamentMatch, 0, matchCount)
		for i := 0; i < matchCount; i++ {
			m := models.TournamentMatch{
				MatchID: fmt.Sprintf("r%d-m%d", r, i),
				Status:  models.MatchStatusPending,
			}
			if r < totalRounds {
				next := fmt.Sprintf("r%d-m%d", r+1, i/2)
				m.NextMatchID = &next
			}
			matches = append(matches, m)
		}
		rounds = append(rounds, models.TournamentRound{
			RoundNumber: r,
			Name:        bracketRoundName(r, totalRounds),
			Matches:     matches,
		})
	}

	return rounds, nil
}

func bracketRoundName(r, totalRounds int) string {
	switch {
	case r == totalRounds:
		return "Final"
	case r == totalRounds-1:
		return "Semifinal"
	case r == totalRounds-2:
		return "Cuartos"
	default:
		return fmt.Sprintf("Ronda %d", r)
	}
}

// ErrMatchNotFound is returned when a match ID does not exist in the bracket.
var ErrMatchNotFound = errors.New("match not found in bracket")

// ApplyMatchResult records a result on the named match and advances the
// winner into the downstream match's first empty slot. The winner ID is
// taken as given, which lets admins override byes or corrupted matches.
// The returned flag is true when the completed match was the final, meaning
// the tournament has a champion.
func ApplyMatchResult(rounds []models.TournamentRound, matchID, winnerID string, player1Score, player2Score int) (bool, error) {
	var target *models.TournamentMatch
	for ri := range rounds {
		for mi := range rounds[ri].Matches {
			if rounds[ri].Matches[mi].MatchID == matchID {
				target = &rounds[ri].Matches[mi]
			}
		}
	}
	if target == nil {
		return false, ErrMatchNotFound
	}

	target.WinnerID = &winnerID
	target.Player1Score = player1Score
	target.Player2Score = player2Score
	target.Status = models.MatchStatusCompleted

	if target.NextMatchID == nil {
		return true, nil
	}

	for ri := range rounds {
		for mi := range rounds[ri].Matches {
			next := &rounds[ri].Matches[mi]
			if next.MatchID != *target.NextMatchID {
				continue
			}
			if next.Player1ID == nil {
				next.Player1ID = &winnerID
			} else if next.Player2ID == nil {
				next.Player2ID = &winnerID
			}
			return false, nil
		}
	}
	return false, nil
}
