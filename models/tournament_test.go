package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionToForwardOnly(t *testing.T) {
	tt := Tournament{Status: TournamentStatusDraft}
	assert.True(t, tt.CanTransitionTo(TournamentStatusRegistration))
	assert.True(t, tt.CanTransitionTo(TournamentStatusActive))
	assert.False(t, tt.CanTransitionTo(TournamentStatusDraft))

	tt.Status = TournamentStatusActive
	assert.True(t, tt.CanTransitionTo(TournamentStatusCompleted))
	assert.False(t, tt.CanTransitionTo(TournamentStatusUpcoming))
	assert.False(t, tt.CanTransitionTo(TournamentStatusRegistration))
}

func TestCanTransitionToCancelled(t *testing.T) {
	for _, status := range []string{
		TournamentStatusDraft,
		TournamentStatusRegistration,
		TournamentStatusUpcoming,
		TournamentStatusActive,
	} {
		tt := Tournament{Status: status}
		assert.True(t, tt.CanTransitionTo(TournamentStatusCancelled), status)
	}
}

func TestCanTransitionToTerminalStates(t *testing.T) {
	done := Tournament{Status: TournamentStatusCompleted}
	assert.False(t, done.CanTransitionTo(TournamentStatusCancelled))
	assert.False(t, done.CanTransitionTo(TournamentStatusActive))

	cancelled := Tournament{Status: TournamentStatusCancelled}
	assert.False(t, cancelled.CanTransitionTo(TournamentStatusActive))
}

func TestCanTransitionToUnknownStatus(t *testing.T) {
	tt := Tournament{Status: TournamentStatusDraft}
	assert.False(t, tt.CanTransitionTo("paused"))
}

func TestTournamentBracketRoundTrip(t *testing.T) {
	tt := Tournament{}
	next := "r2-m0"
	in := []TournamentRound{{
		RoundNumber: 1,
		Name:        "Semifinal",
		Matches: []TournamentMatch{{
			MatchID:     "r1-m0",
			Status:      MatchStatusPending,
			NextMatchID: &next,
		}},
	}}
	require.NoError(t, tt.SetBracket(in))

	out, err := tt.Bracket()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
