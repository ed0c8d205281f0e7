package services

import (
	"testing"

	"cobblemon-community-api/models"

	"github.com/stretchr/testify/require"
)

func TestRecordMatchResultFinalLeavesLifecycleAlone(t *testing.T) {
	rounds, err := BuildBracket([]string{"p1", "p2"}, nil)
	require.NoError(t, err)

	tournament := &models.Tournament{
		ID:     "t1",
		Name:   "Liga",
		Status: models.TournamentStatusActive,
	}
	require.NoError(t, tournament.SetBracket(rounds))

	final, err := recordMatchResult(tournament, rounds[0].Matches[0].MatchID, "p2", 0, 2)
	require.NoError(t, err)
	require.True(t, final)

	// Resolving the final only rewrites the bracket. Completion, winner and
	// timestamps are reserved for the explicit setWinner action.
	require.Equal(t, models.TournamentStatusActive, tournament.Status)
	require.Nil(t, tournament.WinnerID)
	require.Nil(t, tournament.CompletedAt)

	stored, err := tournament.Bracket()
	require.NoError(t, err)
	require.Equal(t, "p2", *stored[0].Matches[0].WinnerID)
	require.Equal(t, models.MatchStatusCompleted, stored[0].Matches[0].Status)
}

func TestRecordMatchResultNonFinalMatch(t *testing.T) {
	rounds, err := BuildBracket([]string{"p1", "p2", "p3", "p4"}, nil)
	require.NoError(t, err)

	tournament := &models.Tournament{ID: "t2", Status: models.TournamentStatusActive}
	require.NoError(t, tournament.SetBracket(rounds))

	final, err := recordMatchResult(tournament, rounds[0].Matches[0].MatchID, *rounds[0].Matches[0].Player1ID, 2, 1)
	require.NoError(t, err)
	require.False(t, final)
	require.Equal(t, models.TournamentStatusActive, tournament.Status)
}

func TestRecordMatchResultUnknownMatch(t *testing.T) {
	rounds, err := BuildBracket([]string{"p1", "p2"}, nil)
	require.NoError(t, err)

	tournament := &models.Tournament{ID: "t3", Status: models.TournamentStatusActive}
	require.NoError(t, tournament.SetBracket(rounds))

	_, err = recordMatchResult(tournament, "r9-m9", "p1", 0, 0)
	require.ErrorIs(t, err, ErrMatchNotFound)
}
