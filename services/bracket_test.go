package services

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"cobblemon-community-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func participantIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("player-%d", i)
	}
	return ids
}

func TestBuildBracketRejectsTooFewParticipants(t *testing.T) {
	_, err := BuildBracket(nil, nil)
	assert.ErrorIs(t, err, ErrNeedsAtLeastTwo)

	_, err = BuildBracket([]string{"solo"}, nil)
	assert.ErrorIs(t, err, ErrNeedsAtLeastTwo)
}

func TestBuildBracketTwoPlayers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rounds, err := BuildBracket(participantIDs(2), rng)
	require.NoError(t, err)

	require.Len(t, rounds, 1)
	assert.Equal(t, "Final", rounds[0].Name)
	require.Len(t, rounds[0].Matches, 1)

	m := rounds[0].Matches[0]
	assert.Equal(t, "r1-m0", m.MatchID)
	assert.False(t, m.IsBye)
	assert.Nil(t, m.NextMatchID)
	assert.Equal(t, models.MatchStatusPending, m.Status)
}

func TestBuildBracketFivePlayers(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rounds, err := BuildBracket(participantIDs(5), rng)
	require.NoError(t, err)

	// 5 players pad to 8 slots: 4 + 2 + 1 matches across 3 rounds.
	require.Len(t, rounds, 3)
	assert.Equal(t, "Ronda 1", rounds[0].Name)
	assert.Equal(t, "Semifinal", rounds[1].Name)
	assert.Equal(t, "Final", rounds[2].Name)

	require.Len(t, rounds[0].Matches, 4)
	require.Len(t, rounds[1].Matches, 2)
	require.Len(t, rounds[2].Matches, 1)

	byes := 0
	for _, m := range rounds[0].Matches {
		if m.IsBye {
			byes++
			assert.Equal(t, models.MatchStatusCompleted, m.Status)
			require.NotNil(t, m.WinnerID)
		}
	}
	assert.Equal(t, 3, byes)

	// Byes complete round 1 but do not pre-fill the semifinals.
	for _, m := range rounds[1].Matches {
		assert.Nil(t, m.Player1ID)
		assert.Nil(t, m.Player2ID)
		assert.Equal(t, models.MatchStatusPending, m.Status)
	}
}

func TestBuildBracketFourPlayersNames(t *testing.T) {
	rounds, err := BuildBracket(participantIDs(4), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "Semifinal", rounds[0].Name)
	assert.Equal(t, "Final", rounds[1].Name)
}

func TestBuildBracketProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 64).Draw(t, "n")
		seed := rapid.Int64().Draw(t, "seed")

		rounds, err := BuildBracket(participantIDs(n), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		nextPow2 := 1
		for nextPow2 < n {
			nextPow2 *= 2
		}
		totalRounds := int(math.Ceil(math.Log2(float64(nextPow2))))
		require.Len(t, rounds, totalRounds)

		seen := map[string]bool{}
		for ri, round := range rounds {
			assert.Equal(t, ri+1, round.RoundNumber)
			assert.Len(t, round.Matches, nextPow2>>(ri+1))

			for mi, m := range round.Matches {
				assert.Equal(t, fmt.Sprintf("r%d-m%d", ri+1, mi), m.MatchID)

				if ri == totalRounds-1 {
					assert.Nil(t, m.NextMatchID)
				} else {
					require.NotNil(t, m.NextMatchID)
					assert.Equal(t, fmt.Sprintf("r%d-m%d", ri+2, mi/2), *m.NextMatchID)
				}

				if m.IsBye {
					assert.Equal(t, models.MatchStatusCompleted, m.Status)
					require.NotNil(t, m.WinnerID)
				}

				for _, p := range []*string{m.Player1ID, m.Player2ID} {
					if p != nil {
						assert.False(t, seen[*p], "participant seeded twice")
						seen[*p] = true
					}
				}
			}
		}
		assert.Len(t, seen, n)
	})
}

func TestApplyMatchResultAdvancesWinner(t *testing.T) {
	rounds, err := BuildBracket(participantIDs(4), rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	winner := *rounds[0].Matches[0].Player1ID
	final, err := ApplyMatchResult(rounds, "r1-m0", winner, 2, 1)
	require.NoError(t, err)
	assert.False(t, final)

	m := rounds[0].Matches[0]
	assert.Equal(t, models.MatchStatusCompleted, m.Status)
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, winner, *m.WinnerID)
	assert.Equal(t, 2, m.Player1Score)
	assert.Equal(t, 1, m.Player2Score)

	require.NotNil(t, rounds[1].Matches[0].Player1ID)
	assert.Equal(t, winner, *rounds[1].Matches[0].Player1ID)

	// Second semifinal winner lands in the second slot.
	other := *rounds[0].Matches[1].Player1ID
	_, err = ApplyMatchResult(rounds, "r1-m1", other, 2, 0)
	require.NoError(t, err)
	require.NotNil(t, rounds[1].Matches[0].Player2ID)
	assert.Equal(t, other, *rounds[1].Matches[0].Player2ID)
}

func TestApplyMatchResultFinalFlag(t *testing.T) {
	rounds, err := BuildBracket(participantIDs(2), rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	winner := *rounds[0].Matches[0].Player2ID
	final, err := ApplyMatchResult(rounds, "r1-m0", winner, 0, 2)
	require.NoError(t, err)
	assert.True(t, final)
}

func TestApplyMatchResultUnknownMatch(t *testing.T) {
	rounds, err := BuildBracket(participantIDs(4), rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	_, err = ApplyMatchResult(rounds, "r9-m9", "anyone", 1, 0)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestBracketRoundNameDistance(t *testing.T) {
	assert.Equal(t, "Final", bracketRoundName(4, 4))
	assert.Equal(t, "Semifinal", bracketRoundName(3, 4))
	assert.Equal(t, "Cuartos", bracketRoundName(2, 4))
	assert.Equal(t, "Ronda 2", bracketRoundName(2, 5))
}
