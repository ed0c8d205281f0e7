package services

import (
	"testing"

	"cobblemon-community-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var testCatalog = []models.StarterData{
	{PokemonID: 1, Name: "Bulbasaur"},
	{PokemonID: 4, Name: "Charmander"},
	{PokemonID: 7, Name: "Squirtle"},
	{PokemonID: 152, Name: "Chikorita"},
	{PokemonID: 252, Name: "Treecko"},
}

func TestAvailablePoolFiltersClaimed(t *testing.T) {
	pool := availablePool(testCatalog, map[int]bool{4: true, 252: true})
	require.Len(t, pool, 3)
	for _, s := range pool {
		assert.NotEqual(t, 4, s.PokemonID)
		assert.NotEqual(t, 252, s.PokemonID)
	}
}

func TestAvailablePoolNothingClaimed(t *testing.T) {
	pool := availablePool(testCatalog, map[int]bool{})
	assert.Len(t, pool, len(testCatalog))
}

func TestAvailablePoolAllClaimed(t *testing.T) {
	claimed := map[int]bool{}
	for _, s := range testCatalog {
		claimed[s.PokemonID] = true
	}
	assert.Empty(t, availablePool(testCatalog, claimed))
}

func TestParseSuggestionsBasic(t *testing.T) {
	response := "1. Bulbasaur\n2. Squirtle\n3. Treecko\n4. Charmander\n5. Chikorita"
	got := parseSuggestions(response, testCatalog)
	require.Len(t, got, 5)
	assert.Equal(t, "Bulbasaur", got[0].Name)
	assert.Equal(t, "Squirtle", got[1].Name)
}

func TestParseSuggestionsToleratesAccentsAndExtras(t *testing.T) {
	response := "1. Bulbasáur\n2. El Pokémon Squirtle\n3. charmander"
	got := parseSuggestions(response, testCatalog)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].PokemonID)
	assert.Equal(t, 7, got[1].PokemonID)
	assert.Equal(t, 4, got[2].PokemonID)
}

func TestParseSuggestionsSkipsNoise(t *testing.T) {
	response := "Claro, aquí tienes:\n1. Bulbasaur\nnota final\n2. Mewtwo"
	got := parseSuggestions(response, testCatalog)
	require.Len(t, got, 1)
	assert.Equal(t, "Bulbasaur", got[0].Name)
}

func TestParseSuggestionsDeduplicates(t *testing.T) {
	response := "1. Treecko\n2. Treecko\n3. Bulbasaur"
	got := parseSuggestions(response, testCatalog)
	require.Len(t, got, 2)
	assert.Equal(t, 252, got[0].PokemonID)
	assert.Equal(t, 1, got[1].PokemonID)
}

func TestWeightedPickBoundaries(t *testing.T) {
	// Weights are [0.40, 0.25, 0.20, 0.10, 0.05].
	assert.Equal(t, 0, weightedPick(5, 0.0))
	assert.Equal(t, 0, weightedPick(5, 0.39))
	assert.Equal(t, 1, weightedPick(5, 0.40))
	assert.Equal(t, 2, weightedPick(5, 0.70))
	assert.Equal(t, 3, weightedPick(5, 0.90))
	assert.Equal(t, 4, weightedPick(5, 0.99))
}

func TestWeightedPickShortListFallsBackToTop(t *testing.T) {
	// Two suggestions cover 0.65 of the mass; a draw beyond that picks the first.
	assert.Equal(t, 1, weightedPick(2, 0.5))
	assert.Equal(t, 0, weightedPick(2, 0.9))
	assert.Equal(t, 0, weightedPick(1, 0.99))
}

func TestWeightedPickAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(t, "n")
		draw := rapid.Float64Range(0, 0.999999).Draw(t, "draw")
		idx := weightedPick(n, draw)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, n)
	})
}

func TestStarterNames(t *testing.T) {
	assert.Equal(t, "Bulbasaur, Charmander", starterNames(testCatalog[:2]))
}
