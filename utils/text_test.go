package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pikachu", "pikachu"},
		{"Pokémon", "pokemon"},
		{"Bulbasáur", "bulbasaur"},
		{"Farfetch'd", "farfetchd"},
		{"Mr. Mime", "mrmime"},
		{"Nidoran♀", "nidoran"},
		{"  Squirtle  ", "squirtle"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), tc.in)
	}
}

func TestNormalizeNameEquivalence(t *testing.T) {
	assert.Equal(t, NormalizeName("CHARMANDER"), NormalizeName("charmander"))
	assert.Equal(t, NormalizeName("Pokémon"), NormalizeName("Pokemon"))
}

func TestASCIIFold(t *testing.T) {
	assert.Equal(t, "Pokemon", ASCIIFold("Pokémon"))
	assert.Equal(t, "plain", ASCIIFold("plain"))
}
