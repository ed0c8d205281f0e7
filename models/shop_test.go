package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFindPokeball(t *testing.T) {
	ball := FindPokeball("ultra_ball")
	require.NotNil(t, ball)
	assert.Equal(t, "Ultra Ball", ball.Name)

	assert.Nil(t, FindPokeball("beast_ball"))
}

func TestPokeballCatalogShape(t *testing.T) {
	standards := 0
	for _, b := range Pokeballs {
		if b.Type == BallTypeStandard {
			standards++
		}
		assert.LessOrEqual(t, b.MinStock, b.MaxStock, b.ID)
		assert.Positive(t, b.BasePrice, b.ID)
	}
	assert.Equal(t, 3, standards)
}

func TestRandomStockWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		idx := rapid.IntRange(0, len(Pokeballs)-1).Draw(t, "ball")
		ball := Pokeballs[idx]

		stock := RandomStock(ball, rand.New(rand.NewSource(seed)))
		assert.GreaterOrEqual(t, stock, ball.MinStock)
		assert.LessOrEqual(t, stock, ball.MaxStock)
	})
}

func TestPriceWithStockScarcityTiers(t *testing.T) {
	// maxStock 100 makes the ratio thresholds explicit.
	assert.Equal(t, int64(600), PriceWithStock(200, 5, 100))  // <10% → ×3
	assert.Equal(t, int64(400), PriceWithStock(200, 20, 100)) // <25% → ×2
	assert.Equal(t, int64(300), PriceWithStock(200, 40, 100)) // <50% → ×1.5
	assert.Equal(t, int64(200), PriceWithStock(200, 50, 100)) // plenty
	assert.Equal(t, int64(200), PriceWithStock(200, 100, 100))
}

func TestPriceWithStockNeverBelowBase(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := int64(rapid.IntRange(1, 100000).Draw(t, "base"))
		maxStock := rapid.IntRange(1, 50).Draw(t, "max")
		stock := rapid.IntRange(0, maxStock).Draw(t, "stock")

		price := PriceWithStock(base, stock, maxStock)
		assert.GreaterOrEqual(t, price, base)
		assert.LessOrEqual(t, price, base*3)
	})
}

func TestShopStockRoundTrip(t *testing.T) {
	var s ShopStock
	in := map[string]BallStock{
		"poke_ball": {BallID: "poke_ball", Stock: 7, MaxStock: 10, Price: 200},
	}
	require.NoError(t, s.SetStocks(in))

	out, err := s.Stocks()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
