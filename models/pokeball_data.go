package models

import "math/rand"

// Pokeballs is the shop catalog. The three standard balls are always in the
// rotation; specials rotate hourly and the Master Ball shows up rarely.
var Pokeballs = []Pokeball{
	{ID: "poke_ball", Name: "Poké Ball", Type: BallTypeStandard, CatchRate: 1.0, BasePrice: 200,
		Description: "La Pokébola básica para capturar Pokémon salvajes.", Sprite: "poke_ball.png", MinStock: 5, MaxStock: 10},
	{ID: "great_ball", Name: "Great Ball", Type: BallTypeStandard, CatchRate: 1.5, BasePrice: 600,
		Description: "Una Pokébola mejorada con mayor tasa de captura.", Sprite: "great_ball.png", MinStock: 3, MaxStock: 8},
	{ID: "ultra_ball", Name: "Ultra Ball", Type: BallTypeStandard, CatchRate: 2.0, BasePrice: 1200,
		Description: "Una Pokébola de alto rendimiento para capturas difíciles.", Sprite: "ultra_ball.png", MinStock: 2, MaxStock: 5},
	{ID: "premier_ball", Name: "Premier Ball", Type: BallTypeSpecial, CatchRate: 1.0, BasePrice: 400,
		Description: "Una Pokébola conmemorativa de apariencia elegante.", Sprite: "premier_ball.png", MinStock: 3, MaxStock: 7},
	{ID: "luxury_ball", Name: "Luxury Ball", Type: BallTypeSpecial, CatchRate: 1.0, BasePrice: 3000,
		Description: "Los Pokémon capturados se vuelven más amigables rápidamente.", Sprite: "luxury_ball.png", MinStock: 1, MaxStock: 4},
	{ID: "quick_ball", Name: "Quick Ball", Type: BallTypeSpecial, CatchRate: 5.0, BasePrice: 2800,
		Description: "Funciona mejor en el primer turno de batalla.", Sprite: "quick_ball.png", MinStock: 1, MaxStock: 3},
	{ID: "dusk_ball", Name: "Dusk Ball", Type: BallTypeSpecial, CatchRate: 3.5, BasePrice: 2400,
		Description: "Funciona mejor de noche o en cuevas.", Sprite: "dusk_ball.png", MinStock: 1, MaxStock: 4},
	{ID: "timer_ball", Name: "Timer Ball", Type: BallTypeSpecial, CatchRate: 4.0, BasePrice: 2200,
		Description: "Más efectiva cuanto más dure el combate.", Sprite: "timer_ball.png", MinStock: 1, MaxStock: 4},
	{ID: "net_ball", Name: "Net Ball", Type: BallTypeSpecial, CatchRate: 3.5, BasePrice: 2000,
		Description: "Ideal para Pokémon de tipo Agua y Bicho.", Sprite: "net_ball.png", MinStock: 1, MaxStock: 5},
	{ID: "dive_ball", Name: "Dive Ball", Type: BallTypeSpecial, CatchRate: 3.5, BasePrice: 2000,
		Description: "Funciona mejor con Pokémon que viven bajo el agua.", Sprite: "dive_ball.png", MinStock: 1, MaxStock: 5},
	{ID: "master_ball", Name: "Master Ball", Type: BallTypeSpecial, CatchRate: 255, BasePrice: 50000,
		Description: "Captura cualquier Pokémon sin fallar. Extremadamente rara.", Sprite: "master_ball.png", MinStock: 1, MaxStock: 1},
}

// FindPokeball looks up a catalog entry by id.
func FindPokeball(id string) *Pokeball {
	for i := range Pokeballs {
		if Pokeballs[i].ID == id {
			return &Pokeballs[i]
		}
	}
	return nil
}

// RandomStock draws a uniform stock level in [MinStock, MaxStock].
func RandomStock(ball Pokeball, rng *rand.Rand) int {
	return rng.Intn(ball.MaxStock-ball.MinStock+1) + ball.MinStock
}

// PriceWithStock scales the base price with scarcity: the emptier the shelf,
// the higher the markup.
func PriceWithStock(basePrice int64, stock, maxStock int) int64 {
	ratio := float64(stock) / float64(maxStock)
	switch {
	case ratio < 0.1:
		return basePrice * 3
	case ratio < 0.25:
		return basePrice * 2
	case ratio < 0.5:
		return basePrice * 3 / 2
	default:
		return basePrice
	}
}
