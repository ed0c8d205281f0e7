package models

import (
	"fmt"
	"time"
)

// Starter is the claim-ledger entry for a catalog creature. A row exists
// only once a creature has been claimed (or unclaimed by rollback); the
// catalog itself lives in StartersData. A pokemonId appears at most once
// with IsClaimed = true.
type Starter struct {
	ID                string     `json:"id" gorm:"primaryKey"`
	PokemonID         int        `json:"pokemon_id" gorm:"uniqueIndex;not null"`
	Name              string     `json:"name"`
	IsClaimed         bool       `json:"is_claimed" gorm:"default:false;index"`
	ClaimedBy         *string    `json:"claimed_by"` // discordId of the claimant
	ClaimedByNickname string     `json:"claimed_by_nickname"`
	MinecraftUsername string     `json:"minecraft_username,omitempty"`
	IsShiny           bool       `json:"is_shiny" gorm:"default:false"`
	ClaimedAt         *time.Time `json:"claimed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// StarterStats are the base stats shown in the Pokédex view.
type StarterStats struct {
	HP  int `json:"hp"`
	Atk int `json:"atk"`
	Def int `json:"def"`
	SpA int `json:"spa"`
	SpD int `json:"spd"`
	Spe int `json:"spe"`
}

// StarterData is one read-only catalog entry. The full list is the static
// StartersData slice; claim state lives in the Starter table.
type StarterData struct {
	PokemonID   int          `json:"pokemon_id"`
	Name        string       `json:"name"`
	NameEs      string       `json:"name_es"`
	Generation  int          `json:"generation"`
	Types       []string     `json:"types"`
	Stats       StarterStats `json:"stats"`
	Description string       `json:"description"`
	HeightM     float64      `json:"height_m"`
	WeightKg    float64      `json:"weight_kg"`
}

// StarterSpriteSet points at the community sprite CDN for one creature.
type StarterSpriteSet struct {
	Artwork string `json:"artwork"`
	Front   string `json:"front"`
}

const spriteBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon"

// StarterSprites builds the sprite URLs for a catalog entry.
func StarterSprites(pokemonID int, shiny bool) StarterSpriteSet {
	if shiny {
		return StarterSpriteSet{
			Artwork: fmt.Sprintf("%s/other/official-artwork/shiny/%d.png", spriteBase, pokemonID),
			Front:   fmt.Sprintf("%s/shiny/%d.png", spriteBase, pokemonID),
		}
	}
	return StarterSpriteSet{
		Artwork: fmt.Sprintf("%s/other/official-artwork/%d.png", spriteBase, pokemonID),
		Front:   fmt.Sprintf("%s/%d.png", spriteBase, pokemonID),
	}
}

// FindStarterData looks up a catalog entry by pokemonId.
func FindStarterData(pokemonID int) *StarterData {
	for i := range StartersData {
		if StartersData[i].PokemonID == pokemonID {
			return &StartersData[i]
		}
	}
	return nil
}
