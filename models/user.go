package models

import (
	"encoding/json"
	"time"
)

// User is one record per community member. A user can exist with only a
// Discord identity (rolled a starter on the web before playing), only a
// Minecraft identity (synced from the server before linking Discord), or
// both after verification merges the two records.
type User struct {
	ID string `json:"id" gorm:"primaryKey"`

	// Discord identity (nullable until linked)
	DiscordID       *string `json:"discord_id" gorm:"uniqueIndex"`
	DiscordUsername string  `json:"discord_username"`
	DiscordAvatar   string  `json:"discord_avatar,omitempty"`
	Nickname        string  `json:"nickname"`

	// Minecraft identity (nullable until the plugin syncs this player)
	MinecraftUUID     *string    `json:"minecraft_uuid" gorm:"uniqueIndex"`
	MinecraftUsername string     `json:"minecraft_username"`
	MinecraftOnline   bool       `json:"minecraft_online" gorm:"default:false"`
	MinecraftLastSeen *time.Time `json:"minecraft_last_seen,omitempty"`

	// Gacha state. StarterID is set at most once per user; the roll
	// handlers refuse a second roll; there is no DB constraint.
	StarterID      *int       `json:"starter_id"`
	StarterIsShiny bool       `json:"starter_is_shiny" gorm:"default:false"`
	RolledAt       *time.Time `json:"rolled_at,omitempty"`
	StarterGiven   bool       `json:"starter_given" gorm:"default:false"` // delivered in-game by the plugin
	StarterGivenAt *time.Time `json:"starter_given_at,omitempty"`

	// Progression attributes pushed by the Minecraft plugin; the level-cap
	// resolver reads these.
	Badges          int    `json:"badges" gorm:"default:0"`
	PlaytimeMinutes int    `json:"playtime_minutes" gorm:"default:0"`
	Level           int    `json:"level" gorm:"default:1"`
	PlayerGroups    string `json:"player_groups" gorm:"type:text"` // JSON array of group names

	CobbleDollarsBalance int64 `json:"cobble_dollars_balance" gorm:"default:0"`

	// Synced game data, stored as JSON text. Party is trimmed to 6 and
	// PC storage to 50 entries on sync to bound payload size.
	PokemonParty string `json:"pokemon_party,omitempty" gorm:"type:text"`
	PCStorage    string `json:"pc_storage,omitempty" gorm:"type:text;column:pc_storage"`

	// Moderation & roles
	Banned    bool       `json:"banned" gorm:"default:false"`
	BanReason string     `json:"ban_reason,omitempty"`
	BannedAt  *time.Time `json:"banned_at,omitempty"`
	IsAdmin   bool       `json:"is_admin" gorm:"default:false"`

	// Verification (Minecraft ↔ Discord linking)
	Verified             bool       `json:"verified" gorm:"default:false"`
	VerifiedViaBot       bool       `json:"verified_via_bot" gorm:"default:false"`
	VerifiedAt           *time.Time `json:"verified_at,omitempty"`
	VerificationCode     string     `json:"-" gorm:"index"`
	LastVerificationCode string     `json:"-"`

	SyncedAt  *time.Time `json:"synced_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// Groups decodes the PlayerGroups JSON column. A broken or empty column
// reads as no groups.
func (u *User) Groups() []string {
	if u.PlayerGroups == "" {
		return nil
	}
	var groups []string
	if err := json.Unmarshal([]byte(u.PlayerGroups), &groups); err != nil {
		return nil
	}
	return groups
}

// SetGroups encodes the group list into the PlayerGroups column.
func (u *User) SetGroups(groups []string) {
	data, _ := json.Marshal(groups)
	u.PlayerGroups = string(data)
}

// HasRolled reports whether this user already claimed a starter.
func (u *User) HasRolled() bool {
	return u.StarterID != nil
}
