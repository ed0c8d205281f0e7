package models

import "time"

// Mod is one downloadable modpack entry served from R2-backed storage.
type Mod struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex"`
	Version     string    `json:"version"`
	Description string    `json:"description"`
	Required    bool      `json:"required" gorm:"default:false"` // needed to join the server
	FileKey     string    `json:"-"`                             // R2 object key
	DownloadURL string    `json:"download_url"`
	SizeBytes   int64     `json:"size_bytes"`
	SHA256      string    `json:"sha256"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ServerStatusID is the fixed primary key of the singleton status row.
const ServerStatusID = "current"

// ServerStatus is the cached Minecraft server status maintained by the
// background poller; the public endpoint serves this row.
type ServerStatus struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Online      bool      `json:"online" gorm:"default:false"`
	PlayerCount int       `json:"player_count" gorm:"default:0"`
	MaxPlayers  int       `json:"max_players" gorm:"default:0"`
	MOTD        string    `json:"motd"`
	Version     string    `json:"version"`
	CheckedAt   time.Time `json:"checked_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
