package models

import (
	"encoding/json"
	"time"
)

// Pokeball types. Standard balls are always stocked; specials rotate.
const (
	BallTypeStandard = "standard"
	BallTypeSpecial  = "special"
)

// Pokeball is one catalog entry of the rotating shop.
type Pokeball struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	CatchRate   float64 `json:"catch_rate"`
	BasePrice   int64   `json:"base_price"`
	Description string  `json:"description"`
	Sprite      string  `json:"sprite"`
	MinStock    int     `json:"min_stock"`
	MaxStock    int     `json:"max_stock"`
}

// BallStock is the live stock entry for one ball in the current rotation.
type BallStock struct {
	BallID      string `json:"ball_id"`
	Stock       int    `json:"stock"`
	Price       int64  `json:"price"`
	MaxStock    int    `json:"max_stock"`
	LastRefresh int64  `json:"last_refresh"` // unix millis
}

// ShopStockID is the fixed primary key of the singleton stock row.
const ShopStockID = "current"

// ShopStock is the singleton row holding the current shop rotation.
type ShopStock struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	StocksJSON  string    `json:"-" gorm:"type:text;column:stocks_json"`
	LastRefresh int64     `json:"last_refresh"` // unix millis
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (s *ShopStock) Stocks() (map[string]BallStock, error) {
	if s.StocksJSON == "" {
		return map[string]BallStock{}, nil
	}
	var stocks map[string]BallStock
	err := json.Unmarshal([]byte(s.StocksJSON), &stocks)
	return stocks, err
}

func (s *ShopStock) SetStocks(stocks map[string]BallStock) error {
	data, err := json.Marshal(stocks)
	if err != nil {
		return err
	}
	s.StocksJSON = string(data)
	return nil
}

// PendingPurchase is one unclaimed purchase awaiting /claimshop in game.
type PendingPurchase struct {
	ID          string     `json:"id"`
	BallID      string     `json:"ball_id"`
	Quantity    int        `json:"quantity"`
	PurchasedAt time.Time  `json:"purchased_at"`
	Claimed     bool       `json:"claimed"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
}

// ShopPurchase holds the pending purchase list for one player.
type ShopPurchase struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	MinecraftUUID string    `json:"minecraft_uuid" gorm:"uniqueIndex;not null"`
	Username      string    `json:"username"`
	PendingJSON   string    `json:"-" gorm:"type:text;column:pending_json"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (p *ShopPurchase) Pending() ([]PendingPurchase, error) {
	if p.PendingJSON == "" {
		return nil, nil
	}
	var pending []PendingPurchase
	err := json.Unmarshal([]byte(p.PendingJSON), &pending)
	return pending, err
}

func (p *ShopPurchase) SetPending(pending []PendingPurchase) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	p.PendingJSON = string(data)
	return nil
}
