package services

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"cobblemon-community-api/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopService sells Pokéballs for CobbleDollars. Stock is a singleton row
// regenerated hourly; purchases queue up as pending entries until the
// player claims them in game.
type ShopService struct {
	DB  *gorm.DB
	rng *rand.Rand
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{
		DB:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

const (
	stockRotationPeriod = time.Hour
	specialSlots        = 2
	masterBallChance    = 0.05
)

// GetStock serves the current rotation, regenerating it lazily when stale.
func (s *ShopService) GetStock(c *fiber.Ctx) error {
	stock, err := s.currentStock()
	if err != nil {
		log.Printf("[SHOP] stock load failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Error cargando la tienda"})
	}
	stocks, err := stock.Stocks()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error cargando la tienda"})
	}

	items := make([]fiber.Map, 0, len(stocks))
	for ballID, entry := range stocks {
		ball := models.FindPokeball(ballID)
		if ball == nil {
			continue
		}
		items = append(items, fiber.Map{
			"ball":        ball,
			"stock":       entry.Stock,
			"price":       entry.Price,
			"maxStock":    entry.MaxStock,
			"lastRefresh": entry.LastRefresh,
		})
	}
	return c.JSON(fiber.Map{
		"items":       items,
		"lastRefresh": stock.LastRefresh,
		"nextRefresh": stock.LastRefresh + stockRotationPeriod.Milliseconds(),
	})
}

// Purchase checks stock and funds, then decrements both and queues the
// pending delivery.
func (s *ShopService) Purchase(c *fiber.Ctx) error {
	type Req struct {
		UUID     string `json:"uuid"`
		BallID   string `json:"ballId"`
		Quantity int    `json:"quantity"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.UUID == "" || req.BallID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "uuid and ballId required"})
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	ball := models.FindPokeball(req.BallID)
	if ball == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Pokébola no encontrada"})
	}

	var user models.User
	if err := s.DB.First(&user, "minecraft_uuid = ?", req.UUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Jugador no encontrado"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Error en la compra"})
	}

	stock, err := s.currentStock()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error en la compra"})
	}
	stocks, err := stock.Stocks()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error en la compra"})
	}
	entry, ok := stocks[req.BallID]
	if !ok || entry.Stock < req.Quantity {
		return c.Status(400).JSON(fiber.Map{
			"error":     "Stock insuficiente",
			"available": entry.Stock,
			"requested": req.Quantity,
		})
	}

	total := entry.Price * int64(req.Quantity)
	if user.CobbleDollarsBalance < total {
		return c.Status(400).JSON(fiber.Map{
			"error":   "CobbleDollars insuficientes",
			"balance": user.CobbleDollarsBalance,
			"needed":  total,
		})
	}

	entry.Stock -= req.Quantity
	entry.Price = models.PriceWithStock(ball.BasePrice, entry.Stock, entry.MaxStock)
	stocks[req.BallID] = entry
	if err := stock.SetStocks(stocks); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error en la compra"})
	}

	pending := models.PendingPurchase{
		ID:          uuid.NewString(),
		BallID:      req.BallID,
		Quantity:    req.Quantity,
		PurchasedAt: time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ShopStock{}).
			Where("id = ?", models.ShopStockID).
			Update("stocks_json", stock.StocksJSON).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).
			Update("cobble_dollars_balance", user.CobbleDollarsBalance-total).Error; err != nil {
			return err
		}

		var purchase models.ShopPurchase
		err := tx.First(&purchase, "minecraft_uuid = ?", req.UUID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			purchase = models.ShopPurchase{
				ID:            uuid.NewString(),
				MinecraftUUID: req.UUID,
				Username:      user.MinecraftUsername,
			}
			if err := purchase.SetPending([]models.PendingPurchase{pending}); err != nil {
				return err
			}
			return tx.Create(&purchase).Error
		}
		if err != nil {
			return err
		}
		list, err := purchase.Pending()
		if err != nil {
			list = nil
		}
		list = append(list, pending)
		if err := purchase.SetPending(list); err != nil {
			return err
		}
		return tx.Model(&purchase).Update("pending_json", purchase.PendingJSON).Error
	})
	if err != nil {
		log.Printf("[SHOP] purchase failed for %s: %v", req.UUID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Error en la compra"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"purchase":   pending,
		"totalPrice": total,
		"newBalance": user.CobbleDollarsBalance - total,
	})
}

// Claim marks a pending purchase as delivered in game. The plugin sends the
// purchase id; older plugin builds send purchasedAt instead.
func (s *ShopService) Claim(c *fiber.Ctx) error {
	type Req struct {
		UUID        string     `json:"uuid"`
		PurchaseID  string     `json:"purchaseId"`
		PurchasedAt *time.Time `json:"purchasedAt"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.UUID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "uuid required"})
	}
	if req.PurchaseID == "" && req.PurchasedAt == nil {
		return c.Status(400).JSON(fiber.Map{"error": "purchaseId or purchasedAt required"})
	}

	var purchase models.ShopPurchase
	if err := s.DB.First(&purchase, "minecraft_uuid = ?", req.UUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Sin compras pendientes"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Error al reclamar"})
	}
	list, err := purchase.Pending()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al reclamar"})
	}

	now := time.Now()
	claimed := false
	for i := range list {
		if list[i].Claimed {
			continue
		}
		match := list[i].ID == req.PurchaseID
		if !match && req.PurchasedAt != nil {
			match = list[i].PurchasedAt.Equal(*req.PurchasedAt)
		}
		if match {
			list[i].Claimed = true
			list[i].ClaimedAt = &now
			claimed = true
			break
		}
	}
	if !claimed {
		return c.Status(404).JSON(fiber.Map{"error": "Compra no encontrada"})
	}

	if err := purchase.SetPending(list); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al reclamar"})
	}
	if err := s.DB.Model(&purchase).Update("pending_json", purchase.PendingJSON).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error al reclamar"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetBalance returns a player's CobbleDollars and their pending purchases.
func (s *ShopService) GetBalance(c *fiber.Ctx) error {
	mcUUID := c.Query("uuid")
	if mcUUID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "uuid required"})
	}
	var user models.User
	if err := s.DB.First(&user, "minecraft_uuid = ?", mcUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Jugador no encontrado"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	pending := []models.PendingPurchase{}
	var purchase models.ShopPurchase
	if err := s.DB.First(&purchase, "minecraft_uuid = ?", mcUUID).Error; err == nil {
		if list, err := purchase.Pending(); err == nil {
			for _, p := range list {
				if !p.Claimed {
					pending = append(pending, p)
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"balance": user.CobbleDollarsBalance,
		"pending": pending,
	})
}

// RotateStock regenerates the rotation unconditionally. The scheduler calls
// this hourly; GetStock calls it lazily when the row is stale.
func (s *ShopService) RotateStock() {
	if _, err := s.regenerateStock(); err != nil {
		log.Printf("[SCHEDULER] shop rotation failed: %v", err)
		return
	}
	log.Printf("[SCHEDULER] shop stock rotated")
}

// currentStock loads the singleton row, regenerating when missing or older
// than the rotation period.
func (s *ShopService) currentStock() (*models.ShopStock, error) {
	var stock models.ShopStock
	err := s.DB.First(&stock, "id = ?", models.ShopStockID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.regenerateStock()
	}
	if err != nil {
		return nil, err
	}
	age := time.Since(time.UnixMilli(stock.LastRefresh))
	if age >= stockRotationPeriod {
		return s.regenerateStock()
	}
	return &stock, nil
}

// regenerateStock builds a fresh rotation: every standard ball, two random
// specials, and rarely the Master Ball.
func (s *ShopService) regenerateStock() (*models.ShopStock, error) {
	now := time.Now().UnixMilli()
	stocks := make(map[string]models.BallStock)

	var specials []models.Pokeball
	for _, ball := range models.Pokeballs {
		if ball.ID == "master_ball" {
			continue
		}
		switch ball.Type {
		case models.BallTypeStandard:
			qty := models.RandomStock(ball, s.rng)
			stocks[ball.ID] = models.BallStock{
				BallID:      ball.ID,
				Stock:       qty,
				Price:       models.PriceWithStock(ball.BasePrice, qty, ball.MaxStock),
				MaxStock:    ball.MaxStock,
				LastRefresh: now,
			}
		case models.BallTypeSpecial:
			specials = append(specials, ball)
		}
	}

	s.rng.Shuffle(len(specials), func(i, j int) { specials[i], specials[j] = specials[j], specials[i] })
	for i := 0; i < specialSlots && i < len(specials); i++ {
		ball := specials[i]
		qty := models.RandomStock(ball, s.rng)
		stocks[ball.ID] = models.BallStock{
			BallID:      ball.ID,
			Stock:       qty,
			Price:       models.PriceWithStock(ball.BasePrice, qty, ball.MaxStock),
			MaxStock:    ball.MaxStock,
			LastRefresh: now,
		}
	}

	if s.rng.Float64() < masterBallChance {
		if master := models.FindPokeball("master_ball"); master != nil {
			stocks[master.ID] = models.BallStock{
				BallID:      master.ID,
				Stock:       1,
				Price:       master.BasePrice,
				MaxStock:    master.MaxStock,
				LastRefresh: now,
			}
		}
	}

	stock := models.ShopStock{ID: models.ShopStockID, LastRefresh: now}
	if err := stock.SetStocks(stocks); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ShopStock{}).
			Where("id = ?", models.ShopStockID).
			Updates(map[string]interface{}{
				"stocks_json":  stock.StocksJSON,
				"last_refresh": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return tx.Create(&stock).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}
