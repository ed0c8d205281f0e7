package services

import (
	"errors"
	"log"
	"path/filepath"
	"strings"

	"cobblemon-community-api/models"
	"cobblemon-community-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ModService manages the downloadable modpack, backed by R2 object storage.
type ModService struct {
	DB *gorm.DB
}

func NewModService(db *gorm.DB) *ModService {
	return &ModService{DB: db}
}

// GetAllMods is the public portal listing: required mods first.
func (s *ModService) GetAllMods(c *fiber.Ctx) error {
	var mods []models.Mod
	if err := s.DB.Order("required DESC, name ASC").Find(&mods).Error; err != nil {
		log.Printf("[MODS] list failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch mods"})
	}
	return c.JSON(fiber.Map{"mods": mods})
}

// UploadMod accepts a multipart .zip/.jar, validates the archive, hashes it
// and stores it in R2 under a fresh key.
func (s *ModService) UploadMod(c *fiber.Ctx) error {
	name := c.FormValue("name")
	version := c.FormValue("version")
	description := c.FormValue("description")
	required := strings.ToLower(c.FormValue("required")) == "true"

	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	file, err := c.FormFile("file")
	if err != nil || file.Size == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "mod file is required"})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".zip" && ext != ".jar" {
		return c.Status(400).JSON(fiber.Map{"error": "only .zip and .jar files are accepted"})
	}
	if err := utils.ValidateModArchive(file); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid archive", "details": err.Error()})
	}
	digest, err := utils.FileSHA256(file)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to hash file"})
	}

	key := "mods/" + uuid.NewString() + ext
	url, err := utils.UploadFileToR2(file, key)
	if err != nil {
		log.Printf("[MODS] upload to R2 failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to upload mod"})
	}

	mod := models.Mod{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug.Make(name),
		Version:     version,
		Description: description,
		Required:    required,
		FileKey:     key,
		DownloadURL: url,
		SizeBytes:   file.Size,
		SHA256:      digest,
		UploadedBy:  adminIdentity(c),
	}
	if err := s.DB.Create(&mod).Error; err != nil {
		log.Printf("[MODS] DB insert failed: %v", err)
		// best effort: don't leave an orphan object behind
		if delErr := utils.DeleteFileFromR2(key); delErr != nil {
			log.Printf("[MODS] orphan cleanup failed for %s: %v", key, delErr)
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to save mod"})
	}
	return c.Status(201).JSON(mod)
}

// DeleteMod removes the record and its stored file.
func (s *ModService) DeleteMod(c *fiber.Ctx) error {
	id := c.Params("id")
	var mod models.Mod
	if err := s.DB.First(&mod, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "mod not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if err := s.DB.Delete(&mod).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "delete failed"})
	}
	if mod.FileKey != "" {
		if err := utils.DeleteFileFromR2(mod.FileKey); err != nil {
			log.Printf("[MODS] R2 delete failed for %s: %v", mod.FileKey, err)
		}
	}
	return c.JSON(fiber.Map{"success": true})
}
