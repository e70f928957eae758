package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
)

// Seeds the tag and ingredient catalogs from JSON files. Re-running is
// safe: rows that already exist are skipped.

type tagSeed struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type ingredientSeed struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func main() {
	dataDir := flag.String("dir", "data", "directory containing seed JSON files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to open gorm connection: %v", err)
	}

	if err := seedTags(db, *dataDir+"/tags.json"); err != nil {
		log.Fatalf("Failed to seed tags: %v", err)
	}
	if err := seedIngredients(db, *dataDir+"/ingredients.json"); err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}

	log.Println("Seeding complete")
}

func seedTags(db *gorm.DB, path string) error {
	var seeds []tagSeed
	if err := loadJSON(path, &seeds); err != nil {
		return err
	}

	for _, seed := range seeds {
		tag := models.Tag{Name: seed.Name, Color: seed.Color, Slug: seed.Slug}
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error
		if err != nil {
			return fmt.Errorf("tag %q: %w", seed.Name, err)
		}
	}

	log.Printf("Seeded %d tags", len(seeds))
	return nil
}

func seedIngredients(db *gorm.DB, path string) error {
	var seeds []ingredientSeed
	if err := loadJSON(path, &seeds); err != nil {
		return err
	}

	// Ingredient names are not unique, so skip rows whose exact name+unit
	// pair already exists instead of relying on a conflict target.
	inserted := 0
	for _, seed := range seeds {
		var count int64
		err := db.Model(&models.Ingredient{}).
			Where("name = ? AND measurement_unit = ?", seed.Name, seed.MeasurementUnit).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("ingredient %q: %w", seed.Name, err)
		}
		if count > 0 {
			continue
		}

		ing := models.Ingredient{Name: seed.Name, MeasurementUnit: seed.MeasurementUnit}
		if err := db.Create(&ing).Error; err != nil {
			return fmt.Errorf("ingredient %q: %w", seed.Name, err)
		}
		inserted++
	}

	log.Printf("Seeded %d ingredients (%d already present)", inserted, len(seeds)-inserted)
	return nil
}

func loadJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
