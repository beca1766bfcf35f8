package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// 1. Game catalog first (no dependencies)
	gameSeeder := NewGameSeeder(s.db)
	if err := gameSeeder.SeedGames(); err != nil {
		log.Printf("Game seeding failed: %v", err)
		return err
	}

	// 2. Demo merchant with a campaign and QR codes (depends on games)
	demoSeeder := NewDemoSeeder(s.db)
	if err := demoSeeder.SeedDemoMerchant(); err != nil {
		log.Printf("Demo merchant seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedGamesOnly() error {
	gameSeeder := NewGameSeeder(s.db)
	return gameSeeder.SeedGames()
}

func (s *MainSeeder) SeedDemoOnly() error {
	demoSeeder := NewDemoSeeder(s.db)
	return demoSeeder.SeedDemoMerchant()
}
