package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/scanplay-app/scanplay_api/game"
	"github.com/scanplay-app/scanplay_api/model"
	"gorm.io/gorm"
)

// GameSeeder handles seeding the built-in game catalog
type GameSeeder struct {
	db *gorm.DB
}

func NewGameSeeder(db *gorm.DB) *GameSeeder {
	return &GameSeeder{db: db}
}

func (s *GameSeeder) SeedGames() error {
	builtins := []model.Game{
		{Code: game.CodeSpinWheel, Name: "Spin & Win", Icon: "🎡", MaxPoints: game.SpinWheelMaxScore, IsActive: true},
		{Code: game.CodeDice, Name: "Dice Roll", Icon: "🎲", MaxPoints: game.DiceMaxTotal, IsActive: true},
		{Code: game.CodeMemory, Name: "Memory Match", Icon: "🧠", MaxPoints: game.MemoryMaxScore, IsActive: true},
		{Code: game.CodeQuickTap, Name: "Quick Tap", Icon: "⚡", MaxPoints: game.QuickTapMaxScore, IsActive: true},
	}

	for i := range builtins {
		var existing model.Game
		if err := s.db.Where("code = ?", builtins[i].Code).First(&existing).Error; err == nil {
			log.Printf("Game %s already exists, skipping", builtins[i].Code)
			continue
		}

		id, _ := uuid.NewV7()
		builtins[i].ID = id.String()
		builtins[i].CreatedAt = time.Now()
		builtins[i].UpdatedAt = time.Now()

		if err := s.db.Create(&builtins[i]).Error; err != nil {
			return err
		}
		log.Printf("Seeded game: %s (%s)", builtins[i].Name, builtins[i].Code)
	}

	return nil
}
