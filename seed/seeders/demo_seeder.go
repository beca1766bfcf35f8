package seeders

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/scanplay-app/scanplay_api/game"
	"github.com/scanplay-app/scanplay_api/model"
	"github.com/scanplay-app/scanplay_api/shared"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoSeeder creates a verified demo merchant with one active campaign and a
// small QR batch, enough to exercise the full scan flow locally.
type DemoSeeder struct {
	db *gorm.DB
}

func NewDemoSeeder(db *gorm.DB) *DemoSeeder {
	return &DemoSeeder{db: db}
}

const (
	demoEmail    = "demo@scanplay.app"
	demoPassword = "Demo1234!"
	demoQRCount  = 5
)

func (s *DemoSeeder) SeedDemoMerchant() error {
	var existing model.User
	if err := s.db.Where("email = ?", demoEmail).First(&existing).Error; err == nil {
		log.Println("Demo merchant already exists, skipping demo seeding")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	userID := uuid.New().String()
	merchantID, _ := uuid.NewV7()

	user := model.User{
		ID:            userID,
		MerchantID:    merchantID.String(),
		Email:         demoEmail,
		BusinessName:  "ScanPlay Demo Cafe",
		Password:      string(hashedPassword),
		Role:          shared.RoleMerchant,
		IsActive:      true,
		EmailVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("Created demo merchant: %s (password: %s)", user.Email, demoPassword)

	var spinWheel model.Game
	if err := s.db.Where("code = ?", game.CodeSpinWheel).First(&spinWheel).Error; err != nil {
		return fmt.Errorf("game catalog must be seeded first: %w", err)
	}

	campaignID, _ := uuid.NewV7()
	campaign := model.Campaign{
		ID:         campaignID.String(),
		MerchantID: user.MerchantID,
		Name:       "Demo Launch Campaign",
		GameID:     spinWheel.ID,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.db.Create(&campaign).Error; err != nil {
		return err
	}
	log.Printf("Created demo campaign: %s", campaign.Name)

	codes := make([]model.QRCode, 0, demoQRCount)
	for i := 0; i < demoQRCount; i++ {
		codeID, _ := uuid.NewV7()
		uniqueID, _ := uuid.NewV7()
		codes = append(codes, model.QRCode{
			ID:         codeID.String(),
			UniqueID:   fmt.Sprintf("qr_%s", uniqueID.String()),
			MerchantID: user.MerchantID,
			CampaignID: campaign.ID,
			GameID:     spinWheel.ID,
			MaxUses:    0,
			IsActive:   true,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		})
	}

	if err := s.db.Create(&codes).Error; err != nil {
		return err
	}

	for _, code := range codes {
		log.Printf("Seeded QR code: %s", code.UniqueID)
	}

	return nil
}
