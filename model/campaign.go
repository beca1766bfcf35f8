package model

import "time"

type Campaign struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	MerchantID string     `json:"merchant_id" gorm:"index;not null"`
	Name       string     `json:"name" gorm:"not null"`
	GameID     string     `json:"game_id" gorm:"index"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	ArtworkURL string     `json:"artwork_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Game is a catalog entry for a mini-game merchants can attach to campaigns.
// Code is the backend identifier; the frontend route is derived through the
// mapping table in the game package.
type Game struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Icon      string    `json:"icon"`
	MaxPoints int       `json:"max_points" gorm:"default:0"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QRCode is the single-use token embedded in a printed code. UniqueID is what
// the scanner lands with; MaxUses of 0 means unlimited within the campaign
// window.
type QRCode struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	UniqueID   string     `json:"unique_id" gorm:"uniqueIndex;not null"`
	MerchantID string     `json:"merchant_id" gorm:"index;not null"`
	CampaignID string     `json:"campaign_id" gorm:"index;not null"`
	GameID     string     `json:"game_id"`
	MaxUses    int        `json:"max_uses" gorm:"default:0"`
	UseCount   int        `json:"use_count" gorm:"default:0"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ScanEvent records one successful validation of a QR code. Its ID is the
// qrUsageId handed back to the scanning client.
type ScanEvent struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	QRCodeID   string    `json:"qr_code_id" gorm:"index;not null"`
	MerchantID string    `json:"merchant_id" gorm:"index;not null"`
	CampaignID string    `json:"campaign_id" gorm:"index"`
	CustomerID string    `json:"customer_id,omitempty" gorm:"index"`
	IP         string    `json:"ip,omitempty"`
	Location   string    `json:"location,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type GameCompletion struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	MerchantID string    `json:"merchant_id" gorm:"index;not null"`
	CustomerID string    `json:"customer_id" gorm:"index;not null"`
	QRCodeID   string    `json:"qr_code_id" gorm:"index"`
	GameCode   string    `json:"game_code" gorm:"not null"`
	Points     int       `json:"points" gorm:"not null"`
	TimeSpent  int       `json:"time_spent"` // seconds
	CreatedAt  time.Time `json:"created_at"`
}
