package model

import (
	"encoding/json"
	"time"
)

// Customer is a player record collected through the QR registration flow.
// Phone is the find-or-create key within a merchant.
type Customer struct {
	ID         string `json:"id" gorm:"primaryKey"`
	MerchantID string `json:"merchant_id" gorm:"index:idx_customer_merchant_phone,unique;not null"`
	Phone      string `json:"phone" gorm:"index:idx_customer_merchant_phone,unique;not null"`
	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email,omitempty"`
	Instagram  string `json:"instagram,omitempty"`

	TotalPoints int             `json:"total_points" gorm:"default:0;not null"`
	GamesPlayed json.RawMessage `json:"games_played" gorm:"type:jsonb;default:'[]'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
