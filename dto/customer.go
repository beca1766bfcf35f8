package dto

import (
	"encoding/json"
	"time"
)

// MerchantRef tolerates the two field spellings the legacy backend emits.
// Resolve() collapses them at the boundary, preferring camelCase; nothing
// past the DTO layer ever sees both forms.
type MerchantRef struct {
	MerchantID      string `json:"merchantId,omitempty"`
	MerchantIDSnake string `json:"merchant_id,omitempty"`
}

func (m MerchantRef) Resolve() string {
	if m.MerchantID != "" {
		return m.MerchantID
	}
	return m.MerchantIDSnake
}

// FindCustomerRequest looks a player up by phone within a merchant. The
// optional identity fields are update hints applied to the record if found.
type FindCustomerRequest struct {
	MerchantRef
	Phone     string `json:"phone" validate:"required,dial_phone" example:"+15551234567"`
	Name      string `json:"name,omitempty" example:"Jane"`
	Email     string `json:"email,omitempty" validate:"omitempty,email" example:"jane@example.com"`
	Instagram string `json:"instagram,omitempty" example:"@jane"`
}

func (f FindCustomerRequest) Validate() error {
	if f.Resolve() == "" {
		return requiredFieldError("merchantId")
	}
	return GetValidator().Struct(f)
}

type UpsertCustomerRequest struct {
	MerchantRef
	Name      string `json:"name" validate:"required,min=1,max=100" example:"Jane"`
	Phone     string `json:"phone" validate:"required,dial_phone" example:"+15551234567"`
	Email     string `json:"email,omitempty" validate:"omitempty,email" example:"jane@example.com"`
	Instagram string `json:"instagram,omitempty" example:"@jane"`
}

func (u UpsertCustomerRequest) Validate() error {
	if u.Resolve() == "" {
		return requiredFieldError("merchantId")
	}
	return GetValidator().Struct(u)
}

type CustomerResponse struct {
	ID          string    `json:"id" example:"cus_0199a3"`
	MerchantID  string    `json:"merchant_id" example:"mrc_0199a3"`
	Name        string    `json:"name" example:"Jane"`
	Phone       string    `json:"phone" example:"+15551234567"`
	Email       string    `json:"email,omitempty" example:"jane@example.com"`
	Instagram   string    `json:"instagram,omitempty" example:"@jane"`
	TotalPoints int       `json:"total_points" example:"120"`
	GamesPlayed []string  `json:"games_played"`
	Found       bool      `json:"found" example:"true"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlayerData is the per-player profile the flow persists under player_<id>.
// UnmarshalPlayerData applies the read-side defaults the gallery relies on:
// missing totalPoints becomes 0, missing gamesPlayed becomes an empty list.
type PlayerData struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Instagram   string   `json:"instagram,omitempty"`
	MerchantID  string   `json:"merchantId"`
	Timestamp   int64    `json:"timestamp"`
	TotalPoints int      `json:"totalPoints"`
	GamesPlayed []string `json:"gamesPlayed"`
}

func UnmarshalPlayerData(raw []byte) (PlayerData, error) {
	var p PlayerData
	if err := json.Unmarshal(raw, &p); err != nil {
		return PlayerData{}, err
	}
	if p.GamesPlayed == nil {
		p.GamesPlayed = []string{}
	}
	return p, nil
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total" example:"42"`
	Page      int                `json:"page" example:"1"`
	Limit     int                `json:"limit" example:"20"`
}
