package dto

import "time"

// TrackGameRequest reports a finished playthrough. Points flow into the
// player's durable profile; GamesPlayed gains the game code once.
type TrackGameRequest struct {
	MerchantRef
	CustomerID string `json:"customerId" validate:"required" example:"cus_0199a3"`
	QRCode     string `json:"qrCode,omitempty" example:"qr_abc123"`
	GameCode   string `json:"gameCode" validate:"required" example:"spin-wheel"`
	Points     int    `json:"points" validate:"min=0" example:"30"`
	TimeSpent  int    `json:"timeSpent,omitempty" validate:"min=0" example:"45"`
}

func (t TrackGameRequest) Validate() error {
	if t.Resolve() == "" {
		return requiredFieldError("merchantId")
	}
	return GetValidator().Struct(t)
}

type TrackGameResponse struct {
	CustomerID  string   `json:"customer_id" example:"cus_0199a3"`
	Points      int      `json:"points" example:"30"`
	TotalPoints int      `json:"total_points" example:"150"`
	GamesPlayed []string `json:"games_played"`
}

type PlayGameRequest struct {
	MerchantRef
	CustomerID string `json:"customerId" validate:"required" example:"cus_0199a3"`
	QRCode     string `json:"qrCode,omitempty" example:"qr_abc123"`
	GameCode   string `json:"gameCode" validate:"required" example:"dice-roll"`
}

func (p PlayGameRequest) Validate() error {
	if p.Resolve() == "" {
		return requiredFieldError("merchantId")
	}
	return GetValidator().Struct(p)
}

type PlayGameResponse struct {
	GameCode    string                 `json:"game_code" example:"dice-roll"`
	Points      int                    `json:"points" example:"47"`
	Detail      map[string]interface{} `json:"detail,omitempty"`
	TotalPoints int                    `json:"total_points" example:"167"`
}

type GameInfo struct {
	ID        string `json:"id" example:"game_0199a3"`
	Code      string `json:"code" example:"spin-win"`
	Name      string `json:"name" example:"Spin & Win"`
	Icon      string `json:"icon" example:"🎡"`
	Route     string `json:"route" example:"spin-wheel"`
	MaxPoints int    `json:"max_points" example:"100"`
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank" example:"1"`
	CustomerID  string `json:"customer_id" example:"cus_0199a3"`
	Name        string `json:"name" example:"Jane"`
	TotalPoints int    `json:"total_points" example:"540"`
}

type LeaderboardResponse struct {
	MerchantID string             `json:"merchant_id" example:"mrc_0199a3"`
	Entries    []LeaderboardEntry `json:"entries"`
}

type MerchantStatsResponse struct {
	MerchantID      string    `json:"merchant_id" example:"mrc_0199a3"`
	TotalCustomers  int64     `json:"total_customers" example:"320"`
	TotalScans      int64     `json:"total_scans" example:"1240"`
	ScansToday      int64     `json:"scans_today" example:"17"`
	TotalPoints     int64     `json:"total_points" example:"15400"`
	ActiveCampaigns int64     `json:"active_campaigns" example:"3"`
	GeneratedAt     time.Time `json:"generated_at"`
}
