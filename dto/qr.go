package dto

import "time"

// QRValidationResult is produced once per scanned code. The client never
// re-validates a code after the first successful read in a scan session.
type QRValidationResult struct {
	Valid      bool   `json:"valid" example:"true"`
	MerchantID string `json:"merchantId" example:"mrc_0199a3"`
	GameID     string `json:"gameId" example:"game_0199a3"`
	GameCode   string `json:"gameCode" example:"spin-win"`
	GameName   string `json:"gameName" example:"Spin & Win"`
	Icon       string `json:"icon" example:"🎡"`
	QRUsageID  string `json:"qrUsageId" example:"scan_0199a3"`
	CampaignID string `json:"campaignId" example:"cmp_0199a3"`
}

// RegistrationRequest is the player contact form. Phone arrives already
// composed from the selected dial code plus the locally typed number; name and
// phone are the only mandatory fields.
type RegistrationRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100" example:"Jane"`
	Phone     string `json:"phone" validate:"required,dial_phone" example:"+15551234567"`
	Email     string `json:"email,omitempty" validate:"omitempty,email" example:"jane@example.com"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,max=60" example:"@jane"`
}

func (r RegistrationRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ScanStateResponse mirrors the scan session the flow keeps in Redis.
type ScanStateResponse struct {
	ScanID     string              `json:"scan_id" example:"scn_0199a3"`
	State      string              `json:"state" example:"ready"`
	UniqueID   string              `json:"unique_id" example:"qr_abc123"`
	Validation *QRValidationResult `json:"validation,omitempty"`
	Error      string              `json:"error,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

type RedirectResponse struct {
	State       string `json:"state" example:"redirecting"`
	CustomerID  string `json:"customer_id" example:"cus_0199a3"`
	RedirectURL string `json:"redirect_url" example:"/play/mrc_0199a3/game/spin-wheel?player=cus_0199a3&qrCode=qr_abc123"`
}

type CreateQRBatchRequest struct {
	CampaignID string `json:"campaign_id" validate:"required" example:"cmp_0199a3"`
	Count      int    `json:"count" validate:"required,min=1,max=1000" example:"50"`
	MaxUses    int    `json:"max_uses" validate:"min=0" example:"1"`
}

func (r CreateQRBatchRequest) Validate() error {
	return GetValidator().Struct(r)
}

type QRBatchResponse struct {
	CampaignID string   `json:"campaign_id" example:"cmp_0199a3"`
	UniqueIDs  []string `json:"unique_ids"`
}

type CreateCampaignRequest struct {
	Name     string     `json:"name" validate:"required,min=2,max=120" example:"Summer Scans"`
	GameCode string     `json:"game_code" validate:"required" example:"spin-win"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

func (r CreateCampaignRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CampaignResponse struct {
	ID         string     `json:"id" example:"cmp_0199a3"`
	MerchantID string     `json:"merchant_id" example:"mrc_0199a3"`
	Name       string     `json:"name" example:"Summer Scans"`
	GameCode   string     `json:"game_code" example:"spin-win"`
	GameName   string     `json:"game_name" example:"Spin & Win"`
	IsActive   bool       `json:"is_active" example:"true"`
	ArtworkURL string     `json:"artwork_url,omitempty"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type MediaUploadResponse struct {
	AssetID  string `json:"asset_id" example:"ast_0199a3"`
	URL      string `json:"url" example:"https://cdn.example/campaigns/cmp_0199a3/artwork.png"`
	FileType string `json:"file_type" example:"artwork"`
	FileSize int64  `json:"file_size" example:"204800"`
}
