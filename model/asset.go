package model

import "time"

// MediaAsset tracks campaign artwork and game icons kept in object storage.
type MediaAsset struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	MerchantID string    `json:"merchant_id" gorm:"index"`
	CampaignID string    `json:"campaign_id" gorm:"index"`
	FileName   string    `json:"file_name" gorm:"not null"`
	FileType   string    `json:"file_type" gorm:"not null"` // artwork, icon
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	StorageKey string    `json:"storage_key" gorm:"not null"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
