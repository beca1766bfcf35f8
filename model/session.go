package model

import "time"

// UserSession backs both the dashboard JWT and the legacy RPC envelope: the
// SessionSecret is the shared value the client digests into each request hash.
type UserSession struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index;not null"`
	SessionSecret string    `json:"-" gorm:"not null"`
	TokenHash     string    `json:"-"`
	IP            string    `json:"ip"`
	UserAgent     string    `json:"user_agent"`
	CreatedAt     time.Time `json:"created_at"`
	LastUsed      time.Time `json:"last_used"`
	ExpiresAt     time.Time `json:"expires_at" gorm:"index"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
}

type AuthAuditLog struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id,omitempty" gorm:"index"`
	Action    string    `json:"action" gorm:"not null"`
	IP        string    `json:"ip,omitempty"`
	Location  string    `json:"location,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Details   string    `json:"details,omitempty"`
}
