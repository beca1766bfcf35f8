package model

import "time"

// User is a merchant dashboard account. The merchant tenant itself is keyed by
// MerchantID; staff accounts of one tenant share it.
type User struct {
	ID            string `json:"id" gorm:"primaryKey"`
	MerchantID    string `json:"merchant_id" gorm:"index;not null"`
	Email         string `json:"email" gorm:"unique;not null"`
	BusinessName  string `json:"business_name"`
	Password      string `json:"-"`
	Role          string `json:"role" gorm:"default:merchant"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
	EmailVerified bool   `json:"email_verified" gorm:"default:false"`

	VerificationCode       string     `json:"-"`
	VerificationCodeExpiry *time.Time `json:"-"`
	FailedAttempts         int        `json:"-" gorm:"default:0"`
	LockedUntil            *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	LastLoginIP string     `json:"last_login_ip,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" gorm:"index"`
}
