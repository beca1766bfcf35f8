package dto

import "time"

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterMerchantRequest struct {
	Email        string `json:"email" validate:"required,email" example:"owner@cafe.example"`
	BusinessName string `json:"business_name" validate:"required,min=2,max=100" example:"Corner Cafe"`
	Password     string `json:"password" validate:"required,strong_password" example:"SecurePass123!"`
}

func (r RegisterMerchantRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"owner@cafe.example"`
	Password string `json:"password" validate:"required" example:"SecurePass123!"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email" example:"owner@cafe.example"`
	Code  string `json:"code" validate:"required,len=6,numeric" example:"123456"`
}

func (v VerifyEmailRequest) Validate() error {
	return GetValidator().Struct(v)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type RegisterMerchantResponse struct {
	UserID               string `json:"user_id" example:"usr_0199a3"`
	MerchantID           string `json:"merchant_id" example:"mrc_0199a3"`
	RequiresVerification bool   `json:"requires_verification" example:"true"`
	Message              string `json:"message" example:"Registration successful. Please check your email for verification."`
}

// SessionCredentials is the pair the legacy RPC client stores and signs with.
type SessionCredentials struct {
	UserID        string `json:"user_id" example:"usr_0199a3"`
	SessionSecret string `json:"session_secret" example:"b1946ac92492d234"`
}

type LoginResponse struct {
	AccessToken string             `json:"access_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresIn   int64              `json:"expires_in" example:"86400"`
	SessionID   string             `json:"session_id" example:"sess_0199a3"`
	Session     SessionCredentials `json:"session"`
	User        UserInfo           `json:"user"`
}

type TokenPair struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresIn   int64  `json:"expires_in" example:"86400"`
}

type UserInfo struct {
	ID            string     `json:"id" example:"usr_0199a3"`
	MerchantID    string     `json:"merchant_id" example:"mrc_0199a3"`
	Email         string     `json:"email" example:"owner@cafe.example"`
	BusinessName  string     `json:"business_name" example:"Corner Cafe"`
	Role          string     `json:"role" example:"merchant"`
	EmailVerified bool       `json:"email_verified" example:"true"`
	CreatedAt     time.Time  `json:"created_at" example:"2025-01-01T00:00:00Z"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty" example:"2025-01-15T10:30:00Z"`
}

type VerifySessionResponse struct {
	Valid bool     `json:"valid" example:"true"`
	User  UserInfo `json:"user"`
}

// ==================== AUDIT LOGGING DTOs ====================

type AuthAuditLog struct {
	ID        string    `json:"id" example:"log_0199a3"`
	UserID    string    `json:"user_id,omitempty" example:"usr_0199a3"`
	Action    string    `json:"action" example:"login"`
	IP        string    `json:"ip,omitempty" example:"192.168.1.1"`
	Location  string    `json:"location,omitempty" example:"Austin, Texas, United States"`
	UserAgent string    `json:"user_agent,omitempty" example:"Mozilla/5.0..."`
	Timestamp time.Time `json:"timestamp" example:"2025-01-15T10:30:00Z"`
	Success   bool      `json:"success" example:"true"`
	Details   string    `json:"details,omitempty" example:"Login successful"`
}

type AuditLogResponse struct {
	Logs  []AuthAuditLog `json:"logs"`
	Total int            `json:"total" example:"150"`
	Page  int            `json:"page" example:"1"`
	Limit int            `json:"limit" example:"20"`
}
