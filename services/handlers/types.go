package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterMerchantRequest) (*dto.RegisterMerchantResponse, error)
	VerifyEmail(req dto.VerifyEmailRequest) error
	ResendVerificationCode(email string) error
	Login(req dto.LoginRequest, clientIP, userAgent string) (*dto.LoginResponse, error)
	Logout(userID, sessionID string) error
	VerifySession(userID string) (*dto.VerifySessionResponse, error)
	GetAuditLogs(userID string, page, limit int) (*dto.AuditLogResponse, error)
	RequiredAuth() fiber.Handler
}

type ScanFlowServiceInterface interface {
	StartScan(uniqueID, ip, userAgent string) (*dto.ScanStateResponse, error)
	GetScan(scanID string) (*dto.ScanStateResponse, error)
	SubmitRegistration(scanID string, req dto.RegistrationRequest) (*dto.RedirectResponse, error)
}

type QRServiceInterface interface {
	ValidateCode(uniqueID, ip, userAgent string) (*dto.QRValidationResult, error)
	CreateBatch(merchantID string, req dto.CreateQRBatchRequest) (*dto.QRBatchResponse, error)
	ListCampaignCodes(merchantID, campaignID string) ([]model.QRCode, error)
	Deactivate(merchantID, codeID string) error
}

type CustomerServiceInterface interface {
	FindByPhone(req dto.FindCustomerRequest) (*dto.CustomerResponse, error)
	Upsert(req dto.UpsertCustomerRequest) (*dto.CustomerResponse, error)
	List(merchantID string, page, limit int) (*dto.CustomerListResponse, error)
	Leaderboard(merchantID string, limit int) (*dto.LeaderboardResponse, error)
	PlayerProfile(customerID string) (*dto.PlayerData, error)
}

type GameServiceInterface interface {
	ListGames() ([]dto.GameInfo, error)
	Play(req dto.PlayGameRequest) (*dto.PlayGameResponse, error)
	Track(req dto.TrackGameRequest) (*dto.TrackGameResponse, error)
	MerchantStats(merchantID string) (*dto.MerchantStatsResponse, error)
}

type CampaignServiceInterface interface {
	Create(merchantID string, req dto.CreateCampaignRequest) (*dto.CampaignResponse, error)
	Get(merchantID, campaignID string) (*dto.CampaignResponse, error)
	List(merchantID string) ([]dto.CampaignResponse, error)
	SetActive(merchantID, campaignID string, active bool) (*dto.CampaignResponse, error)
	UploadArtwork(merchantID, campaignID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	DeleteAsset(merchantID, assetID string) error
}

type RPCServiceInterface interface {
	Handle(envelope dto.RPCEnvelope) (*dto.RPCResponse, error)
}
