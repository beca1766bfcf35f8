package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/model"
	"github.com/scanplay-app/scanplay_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxArtworkSize = 5 * 1024 * 1024 // 5MB

// CampaignService owns the merchant-facing campaign lifecycle: creation,
// listing, activation and artwork stored in object storage.
type CampaignService struct {
	appContext.DefaultService

	sqlSvc   *PostgresService
	minioSvc *MinIOService

	baseURL string
}

const CAMPAIGN_SVC = "campaign_svc"

func (svc CampaignService) Id() string {
	return CAMPAIGN_SVC
}

func (svc *CampaignService) Configure(ctx *appContext.Context) error {
	svc.baseURL = os.Getenv("MEDIA_BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:9000"
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *CampaignService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// ==================== CAMPAIGN LIFECYCLE ====================

func (svc *CampaignService) Create(merchantID string, req dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	gm, err := svc.sqlSvc.GetGameByCode(req.GameCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewBadRequestError(nil, "Unknown game code")
		}
		return nil, shared.NewInternalError(err, "Failed to resolve game")
	}

	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, shared.NewBadRequestError(nil, "Campaign end must come after its start")
	}

	id, _ := uuid.NewV7()
	campaign := &model.Campaign{
		ID:         id.String(),
		MerchantID: merchantID,
		Name:       req.Name,
		GameID:     gm.ID,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	created, err := svc.sqlSvc.CreateCampaign(campaign)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create campaign")
	}

	log.WithFields(log.Fields{"merchant_id": merchantID, "campaign_id": created.ID, "game": gm.Code}).Info("Campaign created")

	return svc.toResponse(created, gm), nil
}

func (svc *CampaignService) Get(merchantID, campaignID string) (*dto.CampaignResponse, error) {
	campaign, err := svc.ownedCampaign(merchantID, campaignID)
	if err != nil {
		return nil, err
	}
	return svc.toResponse(campaign, svc.gameOf(campaign)), nil
}

func (svc *CampaignService) List(merchantID string) ([]dto.CampaignResponse, error) {
	campaigns, err := svc.sqlSvc.GetMerchantCampaigns(merchantID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list campaigns")
	}

	// Campaigns in a merchant account share a handful of games, so resolve
	// each game id once.
	games := map[string]*model.Game{}
	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		c := &campaigns[i]
		gm, ok := games[c.GameID]
		if !ok {
			gm = svc.gameOf(c)
			games[c.GameID] = gm
		}
		out = append(out, *svc.toResponse(c, gm))
	}
	return out, nil
}

// SetActive flips a campaign on or off. Deactivating stops every QR code in
// the campaign from validating without touching the codes themselves.
func (svc *CampaignService) SetActive(merchantID, campaignID string, active bool) (*dto.CampaignResponse, error) {
	campaign, err := svc.ownedCampaign(merchantID, campaignID)
	if err != nil {
		return nil, err
	}

	campaign.IsActive = active
	campaign.UpdatedAt = time.Now()
	if err := svc.sqlSvc.UpdateCampaign(campaign); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update campaign")
	}

	return svc.toResponse(campaign, svc.gameOf(campaign)), nil
}

// ==================== ARTWORK UPLOAD ====================

func (svc *CampaignService) UploadArtwork(merchantID, campaignID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	campaign, err := svc.ownedCampaign(merchantID, campaignID)
	if err != nil {
		return nil, err
	}

	if !svc.isValidImageFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Artwork must be a jpg, png, webp or gif image")
	}
	if file.Size > maxArtworkSize {
		return nil, shared.NewBadRequestError(nil, "Artwork must be 5MB or smaller")
	}

	asset, err := svc.uploadFile(file, shared.FileTypeArtwork, campaign)
	if err != nil {
		return nil, err
	}

	campaign.ArtworkURL = asset.URL
	campaign.UpdatedAt = time.Now()
	if err := svc.sqlSvc.UpdateCampaign(campaign); err != nil {
		return nil, shared.NewInternalError(err, "Failed to attach artwork to campaign")
	}

	return &dto.MediaUploadResponse{
		AssetID:  asset.ID,
		URL:      asset.URL,
		FileType: asset.FileType,
		FileSize: asset.FileSize,
	}, nil
}

func (svc *CampaignService) uploadFile(file *multipart.FileHeader, fileType string, campaign *model.Campaign) (*model.MediaAsset, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("campaigns/%s/%s_%d%s", campaign.ID, fileType, time.Now().Unix(), ext)

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to open uploaded file")
	}
	defer src.Close()

	uploadInfo, err := svc.minioSvc.UploadFile(objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload file to storage")
	}

	fileURL, err := svc.minioSvc.GetFileURL(objectName, 24*time.Hour)
	if err != nil {
		log.WithError(err).Warn("Failed to generate presigned URL, falling back to direct path")
		fileURL = fmt.Sprintf("%s/%s/%s", svc.baseURL, svc.minioSvc.GetBucketName(), objectName)
	}

	id, _ := uuid.NewV7()
	asset := &model.MediaAsset{
		ID:         id.String(),
		MerchantID: campaign.MerchantID,
		CampaignID: campaign.ID,
		FileName:   file.Filename,
		FileType:   fileType,
		FileSize:   file.Size,
		MimeType:   file.Header.Get("Content-Type"),
		StorageKey: objectName,
		URL:        fileURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := svc.sqlSvc.CreateMediaAsset(asset); err != nil {
		// Roll the object back so storage does not accumulate orphans.
		svc.minioSvc.DeleteFile(objectName)
		return nil, shared.NewInternalError(err, "Failed to record uploaded file")
	}

	log.WithFields(log.Fields{"campaign_id": campaign.ID, "key": uploadInfo.Key}).Info("Uploaded campaign media")
	return asset, nil
}

func (svc *CampaignService) DeleteAsset(merchantID, assetID string) error {
	asset, err := svc.sqlSvc.GetMediaAsset(assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(nil, "Asset not found")
		}
		return shared.NewInternalError(err, "Failed to load asset")
	}
	if asset.MerchantID != merchantID {
		return shared.NewForbiddenError(nil, "Asset belongs to another merchant")
	}

	if err := svc.minioSvc.DeleteFile(asset.StorageKey); err != nil {
		log.WithError(err).WithField("key", asset.StorageKey).Warn("Failed to delete file from storage")
	}

	if err := svc.sqlSvc.DeleteMediaAsset(assetID); err != nil {
		return shared.NewInternalError(err, "Failed to delete asset")
	}
	return nil
}

// ==================== HELPERS ====================

func (svc *CampaignService) ownedCampaign(merchantID, campaignID string) (*model.Campaign, error) {
	campaign, err := svc.sqlSvc.GetCampaign(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "Campaign not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load campaign")
	}
	if campaign.MerchantID != merchantID {
		return nil, shared.NewForbiddenError(nil, "Campaign belongs to another merchant")
	}
	return campaign, nil
}

func (svc *CampaignService) gameOf(campaign *model.Campaign) *model.Game {
	if campaign.GameID == "" {
		return nil
	}
	gm, err := svc.sqlSvc.GetGame(campaign.GameID)
	if err != nil {
		log.WithError(err).WithField("game_id", campaign.GameID).Warn("Failed to resolve campaign game")
		return nil
	}
	return gm
}

func (svc *CampaignService) toResponse(campaign *model.Campaign, gm *model.Game) *dto.CampaignResponse {
	resp := &dto.CampaignResponse{
		ID:         campaign.ID,
		MerchantID: campaign.MerchantID,
		Name:       campaign.Name,
		IsActive:   campaign.IsActive,
		ArtworkURL: campaign.ArtworkURL,
		StartsAt:   campaign.StartsAt,
		EndsAt:     campaign.EndsAt,
		CreatedAt:  campaign.CreatedAt,
	}
	if gm != nil {
		resp.GameCode = gm.Code
		resp.GameName = gm.Name
	}
	return resp
}

func (svc *CampaignService) isValidImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}
