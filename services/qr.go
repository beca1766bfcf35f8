package services

import (
	"errors"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/model"
	"github.com/scanplay-app/scanplay_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// QRService validates scanned codes and mints printed batches. Validation is
// the consuming read: a successful call burns one use of the code and records
// a ScanEvent whose id becomes the qrUsageId the play session carries.
type QRService struct {
	appContext.DefaultService

	sqlSvc        *PostgresService
	geoSvc        *GeolocationService
	monitoringSvc *MonitoringService
}

const QR_SVC = "qr_svc"

func (svc QRService) Id() string {
	return QR_SVC
}

func (svc *QRService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *QRService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.geoSvc = svc.Service(GEOLOCATION_SVC).(*GeolocationService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// ValidateCode resolves a scanned unique id. Inactive, exhausted and
// out-of-window codes all fail with a message fit for the scanner's screen.
func (svc *QRService) ValidateCode(uniqueID, ip, userAgent string) (*dto.QRValidationResult, error) {
	code, err := svc.sqlSvc.GetQRCodeByUniqueID(uniqueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "QR code not found")
		}
		return nil, shared.NewInternalError(err, "Failed to validate QR code")
	}

	if !code.IsActive {
		return nil, shared.NewBadRequestError(nil, "QR code is no longer active")
	}

	campaign, err := svc.sqlSvc.GetCampaign(code.CampaignID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load campaign")
	}

	now := time.Now()
	if !campaign.IsActive {
		return nil, shared.NewBadRequestError(nil, "Campaign has ended")
	}
	if campaign.StartsAt != nil && now.Before(*campaign.StartsAt) {
		return nil, shared.NewBadRequestError(nil, "Campaign has not started yet")
	}
	if campaign.EndsAt != nil && now.After(*campaign.EndsAt) {
		return nil, shared.NewBadRequestError(nil, "Campaign has ended")
	}

	consumed, err := svc.sqlSvc.ConsumeQRCode(code.ID, code.MaxUses)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to validate QR code")
	}
	if !consumed {
		return nil, shared.NewBadRequestError(nil, "QR code already used")
	}

	event, err := svc.sqlSvc.CreateScanEvent(&model.ScanEvent{
		QRCodeID:   code.ID,
		MerchantID: code.MerchantID,
		CampaignID: code.CampaignID,
		IP:         ip,
		UserAgent:  userAgent,
	})
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to record scan")
	}

	go svc.attachLocation(event.ID, ip)
	svc.monitoringSvc.RecordQRScan(code.MerchantID)

	result := &dto.QRValidationResult{
		Valid:      true,
		MerchantID: code.MerchantID,
		CampaignID: code.CampaignID,
		QRUsageID:  event.ID,
	}

	gameID := code.GameID
	if gameID == "" {
		gameID = campaign.GameID
	}
	if gameID != "" {
		if gameEntry, err := svc.sqlSvc.GetGame(gameID); err == nil {
			result.GameID = gameEntry.ID
			result.GameCode = gameEntry.Code
			result.GameName = gameEntry.Name
			result.Icon = gameEntry.Icon
		} else {
			log.WithError(err).WithField("game_id", gameID).Warn("QR code references unknown game")
		}
	}

	return result, nil
}

func (svc *QRService) attachLocation(scanID, ip string) {
	location, err := svc.geoSvc.GetLocationByIP(ip)
	if err != nil || location == "" {
		return
	}

	if err := svc.sqlSvc.Db().Model(&model.ScanEvent{}).
		Where("id = ?", scanID).
		Update("location", location).Error; err != nil {
		log.WithError(err).WithField("scan_id", scanID).Warn("Failed to attach scan location")
	}
}

// CreateBatch mints printable codes for a campaign the caller owns.
func (svc *QRService) CreateBatch(merchantID string, req dto.CreateQRBatchRequest) (*dto.QRBatchResponse, error) {
	campaign, err := svc.sqlSvc.GetCampaign(req.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "Campaign not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load campaign")
	}
	if campaign.MerchantID != merchantID {
		return nil, shared.NewForbiddenError(nil, "Campaign belongs to another merchant")
	}

	codes := make([]model.QRCode, 0, req.Count)
	uniqueIDs := make([]string, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		id, _ := uuid.NewV7()
		uniqueID := fmt.Sprintf("qr_%s", id.String())
		uniqueIDs = append(uniqueIDs, uniqueID)
		codes = append(codes, model.QRCode{
			UniqueID:   uniqueID,
			MerchantID: merchantID,
			CampaignID: campaign.ID,
			GameID:     campaign.GameID,
			MaxUses:    req.MaxUses,
			IsActive:   true,
		})
	}

	if err := svc.sqlSvc.CreateQRCodes(codes); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create QR codes")
	}

	return &dto.QRBatchResponse{
		CampaignID: campaign.ID,
		UniqueIDs:  uniqueIDs,
	}, nil
}

func (svc *QRService) ListCampaignCodes(merchantID, campaignID string) ([]model.QRCode, error) {
	campaign, err := svc.sqlSvc.GetCampaign(campaignID)
	if err != nil {
		return nil, shared.NewNotFoundError(nil, "Campaign not found")
	}
	if campaign.MerchantID != merchantID {
		return nil, shared.NewForbiddenError(nil, "Campaign belongs to another merchant")
	}

	codes, err := svc.sqlSvc.GetCampaignQRCodes(campaignID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load QR codes")
	}
	return codes, nil
}

func (svc *QRService) Deactivate(merchantID, codeID string) error {
	if err := svc.sqlSvc.DeactivateQRCode(codeID, merchantID); err != nil {
		return shared.NewInternalError(err, "Failed to deactivate QR code")
	}
	return nil
}
