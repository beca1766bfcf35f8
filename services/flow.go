package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/game"
	"github.com/scanplay-app/scanplay_api/shared"
	log "github.com/sirupsen/logrus"
)

// ScanFlowService drives a scan session from landing to redirect:
// validating -> ready -> submitting -> redirecting, with error as the only
// other terminal state. Sessions live in Redis under scan:<id> and expire on
// their own; an abandoned scan needs no cleanup.
type ScanFlowService struct {
	appContext.DefaultService

	qrSvc         *QRService
	customerSvc   *CustomerService
	redisSvc      *RedisService
	monitoringSvc *MonitoringService
}

const SCAN_FLOW_SVC = "scan_flow_svc"

const scanSessionTTL = 15 * time.Minute

type scanSession struct {
	ScanID     string                  `json:"scan_id"`
	State      string                  `json:"state"`
	UniqueID   string                  `json:"unique_id"`
	Validation *dto.QRValidationResult `json:"validation,omitempty"`
	Error      string                  `json:"error,omitempty"`
	CustomerID string                  `json:"customer_id,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

func (svc ScanFlowService) Id() string {
	return SCAN_FLOW_SVC
}

func (svc *ScanFlowService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ScanFlowService) Start() error {
	svc.qrSvc = svc.Service(QR_SVC).(*QRService)
	svc.customerSvc = svc.Service(CUSTOMER_SVC).(*CustomerService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// StartScan validates the code exactly once and parks the outcome in the
// session. The scanner polls or reads back the session; it never re-validates.
func (svc *ScanFlowService) StartScan(uniqueID, ip, userAgent string) (*dto.ScanStateResponse, error) {
	id, _ := uuid.NewV7()
	session := &scanSession{
		ScanID:    fmt.Sprintf("scn_%s", id.String()),
		State:     shared.ScanStateValidating,
		UniqueID:  uniqueID,
		CreatedAt: time.Now(),
	}

	validation, err := svc.qrSvc.ValidateCode(uniqueID, ip, userAgent)
	if err != nil {
		session.State = shared.ScanStateError
		if appErr, ok := shared.GetAppError(err); ok {
			session.Error = appErr.Message
		} else {
			session.Error = "Validation failed"
		}
		svc.monitoringSvc.RecordScanFlowError("validation")
	} else {
		session.State = shared.ScanStateReady
		session.Validation = validation
	}

	if err := svc.saveSession(session); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create scan session")
	}

	return svc.toResponse(session), nil
}

func (svc *ScanFlowService) GetScan(scanID string) (*dto.ScanStateResponse, error) {
	session, err := svc.loadSession(scanID)
	if err != nil {
		return nil, err
	}
	return svc.toResponse(session), nil
}

// SubmitRegistration moves a ready session through submitting into
// redirecting. A failed submit returns the session to ready so the player can
// retry; nothing is consumed twice because validation already happened.
func (svc *ScanFlowService) SubmitRegistration(scanID string, req dto.RegistrationRequest) (*dto.RedirectResponse, error) {
	// Field guard runs before any session or store I/O.
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Name and phone are required")
	}

	session, err := svc.loadSession(scanID)
	if err != nil {
		return nil, err
	}

	switch session.State {
	case shared.ScanStateReady:
		// proceed
	case shared.ScanStateRedirecting:
		return svc.redirectOf(session), nil
	case shared.ScanStateError:
		return nil, shared.NewBadRequestError(nil, session.Error)
	default:
		return nil, shared.NewConflictError(nil, "Scan session is not ready for registration")
	}

	// Two tabs can share one scan id; the lock lets only one of them carry
	// the submit. It is released on failure so a retry can proceed.
	ctx := context.Background()
	locked, err := svc.redisSvc.SetNX(ctx, submitLockKey(scanID), 1, scanSessionTTL)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to update scan session")
	}
	if !locked {
		return nil, shared.NewConflictError(nil, "Registration already in progress")
	}

	session.State = shared.ScanStateSubmitting
	if err := svc.saveSession(session); err != nil {
		svc.releaseSubmitLock(scanID)
		return nil, shared.NewInternalError(err, "Failed to update scan session")
	}

	customer, err := svc.customerSvc.Upsert(dto.UpsertCustomerRequest{
		MerchantRef: dto.MerchantRef{MerchantID: session.Validation.MerchantID},
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Instagram:   req.Instagram,
	})
	if err != nil {
		// Retriable: the player sees the error and can submit again.
		session.State = shared.ScanStateReady
		if saveErr := svc.saveSession(session); saveErr != nil {
			log.WithError(saveErr).WithField("scan_id", scanID).Error("Failed to reset scan session")
		}
		svc.releaseSubmitLock(scanID)
		svc.monitoringSvc.RecordScanFlowError("submit")
		return nil, err
	}

	if err := svc.qrSvc.sqlSvc.AttachCustomerToScan(session.Validation.QRUsageID, customer.ID); err != nil {
		log.WithError(err).WithField("scan_id", scanID).Warn("Failed to attach customer to scan event")
	}

	session.State = shared.ScanStateRedirecting
	session.CustomerID = customer.ID
	if err := svc.saveSession(session); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update scan session")
	}

	return svc.redirectOf(session), nil
}

// redirectOf builds the play URL. A session without a game lands on the
// merchant's gallery instead of a specific game.
func (svc *ScanFlowService) redirectOf(session *scanSession) *dto.RedirectResponse {
	v := session.Validation
	query := url.Values{}
	query.Set("player", session.CustomerID)
	query.Set("qrCode", session.UniqueID)

	var path string
	if v.GameCode != "" {
		path = fmt.Sprintf("/play/%s/game/%s", v.MerchantID, game.RouteForCode(v.GameCode))
	} else {
		path = fmt.Sprintf("/play/%s/games", v.MerchantID)
	}

	return &dto.RedirectResponse{
		State:       session.State,
		CustomerID:  session.CustomerID,
		RedirectURL: fmt.Sprintf("%s?%s", path, query.Encode()),
	}
}

func (svc *ScanFlowService) saveSession(session *scanSession) error {
	ctx := context.Background()
	return svc.redisSvc.Set(ctx, scanKey(session.ScanID), session, scanSessionTTL)
}

func (svc *ScanFlowService) loadSession(scanID string) (*scanSession, error) {
	ctx := context.Background()

	var session scanSession
	if err := svc.redisSvc.GetJSON(ctx, scanKey(scanID), &session); err != nil {
		return nil, shared.NewInternalError(err, "Failed to load scan session")
	}
	if session.ScanID == "" {
		return nil, shared.NewNotFoundError(nil, "Scan session not found or expired")
	}
	return &session, nil
}

func (svc *ScanFlowService) toResponse(session *scanSession) *dto.ScanStateResponse {
	return &dto.ScanStateResponse{
		ScanID:     session.ScanID,
		State:      session.State,
		UniqueID:   session.UniqueID,
		Validation: session.Validation,
		Error:      session.Error,
		CreatedAt:  session.CreatedAt,
	}
}

func (svc *ScanFlowService) releaseSubmitLock(scanID string) {
	if err := svc.redisSvc.Delete(context.Background(), submitLockKey(scanID)); err != nil {
		log.WithError(err).WithField("scan_id", scanID).Warn("Failed to release submit lock")
	}
}

func scanKey(scanID string) string {
	return fmt.Sprintf("scan:%s", scanID)
}

func submitLockKey(scanID string) string {
	return fmt.Sprintf("scan:%s:submit", scanID)
}
