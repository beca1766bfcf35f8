package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"

	appContext "github.com/alphabatem/common/context"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RPCService is the gateway for the signed-envelope protocol at
// POST /v1/request/. Every call carries a hash of its raw data payload
// concatenated with the caller's session secret; the gateway recomputes the
// digest before any dispatch so a stolen user id alone buys nothing.
type RPCService struct {
	appContext.DefaultService

	sqlSvc      *PostgresService
	authSvc     *AuthService
	customerSvc *CustomerService
	gameSvc     *GameService
	qrSvc       *QRService
	campaignSvc *CampaignService
}

const RPC_SVC = "rpc_svc"

func (svc RPCService) Id() string {
	return RPC_SVC
}

func (svc *RPCService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *RPCService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.customerSvc = svc.Service(CUSTOMER_SVC).(*CustomerService)
	svc.gameSvc = svc.Service(GAME_SVC).(*GameService)
	svc.qrSvc = svc.Service(QR_SVC).(*QRService)
	svc.campaignSvc = svc.Service(CAMPAIGN_SVC).(*CampaignService)
	return nil
}

// Handle authenticates one envelope and dispatches it. Authentication
// failures come back as errors so the transport can answer 401 and the
// client knows to discard its credentials; business failures fold into an
// ERROR envelope on a 200 response.
func (svc *RPCService) Handle(envelope dto.RPCEnvelope) (*dto.RPCResponse, error) {
	if err := envelope.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Malformed request envelope")
	}

	secret, err := svc.authSvc.SessionSecretFor(envelope.Session.ID)
	if err != nil {
		return nil, err
	}

	if !svc.verifyHash(envelope.Data, secret, envelope.Session.Hash) {
		log.WithFields(log.Fields{
			"user_id": envelope.Session.ID,
			"module":  envelope.Session.Module,
			"method":  envelope.Session.Method,
		}).Warn("RPC envelope hash mismatch")
		return nil, shared.NewUnauthorizedError(nil, "Invalid request signature")
	}

	user, err := svc.sqlSvc.GetUserByID(envelope.Session.ID)
	if err != nil {
		// Only a missing user is an auth failure; a store outage must not
		// make clients throw their credentials away.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(nil, "Session is no longer valid")
		}
		return nil, shared.NewInternalError(err, "Failed to load session")
	}
	if !user.IsActive {
		return nil, shared.NewUnauthorizedError(nil, "Account is deactivated")
	}

	data, err := svc.dispatch(caller{userID: user.ID, merchantID: user.MerchantID}, envelope)
	if err != nil {
		appErr, ok := shared.GetAppError(err)
		if !ok || appErr.StatusCode >= 500 {
			return nil, err
		}
		// Authentication problems keep their HTTP status so the client's
		// credential handling stays correct.
		if appErr.StatusCode == 401 {
			return nil, err
		}
		return &dto.RPCResponse{Status: dto.RPCStatusError, Message: appErr.Message}, nil
	}

	return &dto.RPCResponse{Status: dto.RPCStatusSuccess, Data: data}, nil
}

// caller is the authenticated identity an envelope resolved to. Merchant
// scoped methods always use its merchant id, never one from the payload.
type caller struct {
	userID     string
	merchantID string
}

func (svc *RPCService) dispatch(who caller, envelope dto.RPCEnvelope) (interface{}, error) {
	module := envelope.Session.Module
	method := envelope.Session.Method

	switch module {
	case "auth":
		return svc.dispatchAuth(who, method, envelope.Data)
	case "customer":
		return svc.dispatchCustomer(who, method, envelope.Data)
	case "game":
		return svc.dispatchGame(who, method, envelope.Data)
	case "qr":
		return svc.dispatchQR(who, method, envelope.Data)
	case "campaign":
		return svc.dispatchCampaign(who, method, envelope.Data)
	case "stats":
		if method == "merchant" {
			return svc.gameSvc.MerchantStats(who.merchantID)
		}
	}
	return nil, shared.NewBadRequestError(nil, "Unknown method "+module+"."+method)
}

func (svc *RPCService) dispatchAuth(who caller, method string, data json.RawMessage) (interface{}, error) {
	switch method {
	case "verify_session":
		return svc.authSvc.VerifySession(who.userID)
	case "logout":
		var req struct {
			SessionID string `json:"sessionId"`
		}
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		return nil, svc.authSvc.Logout(who.userID, req.SessionID)
	case "audit_logs":
		var req struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		}
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		return svc.authSvc.GetAuditLogs(who.userID, req.Page, req.Limit)
	}
	return nil, shared.NewBadRequestError(nil, "Unknown method auth."+method)
}

func (svc *RPCService) dispatchCustomer(who caller, method string, data json.RawMessage) (interface{}, error) {
	switch method {
	case "find":
		var req dto.FindCustomerRequest
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		req.MerchantRef = merchantRef(who)
		if err := req.Validate(); err != nil {
			return nil, shared.NewBadRequestError(err, err.Error())
		}
		return svc.customerSvc.FindByPhone(req)
	case "upsert":
		var req dto.UpsertCustomerRequest
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		req.MerchantRef = merchantRef(who)
		if err := req.Validate(); err != nil {
			return nil, shared.NewBadRequestError(err, err.Error())
		}
		return svc.customerSvc.Upsert(req)
	case "list":
		var req struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		}
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		return svc.customerSvc.List(who.merchantID, req.Page, req.Limit)
	case "profile":
		var req struct {
			CustomerID string `json:"customerId"`
		}
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		if req.CustomerID == "" {
			return nil, shared.NewBadRequestError(nil, "customerId is required")
		}
		return svc.customerSvc.PlayerProfile(req.CustomerID)
	case "leaderboard":
		var req struct {
			Limit int `json:"limit"`
		}
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		return svc.customerSvc.Leaderboard(who.merchantID, req.Limit)
	}
	return nil, shared.NewBadRequestError(nil, "Unknown method customer."+method)
}

func (svc *RPCService) dispatchGame(who caller, method string, data json.RawMessage) (interface{}, error) {
	switch method {
	case "list":
		return svc.gameSvc.ListGames()
	case "play":
		var req dto.PlayGameRequest
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		req.MerchantRef = merchantRef(who)
		if err := req.Validate(); err != nil {
			return nil, shared.NewBadRequestError(err, err.Error())
		}
		return svc.gameSvc.Play(req)
	case "track":
		var req dto.TrackGameRequest
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		req.MerchantRef = merchantRef(who)
		if err := req.Validate(); err != nil {
			return nil, shared.NewBadRequestError(err, err.Error())
		}
		return svc.gameSvc.Track(req)
	}
	return nil, shared.NewBadRequestError(nil, "Unknown method game."+method)
}

func (svc *RPCService) dispatchQR(who caller, method string, data json.RawMessage) (interface{}, error) {
	switch method {
	case "create_batch":
		var req dto.CreateQRBatchRequest
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, shared.NewBadRequestError(err, err.Error())
		}
		return svc.qrSvc.CreateBatch(who.merchantID, req)
	case "list_codes":
		var req struct {
			CampaignID string `json:"campaignId"`
		}
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		return svc.qrSvc.ListCampaignCodes(who.merchantID, req.CampaignID)
	case "deactivate":
		var req struct {
			CodeID string `json:"codeId"`
		}
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		return nil, svc.qrSvc.Deactivate(who.merchantID, req.CodeID)
	}
	return nil, shared.NewBadRequestError(nil, "Unknown method qr."+method)
}

func (svc *RPCService) dispatchCampaign(who caller, method string, data json.RawMessage) (interface{}, error) {
	switch method {
	case "create":
		var req dto.CreateCampaignRequest
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, shared.NewBadRequestError(err, err.Error())
		}
		return svc.campaignSvc.Create(who.merchantID, req)
	case "list":
		return svc.campaignSvc.List(who.merchantID)
	case "set_active":
		var req struct {
			CampaignID string `json:"campaignId"`
			Active     bool   `json:"active"`
		}
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		return svc.campaignSvc.SetActive(who.merchantID, req.CampaignID, req.Active)
	}
	return nil, shared.NewBadRequestError(nil, "Unknown method campaign."+method)
}

func (svc *RPCService) verifyHash(data json.RawMessage, secret, hash string) bool {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte(secret))
	expected := hex.EncodeToString(h.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(hash)) == 1
}

func merchantRef(who caller) dto.MerchantRef {
	return dto.MerchantRef{MerchantID: who.merchantID}
}

func decodeInto(data json.RawMessage, out interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return shared.NewBadRequestError(err, "Malformed request data")
	}
	return nil
}
