package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/model"
	"github.com/scanplay-app/scanplay_api/shared"
)

type stubQRService struct {
	validateFn func(uniqueID, ip, userAgent string) (*dto.QRValidationResult, error)
	calls      int
}

func (s *stubQRService) ValidateCode(uniqueID, ip, userAgent string) (*dto.QRValidationResult, error) {
	s.calls++
	return s.validateFn(uniqueID, ip, userAgent)
}

func (s *stubQRService) CreateBatch(string, dto.CreateQRBatchRequest) (*dto.QRBatchResponse, error) {
	return nil, nil
}

func (s *stubQRService) ListCampaignCodes(string, string) ([]model.QRCode, error) {
	return nil, nil
}

func (s *stubQRService) Deactivate(string, string) error {
	return nil
}

type stubFlowService struct {
	submitFn func(scanID string, req dto.RegistrationRequest) (*dto.RedirectResponse, error)
}

func (s *stubFlowService) StartScan(string, string, string) (*dto.ScanStateResponse, error) {
	return nil, nil
}

func (s *stubFlowService) GetScan(string) (*dto.ScanStateResponse, error) {
	return nil, nil
}

func (s *stubFlowService) SubmitRegistration(scanID string, req dto.RegistrationRequest) (*dto.RedirectResponse, error) {
	return s.submitFn(scanID, req)
}

type stubCustomerService struct {
	upsertCalls int
}

func (s *stubCustomerService) FindByPhone(dto.FindCustomerRequest) (*dto.CustomerResponse, error) {
	return nil, nil
}

func (s *stubCustomerService) Upsert(req dto.UpsertCustomerRequest) (*dto.CustomerResponse, error) {
	s.upsertCalls++
	return &dto.CustomerResponse{ID: "cus_1", Found: true}, nil
}

func (s *stubCustomerService) List(string, int, int) (*dto.CustomerListResponse, error) {
	return nil, nil
}

func (s *stubCustomerService) Leaderboard(string, int) (*dto.LeaderboardResponse, error) {
	return nil, nil
}

func (s *stubCustomerService) PlayerProfile(string) (*dto.PlayerData, error) {
	return nil, nil
}

type stubGameService struct{}

func (s *stubGameService) ListGames() ([]dto.GameInfo, error) {
	return []dto.GameInfo{{Code: "spin-win", Route: "spin-wheel"}}, nil
}

func (s *stubGameService) Play(dto.PlayGameRequest) (*dto.PlayGameResponse, error) {
	return nil, nil
}

func (s *stubGameService) Track(dto.TrackGameRequest) (*dto.TrackGameResponse, error) {
	return nil, nil
}

func (s *stubGameService) MerchantStats(string) (*dto.MerchantStatsResponse, error) {
	return nil, nil
}

func newTestApp(qr *stubQRService, flow *stubFlowService, customer *stubCustomerService) *fiber.App {
	h := NewPublicHandler(qr, flow, customer, &stubGameService{})

	app := fiber.New()
	public := app.Group("/api/v1/public")
	public.Post("/qr/:uniqueId/validate", h.ValidateQR)
	public.Post("/customers", h.UpsertCustomer)
	public.Post("/scan/:scanId/register", h.SubmitRegistration)
	public.Get("/games", h.ListGames)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, dto.RPCResponse) {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	var resp dto.RPCResponse
	payload, _ := io.ReadAll(res.Body)
	_ = json.Unmarshal(payload, &resp)
	return res.StatusCode, resp
}

func TestValidateQRSuccessEnvelope(t *testing.T) {
	qr := &stubQRService{
		validateFn: func(uniqueID, ip, userAgent string) (*dto.QRValidationResult, error) {
			if uniqueID != "qr_abc123" {
				t.Errorf("uniqueID = %q, want qr_abc123", uniqueID)
			}
			return &dto.QRValidationResult{
				Valid:      true,
				MerchantID: "m1",
				GameCode:   "spin-win",
				QRUsageID:  "scan_1",
			}, nil
		},
	}
	app := newTestApp(qr, &stubFlowService{}, &stubCustomerService{})

	status, resp := postJSON(t, app, "/api/v1/public/qr/qr_abc123/validate", map[string]string{})
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.Status != dto.RPCStatusSuccess {
		t.Fatalf("envelope status = %q, want SUCCESS", resp.Status)
	}

	data, _ := json.Marshal(resp.Data)
	var result dto.QRValidationResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !result.Valid || result.MerchantID != "m1" || result.QRUsageID != "scan_1" {
		t.Errorf("unexpected validation payload: %+v", result)
	}
}

func TestValidateQRBusinessErrorFoldsInto200(t *testing.T) {
	qr := &stubQRService{
		validateFn: func(string, string, string) (*dto.QRValidationResult, error) {
			return nil, shared.NewBadRequestError(nil, "QR code already used")
		},
	}
	app := newTestApp(qr, &stubFlowService{}, &stubCustomerService{})

	status, resp := postJSON(t, app, "/api/v1/public/qr/qr_used/validate", map[string]string{})
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.Status != dto.RPCStatusError {
		t.Fatalf("envelope status = %q, want ERROR", resp.Status)
	}
	if resp.Message != "QR code already used" {
		t.Errorf("message = %q, want the service message", resp.Message)
	}
}

func TestUpsertCustomerRejectsMissingFieldsBeforeService(t *testing.T) {
	customer := &stubCustomerService{}
	app := newTestApp(&stubQRService{}, &stubFlowService{}, customer)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing phone", map[string]string{"merchantId": "m1", "name": "Jane"}},
		{"missing name", map[string]string{"merchantId": "m1", "phone": "+15551234567"}},
		{"missing merchant", map[string]string{"name": "Jane", "phone": "+15551234567"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := postJSON(t, app, "/api/v1/public/customers", tt.body)
			if status != 400 {
				t.Fatalf("status = %d, want 400", status)
			}
		})
	}

	if customer.upsertCalls != 0 {
		t.Fatalf("service called %d times for invalid payloads, want 0", customer.upsertCalls)
	}
}

func TestSubmitRegistrationReturnsRedirect(t *testing.T) {
	flow := &stubFlowService{
		submitFn: func(scanID string, req dto.RegistrationRequest) (*dto.RedirectResponse, error) {
			if scanID != "scn_1" {
				t.Errorf("scanID = %q, want scn_1", scanID)
			}
			return &dto.RedirectResponse{
				State:       shared.ScanStateRedirecting,
				CustomerID:  "cus_1",
				RedirectURL: "/play/m1/game/spin-wheel?player=cus_1&qrCode=qr_abc123",
			}, nil
		},
	}
	app := newTestApp(&stubQRService{}, flow, &stubCustomerService{})

	status, resp := postJSON(t, app, "/api/v1/public/scan/scn_1/register", map[string]string{
		"name":  "Jane",
		"phone": "+15551234567",
	})
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}
	if resp.Status != dto.RPCStatusSuccess {
		t.Fatalf("envelope status = %q, want SUCCESS", resp.Status)
	}

	data, _ := json.Marshal(resp.Data)
	var redirect dto.RedirectResponse
	if err := json.Unmarshal(data, &redirect); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if redirect.RedirectURL != "/play/m1/game/spin-wheel?player=cus_1&qrCode=qr_abc123" {
		t.Errorf("redirect URL = %q", redirect.RedirectURL)
	}
}
