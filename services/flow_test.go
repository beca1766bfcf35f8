package services

import (
	"testing"

	"github.com/scanplay-app/scanplay_api/dto"
	"github.com/scanplay-app/scanplay_api/shared"
)

func TestRedirectOf(t *testing.T) {
	svc := &ScanFlowService{}

	tests := []struct {
		name    string
		session *scanSession
		wantURL string
	}{
		{
			name: "game route with mapped code",
			session: &scanSession{
				State:      shared.ScanStateRedirecting,
				UniqueID:   "qr_abc123",
				CustomerID: "cus_1",
				Validation: &dto.QRValidationResult{
					MerchantID: "m1",
					GameCode:   "spin-win",
				},
			},
			wantURL: "/play/m1/game/spin-wheel?player=cus_1&qrCode=qr_abc123",
		},
		{
			name: "unmapped code passes through",
			session: &scanSession{
				State:      shared.ScanStateRedirecting,
				UniqueID:   "qr_x",
				CustomerID: "cus_2",
				Validation: &dto.QRValidationResult{
					MerchantID: "m2",
					GameCode:   "quick-tap",
				},
			},
			wantURL: "/play/m2/game/quick-tap?player=cus_2&qrCode=qr_x",
		},
		{
			name: "no game lands on the gallery",
			session: &scanSession{
				State:      shared.ScanStateRedirecting,
				UniqueID:   "qr_y",
				CustomerID: "cus_3",
				Validation: &dto.QRValidationResult{
					MerchantID: "m3",
				},
			},
			wantURL: "/play/m3/games?player=cus_3&qrCode=qr_y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.redirectOf(tt.session)
			if got.RedirectURL != tt.wantURL {
				t.Errorf("redirect URL = %q, want %q", got.RedirectURL, tt.wantURL)
			}
			if got.CustomerID != tt.session.CustomerID {
				t.Errorf("customer id = %q, want %q", got.CustomerID, tt.session.CustomerID)
			}
			if got.State != shared.ScanStateRedirecting {
				t.Errorf("state = %q, want %q", got.State, shared.ScanStateRedirecting)
			}
		})
	}
}

func TestScanKey(t *testing.T) {
	if got := scanKey("scn_1"); got != "scan:scn_1" {
		t.Errorf("scanKey = %q, want scan:scn_1", got)
	}
	if got := submitLockKey("scn_1"); got != "scan:scn_1:submit" {
		t.Errorf("submitLockKey = %q, want scan:scn_1:submit", got)
	}
}

// Missing mandatory fields must be rejected before any session or store
// access. The service here has no backing services at all, so reaching
// Redis would panic instead of failing the assertion.
func TestSubmitRegistrationRejectsMissingFields(t *testing.T) {
	svc := &ScanFlowService{}

	tests := []struct {
		name string
		req  dto.RegistrationRequest
	}{
		{name: "missing name", req: dto.RegistrationRequest{Phone: "+15551234567"}},
		{name: "missing phone", req: dto.RegistrationRequest{Name: "Jane"}},
		{name: "empty form", req: dto.RegistrationRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitRegistration("scn_1", tt.req)
			if err == nil {
				t.Fatal("expected an error, got none")
			}

			appErr, ok := shared.GetAppError(err)
			if !ok {
				t.Fatalf("error is %T, want *shared.AppError", err)
			}
			if appErr.StatusCode != 400 {
				t.Fatalf("status = %d, want 400", appErr.StatusCode)
			}
		})
	}
}
