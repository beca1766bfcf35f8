package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/scanplay-app/scanplay_api/dto"
)

func TestCallWithoutCredentialsIssuesNoRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemoryStore())
	_, err := c.Call(context.Background(), "customer", "find", map[string]string{"phone": "+15550001111"})
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("expected zero requests without credentials, server saw %d", n)
	}
}

func TestCallSignsEnvelope(t *testing.T) {
	const (
		userID = "usr_01"
		secret = "s3cret"
	)

	var got dto.RPCEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/request/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode envelope: %v", err)
		}
		json.NewEncoder(w).Encode(dto.RPCResponse{Status: dto.RPCStatusSuccess})
	}))
	defer srv.Close()

	store := NewMemoryStore()
	store.SetCredentials(userID, secret)

	c := New(srv.URL, store)
	resp, err := c.Call(context.Background(), "customer", "find", map[string]string{"phone": "+15550001111"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if resp.Status != dto.RPCStatusSuccess {
		t.Fatalf("unexpected status %q", resp.Status)
	}

	if got.Session.Module != "customer" || got.Session.Method != "find" {
		t.Fatalf("envelope session = %+v", got.Session)
	}
	if got.Session.ID != userID {
		t.Fatalf("session id = %q, want %q", got.Session.ID, userID)
	}

	sum := sha256.Sum256(append(append([]byte{}, got.Data...), []byte(secret)...))
	if want := hex.EncodeToString(sum[:]); got.Session.Hash != want {
		t.Fatalf("hash = %q, want digest over data+secret %q", got.Session.Hash, want)
	}
}

func TestCallNon2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewMemoryStore()
	store.SetCredentials("usr_01", "s3cret")

	c := New(srv.URL, store)
	_, err := c.Call(context.Background(), "game", "track", map[string]int{"points": 10})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", statusErr.Code)
	}
}

func TestCheckAuth(t *testing.T) {
	t.Run("unauthorized clears credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		store := NewMemoryStore()
		store.SetCredentials("usr_01", "s3cret")

		ok, err := New(srv.URL, store).CheckAuth(context.Background())
		if err != nil {
			t.Fatalf("CheckAuth: %v", err)
		}
		if ok {
			t.Fatal("expected not authenticated")
		}
		if id, sec := store.Credentials(); id != "" || sec != "" {
			t.Fatal("credentials should be cleared after explicit 401")
		}
	})

	t.Run("transport failure keeps credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		store := NewMemoryStore()
		store.SetCredentials("usr_01", "s3cret")

		ok, err := New(srv.URL, store).CheckAuth(context.Background())
		if err == nil {
			t.Fatal("expected transport error")
		}
		if ok {
			t.Fatal("expected not authenticated on transport failure")
		}
		if id, _ := store.Credentials(); id != "usr_01" {
			t.Fatal("transport failure must not clear credentials")
		}
	})

	t.Run("error status clears credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(dto.RPCResponse{Status: dto.RPCStatusError, Message: "session revoked"})
		}))
		defer srv.Close()

		store := NewMemoryStore()
		store.SetCredentials("usr_01", "s3cret")

		ok, err := New(srv.URL, store).CheckAuth(context.Background())
		if err != nil {
			t.Fatalf("CheckAuth: %v", err)
		}
		if ok {
			t.Fatal("expected not authenticated")
		}
		if id, _ := store.Credentials(); id != "" {
			t.Fatal("credentials should be cleared after explicit rejection")
		}
	})

	t.Run("no credentials means no request", func(t *testing.T) {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer srv.Close()

		ok, err := New(srv.URL, NewMemoryStore()).CheckAuth(context.Background())
		if err != nil || ok {
			t.Fatalf("got ok=%v err=%v", ok, err)
		}
		if atomic.LoadInt32(&hits) != 0 {
			t.Fatal("CheckAuth without credentials must not hit the network")
		}
	})
}

func TestLogoutClearsLocalCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewMemoryStore()
	store.SetCredentials("usr_01", "s3cret")

	err := New(srv.URL, store).Logout(context.Background())
	if err == nil {
		t.Fatal("expected revocation error to surface")
	}
	if id, _ := store.Credentials(); id != "" {
		t.Fatal("local credentials must be cleared even when revocation fails")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"http://api.local", "http://api.local"},
		{"http://api.local/", "http://api.local"},
		{"http://api.local/v1", "http://api.local"},
		{"http://api.local/v1/", "http://api.local"},
	}
	for _, tt := range tests {
		if got := normalizeBaseURL(tt.raw); got != tt.want {
			t.Errorf("normalizeBaseURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestValidateQRCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/public/qr/qr_abc123/validate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(dto.RPCResponse{
			Status: dto.RPCStatusSuccess,
			Data: dto.QRValidationResult{
				Valid:      true,
				MerchantID: "m1",
				GameCode:   "spin-win",
				QRUsageID:  "scan_01",
			},
		})
	}))
	defer srv.Close()

	result, err := New(srv.URL, NewMemoryStore()).ValidateQRCode(context.Background(), "qr_abc123")
	if err != nil {
		t.Fatalf("ValidateQRCode: %v", err)
	}
	if !result.Valid || result.MerchantID != "m1" || result.GameCode != "spin-win" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestValidateQRCodeBusinessError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.RPCResponse{Status: dto.RPCStatusError, Message: "QR code already used"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, NewMemoryStore()).ValidateQRCode(context.Background(), "qr_used")

	var bizErr *BusinessError
	if !errors.As(err, &bizErr) {
		t.Fatalf("expected BusinessError, got %v", err)
	}
	if bizErr.Message != "QR code already used" {
		t.Fatalf("message = %q", bizErr.Message)
	}
}
