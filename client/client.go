// Package client is the Go client for the ScanPlay backend. It implements
// the legacy signed-envelope RPC call pattern plus the unauthenticated
// endpoints the QR scan flow uses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/scanplay-app/scanplay_api/dto"
)

// ErrAuthRequired is returned before any network I/O when the credential
// store holds no session pair.
var ErrAuthRequired = errors.New("client: authentication required")

// StatusError carries a non-2xx HTTP status from the backend.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("client: request failed with status %d", e.Code)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      CredentialStore
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New builds a client against baseURL. Trailing slashes and a legacy "/v1"
// suffix are stripped once here, not per call site.
func New(baseURL string, store CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    normalizeBaseURL(baseURL),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func normalizeBaseURL(raw string) string {
	base := strings.TrimRight(raw, "/")
	base = strings.TrimSuffix(base, "/v1")
	return base
}

// Call performs one signed RPC request: a single attempt, no retry, no
// backoff. Without stored credentials it fails immediately and issues no
// network request.
func (c *Client) Call(ctx context.Context, module, method string, data interface{}) (*dto.RPCResponse, error) {
	userID, secret := c.store.Credentials()
	if userID == "" || secret == "" {
		return nil, ErrAuthRequired
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("client: marshal data: %w", err)
	}

	envelope := dto.RPCEnvelope{
		Session: dto.RPCSession{
			Module: module,
			Method: method,
			ID:     userID,
			Hash:   Sign(payload, secret),
		},
		Data: payload,
	}

	var resp dto.RPCResponse
	if err := c.postJSON(ctx, c.baseURL+"/v1/request/", envelope, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckAuth re-verifies the stored session against the backend. An explicit
// invalid-session answer clears the stored credentials; a transport failure
// does not, so a flaky network never forces a logout.
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	userID, secret := c.store.Credentials()
	if userID == "" || secret == "" {
		return false, nil
	}

	resp, err := c.Call(ctx, "auth", "verify_session", map[string]string{"user_id": userID})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusUnauthorized {
			c.store.Clear()
			return false, nil
		}
		return false, err
	}

	if resp.Status != dto.RPCStatusSuccess {
		c.store.Clear()
		return false, nil
	}
	return true, nil
}

// Logout clears local credentials and asks the backend to revoke the session.
// The local clear happens regardless of the revocation outcome.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Call(ctx, "auth", "logout", map[string]string{})
	c.store.Clear()
	if errors.Is(err, ErrAuthRequired) {
		return nil
	}
	return err
}

func (c *Client) postJSON(ctx context.Context, url string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("client: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Code: res.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
