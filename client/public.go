package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scanplay-app/scanplay_api/dto"
)

// The public family bypasses the signed envelope entirely: these are the
// anonymous endpoints the QR scan flow hits before any customer exists.

// BusinessError is a backend-reported failure (status != SUCCESS) carried
// with the backend's own message.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return "client: request rejected by backend"
	}
	return e.Message
}

// ValidateQRCode resolves a scanned unique id into its validation payload.
func (c *Client) ValidateQRCode(ctx context.Context, uniqueID string) (*dto.QRValidationResult, error) {
	url := fmt.Sprintf("%s/api/v1/public/qr/%s/validate", c.baseURL, uniqueID)

	var resp dto.RPCResponse
	if err := c.postJSON(ctx, url, map[string]string{}, &resp); err != nil {
		return nil, err
	}

	var result dto.QRValidationResult
	if err := decodeData(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FindCustomerByPhone looks a player up within a merchant, applying the
// request's identity fields as update hints when the record exists.
func (c *Client) FindCustomerByPhone(ctx context.Context, req dto.FindCustomerRequest) (*dto.CustomerResponse, error) {
	var resp dto.RPCResponse
	if err := c.postJSON(ctx, c.baseURL+"/api/v1/public/customers/find", req, &resp); err != nil {
		return nil, err
	}

	var customer dto.CustomerResponse
	if err := decodeData(resp, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpsertCustomer finds or creates a player record.
func (c *Client) UpsertCustomer(ctx context.Context, req dto.UpsertCustomerRequest) (*dto.CustomerResponse, error) {
	var resp dto.RPCResponse
	if err := c.postJSON(ctx, c.baseURL+"/api/v1/public/customers", req, &resp); err != nil {
		return nil, err
	}

	var customer dto.CustomerResponse
	if err := decodeData(resp, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func decodeData(resp dto.RPCResponse, out interface{}) error {
	if resp.Status != dto.RPCStatusSuccess {
		return &BusinessError{Message: resp.Message}
	}
	if resp.Data == nil {
		return errors.New("client: response carried no data")
	}

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("client: re-encode data: %w", err)
	}
	return json.Unmarshal(raw, out)
}
