package dto

import "encoding/json"

// RPCSession is the signed header of the legacy envelope. Hash is the hex
// digest of the raw data payload concatenated with the caller's session
// secret; the server recomputes it before dispatch.
type RPCSession struct {
	Module string `json:"module" example:"customer"`
	Method string `json:"method" example:"find"`
	ID     string `json:"id" example:"usr_0199a3"`
	Hash   string `json:"hash" example:"9f86d081884c7d65..."`
}

// RPCEnvelope is the body of POST /v1/request/. Data stays raw so the digest
// is computed over the caller's exact bytes.
type RPCEnvelope struct {
	Session RPCSession      `json:"session"`
	Data    json.RawMessage `json:"data"`
}

func (e RPCEnvelope) Validate() error {
	if e.Session.Module == "" {
		return requiredFieldError("session.module")
	}
	if e.Session.Method == "" {
		return requiredFieldError("session.method")
	}
	if e.Session.ID == "" {
		return requiredFieldError("session.id")
	}
	if e.Session.Hash == "" {
		return requiredFieldError("session.hash")
	}
	return nil
}

type RPCResponse struct {
	Status  string      `json:"status" example:"SUCCESS"`
	Message string      `json:"message,omitempty" example:""`
	Data    interface{} `json:"data,omitempty"`
}

const (
	RPCStatusSuccess = "SUCCESS"
	RPCStatusError   = "ERROR"
)
