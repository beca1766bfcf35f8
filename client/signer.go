package client

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the request hash of the legacy RPC envelope: the hex SHA-256
// digest of the serialized data payload concatenated with the session secret.
// The digest algorithm is an external contract shared with the backend; both
// sides must change together.
func Sign(data []byte, secret string) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte(secret))
	return hex.EncodeToString(h.Sum(nil))
}
