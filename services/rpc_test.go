package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
)

func TestVerifyHash(t *testing.T) {
	svc := &RPCService{}

	data := json.RawMessage(`{"phone":"+15551234567"}`)
	secret := "super-secret"

	sum := sha256.Sum256(append(append([]byte{}, data...), []byte(secret)...))
	good := hex.EncodeToString(sum[:])

	if !svc.verifyHash(data, secret, good) {
		t.Fatal("valid hash rejected")
	}
	if svc.verifyHash(data, secret, good[:len(good)-1]+"0") {
		t.Fatal("tampered hash accepted")
	}
	if svc.verifyHash(data, "other-secret", good) {
		t.Fatal("hash accepted under wrong secret")
	}
	if svc.verifyHash(json.RawMessage(`{"phone":"+15550000000"}`), secret, good) {
		t.Fatal("hash accepted for different payload")
	}
}
