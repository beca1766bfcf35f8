package client

import "sync"

// CredentialStore holds the session pair the RPC envelope is signed with.
// There is one canonical store and one key convention; older clients that
// scattered the same values across several key names migrate through
// MigrateLegacy once instead of writing every location forever.
type CredentialStore interface {
	Credentials() (userID, secret string)
	SetCredentials(userID, secret string)
	Clear()
}

type MemoryStore struct {
	mu     sync.RWMutex
	userID string
	secret string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Credentials() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.secret
}

func (s *MemoryStore) SetCredentials(userID, secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.secret = secret
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.secret = ""
}

// Legacy key names older clients persisted the same credential under.
const (
	legacyUserIDKey        = "auth_user_id"
	legacySessionSecretKey = "auth_session_secret"
	legacyTabUserIDKey     = "id"
	legacyTabSecretKey     = "session_secret"
)

// MigrateLegacy imports credentials from a dump of legacy storage keys into
// the store. Durable keys win over tab-scoped ones; existing credentials in
// the store are never overwritten. Returns true if anything was imported.
func MigrateLegacy(store CredentialStore, legacy map[string]string) bool {
	if userID, _ := store.Credentials(); userID != "" {
		return false
	}

	userID := legacy[legacyUserIDKey]
	secret := legacy[legacySessionSecretKey]
	if userID == "" || secret == "" {
		userID = legacy[legacyTabUserIDKey]
		secret = legacy[legacyTabSecretKey]
	}
	if userID == "" || secret == "" {
		return false
	}

	store.SetCredentials(userID, secret)
	return true
}
