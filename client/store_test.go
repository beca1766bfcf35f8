package client

import "testing"

func TestMigrateLegacy(t *testing.T) {
	tests := []struct {
		name       string
		existing   [2]string
		legacy     map[string]string
		imported   bool
		wantUser   string
		wantSecret string
	}{
		{
			name:       "durable keys imported",
			legacy:     map[string]string{"auth_user_id": "usr_01", "auth_session_secret": "s1"},
			imported:   true,
			wantUser:   "usr_01",
			wantSecret: "s1",
		},
		{
			name:       "tab keys used as fallback",
			legacy:     map[string]string{"id": "usr_02", "session_secret": "s2"},
			imported:   true,
			wantUser:   "usr_02",
			wantSecret: "s2",
		},
		{
			name: "durable keys win over tab keys",
			legacy: map[string]string{
				"auth_user_id": "usr_01", "auth_session_secret": "s1",
				"id": "usr_02", "session_secret": "s2",
			},
			imported:   true,
			wantUser:   "usr_01",
			wantSecret: "s1",
		},
		{
			name:     "incomplete pair not imported",
			legacy:   map[string]string{"auth_user_id": "usr_01"},
			imported: false,
		},
		{
			name:       "existing credentials never overwritten",
			existing:   [2]string{"usr_keep", "s_keep"},
			legacy:     map[string]string{"auth_user_id": "usr_01", "auth_session_secret": "s1"},
			imported:   false,
			wantUser:   "usr_keep",
			wantSecret: "s_keep",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.existing[0] != "" {
				store.SetCredentials(tt.existing[0], tt.existing[1])
			}

			if got := MigrateLegacy(store, tt.legacy); got != tt.imported {
				t.Fatalf("MigrateLegacy = %v, want %v", got, tt.imported)
			}
			user, secret := store.Credentials()
			if user != tt.wantUser || secret != tt.wantSecret {
				t.Fatalf("credentials = (%q, %q), want (%q, %q)", user, secret, tt.wantUser, tt.wantSecret)
			}
		})
	}
}

func TestSign(t *testing.T) {
	// Fixed vector: sha256("{}" + "abc")
	got := Sign([]byte("{}"), "abc")
	if len(got) != 64 {
		t.Fatalf("digest length = %d, want 64 hex chars", len(got))
	}
	if got != Sign([]byte("{}"), "abc") {
		t.Fatal("digest must be deterministic")
	}
	if got == Sign([]byte("{}"), "abd") {
		t.Fatal("digest must depend on the secret")
	}
	if got == Sign([]byte("{ }"), "abc") {
		t.Fatal("digest must depend on the exact payload bytes")
	}
}
