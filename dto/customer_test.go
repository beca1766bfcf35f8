package dto

import "testing"

func TestUnmarshalPlayerDataDefaults(t *testing.T) {
	p, err := UnmarshalPlayerData([]byte(`{"name":"Jane","phone":"+15551234567","merchantId":"m1"}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.TotalPoints != 0 {
		t.Errorf("totalPoints = %d, want 0", p.TotalPoints)
	}
	if p.GamesPlayed == nil {
		t.Fatal("gamesPlayed is nil, want empty slice")
	}
	if len(p.GamesPlayed) != 0 {
		t.Errorf("gamesPlayed = %v, want empty", p.GamesPlayed)
	}
}

func TestUnmarshalPlayerDataKeepsValues(t *testing.T) {
	p, err := UnmarshalPlayerData([]byte(`{"name":"Jane","totalPoints":120,"gamesPlayed":["spin-win","dice-roll"]}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.TotalPoints != 120 {
		t.Errorf("totalPoints = %d, want 120", p.TotalPoints)
	}
	if len(p.GamesPlayed) != 2 {
		t.Errorf("gamesPlayed = %v, want two entries", p.GamesPlayed)
	}
}

func TestMerchantRefResolve(t *testing.T) {
	tests := []struct {
		name string
		ref  MerchantRef
		want string
	}{
		{"camel only", MerchantRef{MerchantID: "m1"}, "m1"},
		{"snake only", MerchantRef{MerchantIDSnake: "m2"}, "m2"},
		{"camel wins", MerchantRef{MerchantID: "m1", MerchantIDSnake: "m2"}, "m1"},
		{"empty", MerchantRef{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.Resolve(); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialPhoneValidation(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+15551234567", true},
		{"+8491234567", true},
		{"15551234567", false},
		{"+1555", false},
		{"", false},
		{"+1555123456789012345", false},
	}

	for _, tt := range tests {
		req := RegistrationRequest{Name: "Jane", Phone: tt.phone}
		err := req.Validate()
		if tt.valid && err != nil {
			t.Errorf("phone %q rejected: %v", tt.phone, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("phone %q accepted, want rejection", tt.phone)
		}
	}
}
