package services

import (
	"errors"
	"testing"

	"github.com/scanplay-app/scanplay_api/shared"
	"gorm.io/gorm"
)

// Clients clear their stored credentials on an unauthorized answer, so only
// a genuinely missing session may map to one. Anything else is the server's
// problem and must say so.
func TestSessionLookupErrorKeepsAuthSplit(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "missing session is unauthorized",
			err:        gorm.ErrRecordNotFound,
			wantStatus: 401,
		},
		{
			name:       "store-wrapped missing session is unauthorized",
			err:        shared.NewNotFoundError(gorm.ErrRecordNotFound, "record not found"),
			wantStatus: 401,
		},
		{
			name:       "connection failure is internal",
			err:        errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"),
			wantStatus: 500,
		},
		{
			name:       "store-wrapped outage is internal",
			err:        shared.NewInternalError(errors.New("driver: bad connection"), "database error"),
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sessionLookupError(tt.err)

			appErr, ok := shared.GetAppError(got)
			if !ok {
				t.Fatalf("sessionLookupError returned %T, want *shared.AppError", got)
			}
			if appErr.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", appErr.StatusCode, tt.wantStatus)
			}
		})
	}
}
