package shared

const (
	UserID     = "user_id"
	MerchantID = "merchant_id"

	RoleMerchant = "merchant"

	ScanStateValidating  = "validating"
	ScanStateReady       = "ready"
	ScanStateSubmitting  = "submitting"
	ScanStateRedirecting = "redirecting"
	ScanStateError       = "error"

	FileTypeArtwork = "artwork"
)
