package constants

const (
	// Rate limits (requests per minute)
	IngestLimit = 300 // Webhook capture endpoint
	AdminLimit  = 60  // Clear/replay operations
)
