// internal/api/docs.go
package api

// These types are for Swagger documentation
type IngestResponse struct {
	Status string `json:"status" example:"success"`
	ID     int64  `json:"id" example:"42"`
}

type ClearResponse struct {
	Status  string `json:"status" example:"cleared"`
	Removed int64  `json:"removed" example:"17"`
}

type ReplayResponse struct {
	Status         string `json:"status" example:"replayed"`
	WebhookID      int64  `json:"webhook_id" example:"42"`
	TargetURL      string `json:"target_url" example:"https://example.com/hook"`
	ResponseStatus int    `json:"response_status" example:"200"`
	LatencyMs      int64  `json:"latency_ms" example:"121"`
}

type HealthResponse struct {
	Status         string `json:"status" example:"ok"`
	AdminProtected bool   `json:"admin_protected" example:"false"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Error message"`
}
