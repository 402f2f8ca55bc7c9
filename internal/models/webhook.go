package models

import "time"

type Webhook struct {
	ID          int64     `json:"id"`
	ReceivedAt  time.Time `json:"received_at"`
	Method      string    `json:"method"`
	Path        string    `json:"path"`
	Headers     string    `json:"-"` // JSON-encoded http.Header
	QueryParams string    `json:"-"` // JSON-encoded url.Values
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"-"`
	SourceIP    string    `json:"source_ip,omitempty"`
	EventType   string    `json:"event_type,omitempty"`
}

type WebhookDetail struct {
	ID          int64               `json:"id"`
	ReceivedAt  time.Time           `json:"received_at"`
	Method      string              `json:"method"`
	Path        string              `json:"path"`
	Headers     map[string][]string `json:"headers"`
	QueryParams map[string][]string `json:"query_params"`
	ContentType string              `json:"content_type"`
	Body        string              `json:"body,omitempty"`
	BodyBase64  string              `json:"body_base64,omitempty"`
	BodyParsed  interface{}         `json:"body_parsed"`
	SourceIP    string              `json:"source_ip,omitempty"`
	EventType   string              `json:"event_type,omitempty"`
}

type WebhookListResponse struct {
	Count      int             `json:"count"`
	TotalCount int             `json:"total_count"`
	HasMore    bool            `json:"has_more"`
	Webhooks   []WebhookDetail `json:"webhooks"`
}
