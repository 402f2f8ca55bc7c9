package forward

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/BigDaddyAman/webhook-catcher/internal/models"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// sensitiveHeaders are never copied onto the forwarded request.
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"x-api-key":     true,
	"api-key":       true,
}

type Result struct {
	Status         string `json:"status"`
	TargetURL      string `json:"target_url,omitempty"`
	ResponseStatus int    `json:"response_status,omitempty"`
	ResponseTimeMs int64  `json:"response_time_ms,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Forwarder relays freshly ingested webhooks to a fixed downstream URL.
// Delivery is best effort: one attempt, bounded timeout, failures are
// logged and never surfaced to the original sender.
type Forwarder struct {
	url    string
	token  string
	client *http.Client
}

func NewForwarder(url, token string) *Forwarder {
	return &Forwarder{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

func (f *Forwarder) Enabled() bool {
	return f != nil && f.url != ""
}

// Forward sends the webhook's raw body downstream using the method it was
// originally received with.
func (f *Forwarder) Forward(w *models.Webhook) Result {
	if !f.Enabled() {
		return Result{Status: "disabled"}
	}

	req, err := http.NewRequest(w.Method, f.url, bytes.NewReader(w.Body))
	if err != nil {
		return f.failure(fmt.Sprintf("error creating forward request: %v", err))
	}

	if w.ContentType != "" {
		req.Header.Set("Content-Type", w.ContentType)
	}
	req.Header.Set("X-Forwarded-From", w.Path)
	req.Header.Set("X-Webhook-Delivery", uuid.NewString())
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	// Copy the original headers under an X-Original- prefix, minus anything
	// sensitive.
	var headers map[string][]string
	if err := json.Unmarshal([]byte(w.Headers), &headers); err == nil {
		for key, values := range headers {
			if sensitiveHeaders[strings.ToLower(key)] {
				continue
			}
			for _, value := range values {
				req.Header.Add("X-Original-"+key, value)
			}
		}
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return f.failure(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result := f.failure(fmt.Sprintf("received status code: %d", resp.StatusCode))
		result.ResponseStatus = resp.StatusCode
		result.ResponseTimeMs = elapsed
		return result
	}

	return Result{
		Status:         "success",
		TargetURL:      f.url,
		ResponseStatus: resp.StatusCode,
		ResponseTimeMs: elapsed,
	}
}

// ForwardAsync dispatches forwarding on its own goroutine so a slow
// downstream cannot stall the ingestion response.
func (f *Forwarder) ForwardAsync(w *models.Webhook) {
	if !f.Enabled() {
		return
	}
	go func() {
		result := f.Forward(w)
		if result.Status != "success" {
			log.Printf("Failed to forward webhook %d to %s: %s", w.ID, f.url, result.Error)
		} else {
			log.Printf("Forwarded webhook %d to %s (%d, %dms)", w.ID, f.url, result.ResponseStatus, result.ResponseTimeMs)
		}
	}()
}

func (f *Forwarder) failure(msg string) Result {
	return Result{Status: "error", TargetURL: f.url, Error: msg}
}
