package replay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BigDaddyAman/webhook-catcher/internal/models"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyExcerpt = 512
)

// ErrInvalidTarget is returned when the replay target is not a well-formed
// http or https URL.
var ErrInvalidTarget = errors.New("invalid target URL")

// hopByHopHeaders are tied to the original connection and never replayed.
var hopByHopHeaders = map[string]bool{
	"host":           true,
	"content-length": true,
	"connection":     true,
}

type Result struct {
	WebhookID      int64  `json:"webhook_id"`
	TargetURL      string `json:"target_url"`
	ResponseStatus int    `json:"response_status"`
	BodyExcerpt    string `json:"body_excerpt,omitempty"`
	LatencyMs      int64  `json:"latency_ms"`
}

// Replayer re-sends stored webhooks to caller-supplied targets. One attempt
// per call; downstream failures are reported, not retried.
type Replayer struct {
	client *http.Client
}

func NewReplayer() *Replayer {
	return &Replayer{client: &http.Client{Timeout: defaultTimeout}}
}

// ValidateTarget checks that target is an absolute http(s) URL.
func ValidateTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return ErrInvalidTarget
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidTarget
	}
	return nil
}

// Replay sends the webhook's stored raw body to target using the original
// method and headers, minus hop-by-hop headers. The returned error wraps
// the downstream failure when the call itself could not complete.
func (r *Replayer) Replay(w *models.Webhook, target string) (*Result, error) {
	if err := ValidateTarget(target); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(w.Method, target, bytes.NewReader(w.Body))
	if err != nil {
		return nil, fmt.Errorf("error building replay request: %v", err)
	}

	var headers map[string][]string
	if err := json.Unmarshal([]byte(w.Headers), &headers); err == nil {
		for key, values := range headers {
			if hopByHopHeaders[strings.ToLower(key)] {
				continue
			}
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return nil, fmt.Errorf("replay to %s failed: %v", target, err)
	}
	defer resp.Body.Close()

	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyExcerpt))

	return &Result{
		WebhookID:      w.ID,
		TargetURL:      target,
		ResponseStatus: resp.StatusCode,
		BodyExcerpt:    string(excerpt),
		LatencyMs:      latency,
	}, nil
}
