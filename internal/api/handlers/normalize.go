package handlers

import (
	"encoding/base64"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/BigDaddyAman/webhook-catcher/internal/models"
)

func getHeadersAsJSON(headers http.Header) string {
	jsonBytes, _ := json.Marshal(headers)
	return string(jsonBytes)
}

func getQueryAsJSON(values url.Values) string {
	jsonBytes, _ := json.Marshal(values)
	return string(jsonBytes)
}

func extractSourceIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	return r.RemoteAddr
}

func extractEventType(headers http.Header) string {
	if event := headers.Get("X-GitHub-Event"); event != "" {
		return event
	}
	return headers.Get("X-Event-Type")
}

// parseBody derives the structured view of a raw body from its content
// type. Anything that fails to parse yields nil; ingestion never depends
// on the outcome.
func parseBody(body []byte, contentType string) interface{} {
	if len(body) == 0 {
		return nil
	}

	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil
		}
		return parsed
	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil
		}
		return values
	default:
		return nil
	}
}

// toDetail expands a stored record into its response shape. The body is
// emitted verbatim as a string, or base64 when it is not valid UTF-8.
func toDetail(w *models.Webhook) models.WebhookDetail {
	detail := models.WebhookDetail{
		ID:          w.ID,
		ReceivedAt:  w.ReceivedAt,
		Method:      w.Method,
		Path:        w.Path,
		ContentType: w.ContentType,
		SourceIP:    w.SourceIP,
		EventType:   w.EventType,
		BodyParsed:  parseBody(w.Body, w.ContentType),
	}

	json.Unmarshal([]byte(w.Headers), &detail.Headers)
	json.Unmarshal([]byte(w.QueryParams), &detail.QueryParams)

	if utf8.Valid(w.Body) {
		detail.Body = string(w.Body)
	} else {
		detail.BodyBase64 = base64.StdEncoding.EncodeToString(w.Body)
	}

	return detail
}
