package replay

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BigDaddyAman/webhook-catcher/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedWebhook(body []byte) *models.Webhook {
	return &models.Webhook{
		ID:          3,
		Method:      "PUT",
		Path:        "/webhook",
		Headers:     `{"X-Custom":["abc"],"Host":["original.example"],"Content-Length":["999"],"Connection":["keep-alive"]}`,
		ContentType: "application/json",
		Body:        body,
	}
}

func TestValidateTarget(t *testing.T) {
	assert.NoError(t, ValidateTarget("http://example.com/hook"))
	assert.NoError(t, ValidateTarget("https://example.com"))

	for _, target := range []string{"", "example.com/hook", "ftp://example.com", "http://", "://bad"} {
		assert.ErrorIs(t, ValidateTarget(target), ErrInvalidTarget, "target %q", target)
	}
}

func TestReplaySendsOriginalBytesAndMethod(t *testing.T) {
	raw := []byte("{invalid json\x00\xff")

	var gotMethod string
	var gotBody []byte
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("downstream says hi"))
	}))
	defer server.Close()

	r := NewReplayer()
	result, err := r.Replay(storedWebhook(raw), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "PUT", gotMethod)
	assert.Equal(t, raw, gotBody, "replayed body must be byte-identical to the captured body")
	assert.Equal(t, "abc", gotHeader.Get("X-Custom"))
	assert.Empty(t, gotHeader.Get("Connection"))

	assert.Equal(t, int64(3), result.WebhookID)
	assert.Equal(t, http.StatusAccepted, result.ResponseStatus)
	assert.Equal(t, "downstream says hi", result.BodyExcerpt)
}

func TestReplayInvalidTarget(t *testing.T) {
	r := NewReplayer()
	_, err := r.Replay(storedWebhook([]byte(`{}`)), "not-a-url")
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestReplayConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	r := NewReplayer()
	_, err := r.Replay(storedWebhook([]byte(`{}`)), server.URL)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidTarget)
}
