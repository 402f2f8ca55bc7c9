package storage

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/BigDaddyAman/webhook-catcher/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *WebhookStore {
	t.Helper()

	db, err := NewDB(Config{Path: filepath.Join(t.TempDir(), "webhooks.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return NewWebhookStore(db)
}

func sampleWebhook(body string) *models.Webhook {
	return &models.Webhook{
		Method:      "POST",
		Path:        "/webhook",
		Headers:     `{"Content-Type":["application/json"]}`,
		QueryParams: `{}`,
		ContentType: "application/json",
		Body:        []byte(body),
		SourceIP:    "10.0.0.1",
	}
}

func TestInitSchemaIdempotent(t *testing.T) {
	db, err := NewDB(Config{Path: filepath.Join(t.TempDir(), "sub", "dir", "webhooks.db")})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, InitSchema(db))
	require.NoError(t, InitSchema(db))
}

func TestInsertAndGet(t *testing.T) {
	store := newTestStore(t)

	raw := []byte(`{"event":"push"}`)
	w := sampleWebhook(string(raw))
	w.EventType = "push"

	id, err := store.Insert(w)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/webhook", got.Path)
	assert.Equal(t, raw, got.Body)
	assert.Equal(t, "push", got.EventType)
	assert.False(t, got.ReceivedAt.IsZero())
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRawBodyPreservedVerbatim(t *testing.T) {
	store := newTestStore(t)

	// Invalid JSON and non-UTF-8 bytes must round-trip untouched
	raw := []byte("{not json\x00\xff\xfe")
	w := sampleWebhook("")
	w.Body = raw

	id, err := store.Insert(w)
	require.NoError(t, err)

	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, raw, got.Body)
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := store.Insert(sampleWebhook(fmt.Sprintf(`{"n":%d}`, i)))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	webhooks, err := store.List(10, 0, "")
	require.NoError(t, err)
	require.Len(t, webhooks, 5)
	for i := range webhooks {
		assert.Equal(t, ids[len(ids)-1-i], webhooks[i].ID)
	}

	page, err := store.List(2, 2, "")
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
}

func TestListSearch(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Insert(sampleWebhook(`{"kind":"deployment"}`))
	require.NoError(t, err)
	_, err = store.Insert(sampleWebhook(`{"kind":"payment"}`))
	require.NoError(t, err)

	matched, err := store.List(10, 0, "deployment")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Contains(t, string(matched[0].Body), "deployment")

	count, err := store.Count("deployment")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	none, err := store.List(10, 0, "no-such-term")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestClearAllKeepsIDHighWaterMark(t *testing.T) {
	store := newTestStore(t)

	var lastID int64
	for i := 0; i < 3; i++ {
		id, err := store.Insert(sampleWebhook(`{}`))
		require.NoError(t, err)
		lastID = id
	}

	removed, err := store.ClearAll()
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	count, err := store.Count("")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The store stays usable and ids never restart from 1
	id, err := store.Insert(sampleWebhook(`{}`))
	require.NoError(t, err)
	assert.Greater(t, id, lastID)
}

func TestConcurrentInsertsAssignContiguousIDs(t *testing.T) {
	store := newTestStore(t)

	const n = 25
	ids := make(chan int64, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := store.Insert(sampleWebhook(fmt.Sprintf(`{"n":%d}`, i)))
			assert.NoError(t, err)
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	min := int64(0)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
		if min == 0 || id < min {
			min = id
		}
	}

	require.Len(t, seen, n)
	for k := min; k < min+n; k++ {
		assert.True(t, seen[k], "gap in id sequence at %d", k)
	}
}
