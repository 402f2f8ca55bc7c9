package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BigDaddyAman/webhook-catcher/internal/models"
)

// ErrNotFound is returned when a lookup id does not match any stored webhook.
var ErrNotFound = errors.New("webhook not found")

// WebhookStore owns all access to the webhooks table. Id assignment is
// delegated to sqlite's AUTOINCREMENT, which serializes allocation across
// concurrent inserts and keeps counting from the high-water mark after a
// clear.
type WebhookStore struct {
	db *sql.DB
}

func NewWebhookStore(db *sql.DB) *WebhookStore {
	return &WebhookStore{db: db}
}

// Insert persists a new webhook, assigns its id and receipt time and
// returns the id. The record passed in is not mutated.
func (s *WebhookStore) Insert(w *models.Webhook) (int64, error) {
	receivedAt := time.Now().UTC()

	res, err := s.db.Exec(`
        INSERT INTO webhooks (received_at, method, path, headers, query_params, content_type, body, source_ip, event_type)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receivedAt,
		w.Method,
		w.Path,
		w.Headers,
		w.QueryParams,
		w.ContentType,
		w.Body,
		w.SourceIP,
		w.EventType,
	)
	if err != nil {
		return 0, fmt.Errorf("error inserting webhook: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading inserted webhook id: %v", err)
	}

	return id, nil
}

func (s *WebhookStore) Get(id int64) (*models.Webhook, error) {
	var w models.Webhook
	err := s.db.QueryRow(`
        SELECT id, received_at, method, path, headers, query_params, content_type, body, source_ip, event_type
        FROM webhooks
        WHERE id = ?`, id).Scan(
		&w.ID,
		&w.ReceivedAt,
		&w.Method,
		&w.Path,
		&w.Headers,
		&w.QueryParams,
		&w.ContentType,
		&w.Body,
		&w.SourceIP,
		&w.EventType,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error loading webhook %d: %v", id, err)
	}

	return &w, nil
}

// List returns webhooks newest first. A non-positive limit means no limit.
// When search is non-empty, rows are filtered by a substring match over
// body, path and headers.
func (s *WebhookStore) List(limit, offset int, search string) ([]models.Webhook, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT id, received_at, method, path, headers, query_params, content_type, body, source_ip, event_type
        FROM webhooks`
	var args []interface{}

	if search != "" {
		query += ` WHERE body LIKE ? OR path LIKE ? OR headers LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query += ` ORDER BY id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing webhooks: %v", err)
	}
	defer rows.Close()

	var webhooks []models.Webhook
	for rows.Next() {
		var w models.Webhook
		err := rows.Scan(
			&w.ID,
			&w.ReceivedAt,
			&w.Method,
			&w.Path,
			&w.Headers,
			&w.QueryParams,
			&w.ContentType,
			&w.Body,
			&w.SourceIP,
			&w.EventType,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning webhook row: %v", err)
		}
		webhooks = append(webhooks, w)
	}

	return webhooks, rows.Err()
}

// Count returns the number of stored webhooks matching search, or all of
// them when search is empty.
func (s *WebhookStore) Count(search string) (int, error) {
	query := `SELECT COUNT(*) FROM webhooks`
	var args []interface{}

	if search != "" {
		query += ` WHERE body LIKE ? OR path LIKE ? OR headers LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting webhooks: %v", err)
	}

	return count, nil
}

// ClearAll deletes every stored webhook and returns the number of rows
// removed. Id allocation is not reset.
func (s *WebhookStore) ClearAll() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM webhooks`)
	if err != nil {
		return 0, fmt.Errorf("error clearing webhooks: %v", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading cleared row count: %v", err)
	}

	return removed, nil
}

// Ping reports whether the underlying database is reachable.
func (s *WebhookStore) Ping() error {
	return s.db.Ping()
}
