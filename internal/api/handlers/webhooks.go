package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/BigDaddyAman/webhook-catcher/internal/models"
	"github.com/BigDaddyAman/webhook-catcher/internal/storage"
	"github.com/gin-gonic/gin"
)

const defaultListLimit = 50

// HandleWebhook godoc
// @Summary Capture incoming webhook
// @Description Accept any method and content type, store the request verbatim and acknowledge with the assigned id
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} object{status=string,id=int}
// @Failure 413 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /webhook [post]
func (h *Handler) HandleWebhook(c *gin.Context) {
	var bodyBytes []byte
	if c.Request.Body != nil {
		limited := http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Server.MaxBodyBytes)
		var err error
		bodyBytes, err = io.ReadAll(limited)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read request body"})
			return
		}
	}

	webhook := models.Webhook{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     getHeadersAsJSON(c.Request.Header),
		QueryParams: getQueryAsJSON(c.Request.URL.Query()),
		ContentType: c.ContentType(),
		Body:        bodyBytes,
		SourceIP:    extractSourceIP(c.Request),
		EventType:   extractEventType(c.Request.Header),
	}

	id, err := h.store.Insert(&webhook)
	if err != nil {
		log.Printf("Failed to store webhook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store webhook"})
		return
	}
	webhook.ID = id

	// The sender is acknowledged regardless of what forwarding does.
	h.forwarder.ForwardAsync(&webhook)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"id":     id,
	})
}

// ListWebhooks godoc
// @Summary List captured webhooks
// @Description List stored webhooks newest first, with optional substring search over body, path and headers
// @Tags webhooks
// @Produce json
// @Param limit query int false "Maximum rows to return" default(50)
// @Param offset query int false "Rows to skip" default(0)
// @Param q query string false "Search term"
// @Success 200 {object} models.WebhookListResponse
// @Failure 500 {object} object{error=string}
// @Router /webhooks [get]
func (h *Handler) ListWebhooks(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil || limit <= 0 {
		limit = defaultListLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	search := c.Query("q")

	totalCount, err := h.store.Count(search)
	if err != nil {
		log.Printf("Failed to count webhooks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	webhooks, err := h.store.List(limit, offset, search)
	if err != nil {
		log.Printf("Failed to list webhooks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	details := make([]models.WebhookDetail, 0, len(webhooks))
	for i := range webhooks {
		details = append(details, toDetail(&webhooks[i]))
	}

	c.JSON(http.StatusOK, models.WebhookListResponse{
		Count:      len(details),
		TotalCount: totalCount,
		HasMore:    offset+len(details) < totalCount,
		Webhooks:   details,
	})
}

// GetWebhook godoc
// @Summary Get a captured webhook
// @Description Full detail of one stored webhook, body byte-exact
// @Tags webhooks
// @Produce json
// @Param id path int true "Webhook ID"
// @Success 200 {object} models.WebhookDetail
// @Failure 404 {object} object{error=string}
// @Router /webhooks/{id} [get]
func (h *Handler) GetWebhook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook id"})
		return
	}

	webhook, err := h.store.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Webhook not found"})
		return
	} else if err != nil {
		log.Printf("Failed to load webhook %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toDetail(webhook))
}
