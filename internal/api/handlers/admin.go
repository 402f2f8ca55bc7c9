package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/BigDaddyAman/webhook-catcher/internal/replay"
	"github.com/BigDaddyAman/webhook-catcher/internal/storage"
	"github.com/gin-gonic/gin"
)

// ClearWebhooks godoc
// @Summary Delete all captured webhooks
// @Tags admin
// @Produce json
// @Param X-Admin-Token header string false "Admin token"
// @Success 200 {object} object{status=string,removed=int}
// @Failure 401 {object} object{error=string}
// @Router /clear [post]
func (h *Handler) ClearWebhooks(c *gin.Context) {
	removed, err := h.store.ClearAll()
	if err != nil {
		log.Printf("Failed to clear webhooks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear webhooks"})
		return
	}

	log.Printf("Cleared %d webhooks", removed)
	c.JSON(http.StatusOK, gin.H{
		"status":  "cleared",
		"removed": removed,
	})
}

// ReplayWebhook godoc
// @Summary Replay a captured webhook to a target URL
// @Description Re-send the originally captured body and headers to target_url using the original method
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Webhook ID"
// @Param target_url query string false "Replay target URL (may also be sent as JSON body)"
// @Param X-Admin-Token header string false "Admin token"
// @Success 200 {object} object{status=string,response_status=int}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 502 {object} object{status=string,error=string}
// @Router /replay/{id} [post]
func (h *Handler) ReplayWebhook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook id"})
		return
	}

	targetURL := c.Query("target_url")
	if targetURL == "" {
		var body struct {
			TargetURL string `json:"target_url"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			targetURL = body.TargetURL
		}
	}

	if targetURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "target_url is required. Provide it as a query parameter (?target_url=...) or in request body as JSON {\"target_url\": \"...\"}",
		})
		return
	}

	if err := replay.ValidateTarget(targetURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target URL. Must be http(s)://..."})
		return
	}

	webhook, err := h.store.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Webhook not found"})
		return
	} else if err != nil {
		log.Printf("Failed to load webhook %d for replay: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	result, err := h.replayer.Replay(webhook, targetURL)
	if errors.Is(err, replay.ErrInvalidTarget) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target URL. Must be http(s)://..."})
		return
	} else if err != nil {
		log.Printf("Replay of webhook %d to %s failed: %v", id, targetURL, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"status":     "replay_failed",
			"webhook_id": id,
			"target_url": targetURL,
			"error":      err.Error(),
		})
		return
	}

	if result.ResponseStatus < 200 || result.ResponseStatus >= 300 {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":          "replay_failed",
			"webhook_id":      result.WebhookID,
			"target_url":      result.TargetURL,
			"response_status": result.ResponseStatus,
			"body_excerpt":    result.BodyExcerpt,
			"latency_ms":      result.LatencyMs,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "replayed",
		"webhook_id":      result.WebhookID,
		"target_url":      result.TargetURL,
		"response_status": result.ResponseStatus,
		"body_excerpt":    result.BodyExcerpt,
		"latency_ms":      result.LatencyMs,
	})
}
