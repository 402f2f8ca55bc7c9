package handlers

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/BigDaddyAman/webhook-catcher/internal/models"
	"github.com/gin-gonic/gin"
)

// ExportWebhooks godoc
// @Summary Export all captured webhooks
// @Tags webhooks
// @Produce json
// @Param format query string false "Export format" Enums(json, csv) default(json)
// @Success 200 {array} models.WebhookDetail
// @Failure 500 {object} object{error=string}
// @Router /export [get]
func (h *Handler) ExportWebhooks(c *gin.Context) {
	webhooks, err := h.store.List(0, 0, "")
	if err != nil {
		log.Printf("Failed to export webhooks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if c.DefaultQuery("format", "json") == "csv" {
		exportCSV(c, webhooks)
		return
	}

	details := make([]models.WebhookDetail, 0, len(webhooks))
	for i := range webhooks {
		details = append(details, toDetail(&webhooks[i]))
	}

	payload, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode export"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=webhooks.json")
	c.Header("X-Total-Count", strconv.Itoa(len(details)))
	c.Data(http.StatusOK, "application/json", payload)
}

func exportCSV(c *gin.Context, webhooks []models.Webhook) {
	c.Header("Content-Disposition", "attachment; filename=webhooks.csv")
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{"id", "received_at", "method", "path", "content_type", "source_ip", "event_type", "headers", "body"})

	for i := range webhooks {
		w := &webhooks[i]
		writer.Write([]string{
			strconv.FormatInt(w.ID, 10),
			w.ReceivedAt.Format(time.RFC3339Nano),
			w.Method,
			w.Path,
			w.ContentType,
			w.SourceIP,
			w.EventType,
			w.Headers,
			string(w.Body),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("Failed to write CSV export: %v", err)
	}
}
