package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary Health check
// @Description Reports store reachability and whether admin protection is active
// @Tags status
// @Produce json
// @Success 200 {object} object{status=string,admin_protected=bool}
// @Failure 503 {object} object{status=string,error=string}
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"admin_protected": h.cfg.AdminProtected(),
	})
}

// ConfigStatus godoc
// @Summary Configuration status
// @Tags status
// @Produce json
// @Success 200 {object} object{forwarding_enabled=bool,admin_protection_enabled=bool,total_webhooks=int}
// @Router /config [get]
func (h *Handler) ConfigStatus(c *gin.Context) {
	totalWebhooks, err := h.store.Count("")
	if err != nil {
		log.Printf("Failed to count webhooks for config status: %v", err)
		totalWebhooks = 0
	}

	var forwardingURL interface{}
	if h.cfg.ForwardingEnabled() {
		forwardingURL = h.cfg.Forward.URL
	}

	c.JSON(http.StatusOK, gin.H{
		"forwarding_enabled":       h.cfg.ForwardingEnabled(),
		"forwarding_url":           forwardingURL,
		"authentication_enabled":   h.cfg.Forward.Token != "",
		"admin_protection_enabled": h.cfg.AdminProtected(),
		"total_webhooks":           totalWebhooks,
	})
}
