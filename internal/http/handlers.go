package http

import (
	"net/http"

	"github.com/chimpctl/chimpctl/internal/app"
	"github.com/chimpctl/chimpctl/internal/config"
	"github.com/chimpctl/chimpctl/internal/services/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler contains the HTTP handlers for Mailchimp webhook callbacks.
type Handler struct {
	container *app.Container
	config    *config.Config
	logger    *logrus.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(container *app.Container) *Handler {
	return &Handler{
		container: container,
		config:    container.Config,
		logger:    container.Logger,
	}
}

// WebhookGet answers Mailchimp's URL-verification probe.
func (h *Handler) WebhookGet(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// WebhookPost handles a webhook event delivery. Events arrive form-encoded.
func (h *Handler) WebhookPost(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed form payload"})
		return
	}

	event, err := events.ParseForm(c.Request.PostForm)
	if err != nil {
		h.logger.Warnf("rejected webhook delivery: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := h.logger.WithFields(logrus.Fields{
		"type":     event.Type,
		"fired_at": event.FiredAt,
	})
	for key, value := range event.Data {
		entry = entry.WithField("data."+key, value)
	}

	if event.IsKnown() {
		entry.Info("received webhook event")
	} else {
		entry.Warn("received webhook event of unknown type")
	}

	c.Status(http.StatusOK)
}
