package handler

import (
	"net/http"
	"strconv"
	"strings"

	"eventreg/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NotificationHandler exposes the email delivery log and the raw webhook log
// for support staff tracing a payer's history.
type NotificationHandler struct {
	notifications *repository.NotificationRepository
	webhooks      *repository.WebhookEventRepository
	log           *zerolog.Logger
}

func NewNotificationHandler(notifications *repository.NotificationRepository, webhooks *repository.WebhookEventRepository, log *zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, webhooks: webhooks, log: log}
}

// List handles GET /admin/notifications?email=.
func (h *NotificationHandler) List(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := h.notifications.ListByRecipient(c.Request.Context(), email, limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// WebhookEvents handles GET /admin/webhook-events?reference=.
func (h *NotificationHandler) WebhookEvents(c *gin.Context) {
	ref := strings.TrimSpace(c.Query("reference"))
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "reference is required"})
		return
	}
	list, err := h.webhooks.ListByReference(c.Request.Context(), ref)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}
