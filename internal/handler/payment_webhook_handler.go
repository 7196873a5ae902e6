package handler

import (
	"io"
	"net/http"

	"eventreg/internal/service"
	"eventreg/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxWebhookBody = 1 << 20

type PaymentWebhookHandler struct {
	svc *service.WebhookService
	log *zerolog.Logger
}

func NewPaymentWebhookHandler(svc *service.WebhookService, log *zerolog.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{svc: svc, log: log}
}

// Handle receives Paystack charge events. The body is read raw so the
// signature is checked against the exact bytes sent.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
		return
	}
	res, err := h.svc.Receive(c.Request.Context(), body, c.GetHeader(payment.SignatureHeader))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	switch res.Outcome {
	case service.OutcomePaid:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": res.Message, "reference": res.Reference})
	case service.OutcomeFailed:
		c.JSON(http.StatusOK, gin.H{"success": false, "message": res.Message, "reference": res.Reference})
	case service.OutcomeIgnored:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event ignored"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event already processed", "reference": res.Reference})
	}
}
