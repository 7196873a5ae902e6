package handler

import (
	"net/http"

	"eventreg/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type PaymentHandler struct {
	svc *service.PaymentService
	log *zerolog.Logger
}

func NewPaymentHandler(svc *service.PaymentService, log *zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, log: log}
}

// Retry handles POST /payments/retry.
func (h *PaymentHandler) Retry(c *gin.Context) {
	var req struct {
		Reference string `json:"reference"`
	}
	if !bindJSON(c, &req) {
		return
	}
	checkout, err := h.svc.Retry(c.Request.Context(), req.Reference)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Payment link generated",
		"payment_url": checkout.AuthorizationURL,
		"reference":   checkout.Reference,
	})
}

// List handles GET /admin/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.svc.ListEventPayments(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, "Payments retrieved successfully", list, total, page, limit)
}

// Get handles GET /admin/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.GetEventPayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment retrieved successfully", "data": p})
}
