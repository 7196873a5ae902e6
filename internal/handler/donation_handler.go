package handler

import (
	"net/http"

	"eventreg/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type DonationHandler struct {
	svc *service.DonationService
	log *zerolog.Logger
}

func NewDonationHandler(svc *service.DonationService, log *zerolog.Logger) *DonationHandler {
	return &DonationHandler{svc: svc, log: log}
}

type donorRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100,personname"`
	LastName  string `json:"last_name" binding:"required,max=100,personname"`
	Email     string `json:"email" binding:"required,email,max=100"`
	Phone     string `json:"phone" binding:"required,ngphone"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

func (r donorRequest) input() service.DonorInput {
	return service.DonorInput{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Phone: r.Phone, Amount: r.Amount}
}

// Create handles POST /donations.
func (h *DonationHandler) Create(c *gin.Context) {
	var req donorRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Donate(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Donation initiated. Please complete your payment.",
		"payment_url": res.Checkout.AuthorizationURL,
		"reference":   res.Checkout.Reference,
		"data":        res.Donor,
	})
}

// ListDonors handles GET /admin/donors.
func (h *DonationHandler) ListDonors(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, "Donors retrieved successfully", list, total, page, limit)
}

// GetDonor handles GET /admin/donors/:id.
func (h *DonationHandler) GetDonor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Donor retrieved successfully", "data": d})
}

// UpdateDonor handles PUT /admin/donors/:id.
func (h *DonationHandler) UpdateDonor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req donorRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.svc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Donor updated successfully", "data": d})
}

// DeleteDonor handles DELETE /admin/donors/:id.
func (h *DonationHandler) DeleteDonor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Donor deleted successfully"})
}

// ListDonations handles GET /admin/donations.
func (h *DonationHandler) ListDonations(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.svc.ListDonations(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, "Donations retrieved successfully", list, total, page, limit)
}
