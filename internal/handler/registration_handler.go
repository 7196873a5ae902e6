package handler

import (
	"errors"
	"net/http"

	"eventreg/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type RegistrationHandler struct {
	svc *service.RegistrationService
	log *zerolog.Logger
}

func NewRegistrationHandler(svc *service.RegistrationService, log *zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, log: log}
}

type registerRequest struct {
	FirstName    string `json:"first_name" binding:"required,max=100,personname"`
	LastName     string `json:"last_name" binding:"required,max=100,personname"`
	Email        string `json:"email" binding:"required,email,max=100"`
	Phone        string `json:"phone" binding:"required,ngphone"`
	Department   string `json:"department" binding:"required,max=100,department"`
	LevelOfStudy int    `json:"level_of_study" binding:"required,studylevel"`
	Category     string `json:"category" binding:"required,oneof=beginner intermediate advanced"`
}

// Register handles POST /registrations.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Department:   req.Department,
		LevelOfStudy: req.LevelOfStudy,
		Category:     req.Category,
	})
	if errors.Is(err, service.ErrAlreadyRegistered) && res != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": service.PublicMessage(err),
			"data":    gin.H{"paid": res.Attendee.Paid},
		})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	body := gin.H{
		"payment_url": res.Checkout.AuthorizationURL,
		"reference":   res.Checkout.Reference,
		"data":        res.Attendee,
	}
	if res.Outcome == service.OutcomeResumed {
		body["success"] = false
		body["message"] = "Incomplete registration found. Please complete your payment."
		c.JSON(http.StatusOK, body)
		return
	}
	body["success"] = true
	body["message"] = "Registration successful. Please complete your payment."
	c.JSON(http.StatusCreated, body)
}

// CheckEmail handles POST /registrations/check-email.
func (h *RegistrationHandler) CheckEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.svc.CheckEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": st})
}
