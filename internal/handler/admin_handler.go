package handler

import (
	"net/http"
	"strconv"

	"eventreg/internal/domain"
	"eventreg/internal/repository"
	"eventreg/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AdminHandler struct {
	adminRepo     *repository.AdminRepository
	settingRepo   *repository.SettingRepository
	registrations *service.RegistrationService
	log           *zerolog.Logger
}

func NewAdminHandler(
	adminRepo *repository.AdminRepository,
	settingRepo *repository.SettingRepository,
	registrations *service.RegistrationService,
	log *zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminRepo:     adminRepo,
		settingRepo:   settingRepo,
		registrations: registrations,
		log:           log,
	}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminRepo.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// ListAttendees handles GET /admin/attendees.
func (h *AdminHandler) ListAttendees(c *gin.Context) {
	var paid *bool
	if v := c.Query("paid"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "paid must be true or false"})
			return
		}
		paid = &b
	}
	page, limit := parsePagination(c)
	list, total, err := h.adminRepo.ListAttendees(c.Request.Context(), c.Query("search"), paid, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, "Attendees retrieved successfully", list, total, page, limit)
}

// GetAttendee handles GET /admin/attendees/:id. The id may also be a registration ID.
func (h *AdminHandler) GetAttendee(c *gin.Context) {
	a, err := h.registrations.GetAttendee(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": a})
}

// GetSettings handles GET /admin/settings.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	list, err := h.settingRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make(map[string]string, len(list))
	for _, s := range list {
		out[s.Key] = s.Value
	}
	out[domain.SettingRegistrationFee] = strconv.FormatInt(h.registrations.Fee(c.Request.Context()), 10)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

// UpdateSettings handles PUT /admin/settings.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		Settings map[string]string `json:"settings" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if v, ok := req.Settings[domain.SettingRegistrationFee]; ok {
		if fee, err := strconv.ParseInt(v, 10, 64); err != nil || fee <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "registration_fee_minor must be a positive integer"})
			return
		}
	}
	for k, v := range req.Settings {
		if err := h.settingRepo.Set(c.Request.Context(), k, v); err != nil {
			respondError(c, h.log, err)
			return
		}
	}
	h.log.Info().Str("by", c.GetString("email")).Int("count", len(req.Settings)).Msg("settings updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings updated"})
}
