package handler

import (
	"net/http"
	"strconv"

	"eventreg/internal/service"
	"eventreg/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError writes the caller-safe form of err. Unclassified errors are
// logged and reported with a generic message.
func respondError(c *gin.Context, log *zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindValidation, service.KindConflict:
		status = http.StatusBadRequest
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindUnauthorized:
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"success": false, "message": service.PublicMessage(err)})
}

// bindJSON decodes and validates the body into dst, answering 400 itself on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if fields := validator.FieldErrors(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation error occurred",
			"errors":  fields,
		})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
	return false
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func respondList(c *gin.Context, message string, data interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
