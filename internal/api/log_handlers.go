package api

import (
	"net/http"
	"strconv"

	"github.com/wolfbtcc/Zenithdefi/internal/service"

	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	logService service.LogService
}

func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// @Summary Get the current user's activity log
// @Description Retrieves the audit log entries recorded for the logged-in user, newest first
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Entries per page (default 50)"
// @Success 200 {array} models.LogEntry
// @Failure 500 {object} map[string]string "Failed to retrieve logs"
// @Router /activity [get]
func (h *LogHandler) GetActivity(c *gin.Context) {
	email := c.GetString("email")
	page, limit := pagination(c)

	logs, err := h.logService.GetLogsByEmail(email, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// @Summary Get all logs
// @Description Retrieves a page of the platform-wide audit log (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Entries per page (default 50)"
// @Success 200 {array} models.LogEntry
// @Failure 403 {object} map[string]string "Forbidden (non-admin)"
// @Failure 500 {object} map[string]string "Failed to retrieve logs"
// @Router /admin/logs [get]
func (h *LogHandler) GetAllLogs(c *gin.Context) {
	page, limit := pagination(c)

	logs, err := h.logService.GetAllLogs(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func pagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}
	return page, limit
}
