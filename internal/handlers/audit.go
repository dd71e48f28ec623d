package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/audit"
)

// ListAuditLogs answers GET /logs?entityType=&username=. Both filters are
// optional.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	f := audit.Filter{
		EntityType: strings.TrimSpace(c.Query("entityType")),
		Username:   strings.TrimSpace(c.Query("username")),
	}

	logs, err := h.audit.Query(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, logs)
}
