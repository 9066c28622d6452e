package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dnc-ph/clinic-backend/internal/services"
	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// AuditHandler exposes read access to the audit trail.
type AuditHandler struct {
	service *services.AuditService
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(service *services.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// GET /api/audit-logs
func (h *AuditHandler) List(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "page_size", 50)

	filters := services.AuditFilters{
		Email:    c.Query("email"),
		Action:   c.Query("action"),
		Result:   c.Query("result"),
		Resource: c.Query("resource"),
	}
	if since := parseTimeQuery(c, "since"); since != nil {
		filters.Since = since
	}
	if until := parseTimeQuery(c, "until"); until != nil {
		filters.Until = until
	}

	logs, total, err := h.service.List(c.Request.Context(), services.AuditListOptions{
		Page:     page,
		PageSize: perPage,
		Filters:  filters,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, logs, response.NewMeta(page, perPage, total))
}

func parseTimeQuery(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &parsed
}
