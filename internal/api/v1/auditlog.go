package v1

import (
	"net/http"

	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/service"
	"github.com/flexprice/assignments/internal/types"
	"github.com/gin-gonic/gin"
)

type AuditLogHandler struct {
	service service.AuditLogService
	log     *logger.Logger
}

func NewAuditLogHandler(service service.AuditLogService, log *logger.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		service: service,
		log:     log,
	}
}

// @Summary List audit logs
// @Description List the recorded customer assignment changes
// @Tags Audit Logs
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.AuditLogFilter false "Filter"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /audit-logs [get]
func (h *AuditLogHandler) ListAuditLogs(c *gin.Context) {
	var filter types.AuditLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListAuditLogs(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
