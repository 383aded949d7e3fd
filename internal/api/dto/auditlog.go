package dto

import (
	"github.com/flexprice/assignments/internal/domain/auditlog"
	"github.com/flexprice/assignments/internal/types"
)

type AuditLogResponse struct {
	*auditlog.Entry
}

// ListAuditLogsResponse represents the response for listing audit log entries
type ListAuditLogsResponse = types.ListResponse[*AuditLogResponse]
