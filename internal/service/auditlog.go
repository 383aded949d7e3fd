package service

import (
	"context"

	"github.com/flexprice/assignments/internal/api/dto"
	"github.com/flexprice/assignments/internal/domain/auditlog"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
)

type AuditLogService interface {
	ListAuditLogs(ctx context.Context, filter *types.AuditLogFilter) (*dto.ListAuditLogsResponse, error)
}

type auditLogService struct {
	ServiceParams
}

func NewAuditLogService(params ServiceParams) AuditLogService {
	return &auditLogService{
		ServiceParams: params,
	}
}

func (s *auditLogService) ListAuditLogs(ctx context.Context, filter *types.AuditLogFilter) (*dto.ListAuditLogsResponse, error) {
	if filter == nil {
		filter = types.NewAuditLogFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation)
	}

	entries, err := s.AuditLogRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.AuditLogRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(entries, func(e *auditlog.Entry, _ int) *dto.AuditLogResponse {
		return &dto.AuditLogResponse{Entry: e}
	})

	response := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}
