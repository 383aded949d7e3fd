package service

import (
	"context"

	"github.com/flexprice/assignments/internal/api/dto"
	"github.com/flexprice/assignments/internal/domain/assignment"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	"github.com/getsentry/sentry-go"
)

// AssignmentService runs bulk entity customer assignments
type AssignmentService interface {
	// Execute applies the action mode of req to every entity of req. It
	// succeeds only if every entity succeeded; entities that succeeded
	// before a failure keep their change.
	Execute(ctx context.Context, entityType types.EntityType, req dto.BulkAssignmentRequest) (*dto.BulkAssignmentResponse, error)
	DescribeMode(entityType types.EntityType, mode types.ActionMode) (*dto.DescribeModeResponse, error)
}

type assignmentService struct {
	ServiceParams
}

func NewAssignmentService(params ServiceParams) AssignmentService {
	return &assignmentService{
		ServiceParams: params,
	}
}

func (s *assignmentService) Execute(ctx context.Context, entityType types.EntityType, req dto.BulkAssignmentRequest) (*dto.BulkAssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := entityType.Validate(); err != nil {
		return nil, err
	}

	workflow, err := assignment.Open(assignment.Config{
		EntityType:         entityType,
		Mode:               req.ActionMode,
		TargetEntityIDs:    req.EntityIDs,
		InitialCustomerIDs: types.NormalizeIDs(req.CustomerIDs),
		Operations:         NewEntityCustomerOperations(NewEntityService(s.ServiceParams, entityType)),
		Options:            s.options(),
	})
	if err != nil {
		return nil, err
	}

	log := s.Logger.WithContext(ctx)
	customerIDs := workflow.Selection().Current()

	span, ctx := s.Sentry.StartAssignmentSpan(ctx, entityType, req.ActionMode, len(req.EntityIDs))
	err = workflow.Submit(ctx)
	if span != nil {
		if err != nil {
			span.Status = sentry.SpanStatusInternalError
		} else {
			span.Status = sentry.SpanStatusOK
		}
		span.Finish()
	}

	if err != nil {
		return nil, s.reportFailure(ctx, workflow, err)
	}

	log.Infow("bulk assignment succeeded",
		"entity_type", entityType,
		"action_mode", req.ActionMode,
		"entities", len(req.EntityIDs),
		"customer_ids", customerIDs,
	)

	return &dto.BulkAssignmentResponse{
		Success:     workflow.Result(),
		Descriptor:  workflow.Descriptor(),
		EntityIDs:   workflow.Targets(),
		CustomerIDs: customerIDs,
	}, nil
}

func (s *assignmentService) DescribeMode(entityType types.EntityType, mode types.ActionMode) (*dto.DescribeModeResponse, error) {
	descriptor, err := assignment.ResolveMode(entityType, mode)
	if err != nil {
		return nil, err
	}
	return &dto.DescribeModeResponse{Descriptor: descriptor}, nil
}

func (s *assignmentService) options() assignment.Options {
	if s.Config == nil {
		return assignment.Options{}
	}
	return assignment.Options{
		MaxConcurrency: s.Config.Assignment.MaxConcurrency,
		TaskTimeout:    s.Config.Assignment.TaskTimeout,
	}
}

// reportFailure logs a joint failure and decorates it with the failed ids.
// The status of the returned error follows the first failed entity.
func (s *assignmentService) reportFailure(ctx context.Context, workflow *assignment.Workflow, err error) error {
	var joint *assignment.JointError
	if !ierr.As(err, &joint) {
		return err
	}

	failed := joint.FailedEntityIDs()
	descriptor := workflow.Descriptor()

	s.Logger.WithContext(ctx).Errorw("bulk assignment failed",
		"entity_type", descriptor.EntityType,
		"action_mode", descriptor.Mode,
		"total", joint.Total,
		"succeeded", joint.Succeeded(),
		"failed_entity_ids", failed,
		"error", err,
	)

	s.Sentry.CaptureExceptionWithContext(ctx, err, map[string]interface{}{
		"entity_type":       descriptor.EntityType,
		"action_mode":       descriptor.Mode,
		"failed_entity_ids": failed,
	})

	return ierr.WithError(err).
		WithHintf("Failed to %s %d of %d %s", descriptor.Mode, len(failed), joint.Total, descriptor.EntityType.Plural()).
		WithReportableDetails(joint.Details()).
		Error()
}
