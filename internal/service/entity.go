package service

import (
	"context"
	"encoding/json"

	"github.com/flexprice/assignments/internal/api/dto"
	"github.com/flexprice/assignments/internal/domain/auditlog"
	"github.com/flexprice/assignments/internal/domain/customer"
	"github.com/flexprice/assignments/internal/domain/entity"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	webhookDto "github.com/flexprice/assignments/internal/webhook/dto"
	"github.com/samber/lo"
)

// EntityService manages the entities of one entity type and the customers
// they are assigned to. Customer ids are treated as a set and every customer
// change is idempotent.
type EntityService interface {
	EntityType() types.EntityType

	CreateEntity(ctx context.Context, req dto.CreateEntityRequest) (*dto.EntityResponse, error)
	GetEntity(ctx context.Context, id string) (*dto.EntityResponse, error)
	GetEntities(ctx context.Context, filter *types.EntityFilter) (*dto.ListEntitiesResponse, error)
	UpdateEntity(ctx context.Context, id string, req dto.UpdateEntityRequest) (*dto.EntityResponse, error)
	DeleteEntity(ctx context.Context, id string) error

	// UpsertEntity creates or updates the entity with the requested name and,
	// when customer ids are given, reconciles its assignment with them
	UpsertEntity(ctx context.Context, req dto.UpsertEntityRequest) (*dto.UpsertEntityResponse, error)

	// AddCustomers assigns the entity to the given customers it is not yet assigned to
	AddCustomers(ctx context.Context, id string, customerIDs []string) (*dto.EntityResponse, error)
	// UpdateCustomers makes the given customers the complete assignment of the entity
	UpdateCustomers(ctx context.Context, id string, customerIDs []string) (*dto.EntityResponse, error)
	// RemoveCustomers unassigns the entity from the given customers it is assigned to
	RemoveCustomers(ctx context.Context, id string, customerIDs []string) (*dto.EntityResponse, error)

	AssignToCustomer(ctx context.Context, id string, customerID string) (*dto.EntityResponse, error)
	UnassignFromCustomer(ctx context.Context, id string, customerID string) (*dto.EntityResponse, error)
	AssignToPublicCustomer(ctx context.Context, id string) (*dto.EntityResponse, error)
	UnassignFromPublicCustomer(ctx context.Context, id string) (*dto.EntityResponse, error)
}

type entityService struct {
	ServiceParams
	entityType types.EntityType
}

func NewEntityService(params ServiceParams, entityType types.EntityType) EntityService {
	return &entityService{
		ServiceParams: params,
		entityType:    entityType,
	}
}

func (s *entityService) EntityType() types.EntityType {
	return s.entityType
}

func (s *entityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest) (*dto.EntityResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := req.ToEntity(ctx, s.entityType)
	if err := s.EntityRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.publishEntityEvent(ctx, types.WebhookEventEntityCreated, e.ID)
	return dto.NewEntityResponse(e), nil
}

func (s *entityService) GetEntity(ctx context.Context, id string) (*dto.EntityResponse, error) {
	e, err := s.getEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewEntityResponse(e), nil
}

func (s *entityService) GetEntities(ctx context.Context, filter *types.EntityFilter) (*dto.ListEntitiesResponse, error) {
	if filter == nil {
		filter = types.NewEntityFilter(s.entityType)
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	filter.EntityType = s.entityType

	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation)
	}

	entities, err := s.EntityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.EntityRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(entities, func(e *entity.Entity, _ int) *dto.EntityResponse {
		return dto.NewEntityResponse(e)
	})

	response := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *entityService) UpdateEntity(ctx context.Context, id string, req dto.UpdateEntityRequest) (*dto.EntityResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.getEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(e)
	e.Touch(ctx)

	if err := s.EntityRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.publishEntityEvent(ctx, types.WebhookEventEntityUpdated, e.ID)
	return dto.NewEntityResponse(e), nil
}

func (s *entityService) UpsertEntity(ctx context.Context, req dto.UpsertEntityRequest) (*dto.UpsertEntityResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// unknown customers reject the row before anything is written
	var customers []*customer.Customer
	if req.CustomerIDs != nil {
		var err error
		if customers, err = s.resolveCustomers(ctx, *req.CustomerIDs); err != nil {
			return nil, err
		}
	}

	e, err := s.findByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	created := e == nil
	if created {
		createReq := req.ToCreateRequest()
		e = createReq.ToEntity(ctx, s.entityType)
		if err := s.EntityRepo.Create(ctx, e); err != nil {
			return nil, err
		}
		s.publishEntityEvent(ctx, types.WebhookEventEntityCreated, e.ID)
	} else {
		req.Apply(e)
		e.Touch(ctx)
		if err := s.EntityRepo.Update(ctx, e); err != nil {
			return nil, err
		}
		s.publishEntityEvent(ctx, types.WebhookEventEntityUpdated, e.ID)
	}

	s.Logger.WithContext(ctx).Infow("upserted entity",
		"entity_type", e.EntityType,
		"entity_id", e.ID,
		"created", created,
	)

	resp := dto.NewEntityResponse(e)
	if req.CustomerIDs != nil {
		if resp, err = s.replaceCustomers(ctx, e, customers); err != nil {
			return nil, err
		}
	}

	return &dto.UpsertEntityResponse{EntityResponse: resp, Created: created}, nil
}

func (s *entityService) DeleteEntity(ctx context.Context, id string) error {
	if _, err := s.getEntity(ctx, id); err != nil {
		return err
	}

	if err := s.EntityRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEntityEvent(ctx, types.WebhookEventEntityDeleted, id)
	return nil
}

func (s *entityService) AddCustomers(ctx context.Context, id string, customerIDs []string) (*dto.EntityResponse, error) {
	e, err := s.getEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	customers, err := s.resolveCustomers(ctx, customerIDs)
	if err != nil {
		return nil, err
	}

	toAssign := lo.Filter(customers, func(c *customer.Customer, _ int) bool {
		return !e.IsAssignedToCustomer(c.ID)
	})

	return s.applyChanges(ctx, e, toAssign, nil)
}

func (s *entityService) UpdateCustomers(ctx context.Context, id string, customerIDs []string) (*dto.EntityResponse, error) {
	e, err := s.getEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	customers, err := s.resolveCustomers(ctx, customerIDs)
	if err != nil {
		return nil, err
	}

	return s.replaceCustomers(ctx, e, customers)
}

// replaceCustomers assigns the missing customers and unassigns the extra ones
func (s *entityService) replaceCustomers(ctx context.Context, e *entity.Entity, customers []*customer.Customer) (*dto.EntityResponse, error) {
	wanted := lo.SliceToMap(customers, func(c *customer.Customer) (string, struct{}) {
		return c.ID, struct{}{}
	})

	toAssign := lo.Filter(customers, func(c *customer.Customer, _ int) bool {
		return !e.IsAssignedToCustomer(c.ID)
	})
	toUnassign := lo.Filter(e.AssignedCustomers, func(info entity.CustomerInfo, _ int) bool {
		_, ok := wanted[info.CustomerID]
		return !ok
	})

	return s.applyChanges(ctx, e, toAssign, toUnassign)
}

func (s *entityService) RemoveCustomers(ctx context.Context, id string, customerIDs []string) (*dto.EntityResponse, error) {
	e, err := s.getEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	customers, err := s.resolveCustomers(ctx, customerIDs)
	if err != nil {
		return nil, err
	}

	toUnassign := lo.FilterMap(customers, func(c *customer.Customer, _ int) (entity.CustomerInfo, bool) {
		return e.GetAssignedCustomerInfo(c.ID)
	})

	return s.applyChanges(ctx, e, nil, toUnassign)
}

func (s *entityService) AssignToCustomer(ctx context.Context, id string, customerID string) (*dto.EntityResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	return s.AddCustomers(ctx, id, []string{customerID})
}

func (s *entityService) UnassignFromCustomer(ctx context.Context, id string, customerID string) (*dto.EntityResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	return s.RemoveCustomers(ctx, id, []string{customerID})
}

func (s *entityService) AssignToPublicCustomer(ctx context.Context, id string) (*dto.EntityResponse, error) {
	public, err := NewCustomerService(s.ServiceParams).FindOrCreatePublicCustomer(ctx)
	if err != nil {
		return nil, err
	}
	return s.AddCustomers(ctx, id, []string{public.ID})
}

func (s *entityService) UnassignFromPublicCustomer(ctx context.Context, id string) (*dto.EntityResponse, error) {
	public, err := NewCustomerService(s.ServiceParams).FindOrCreatePublicCustomer(ctx)
	if err != nil {
		return nil, err
	}
	return s.RemoveCustomers(ctx, id, []string{public.ID})
}

// getEntity hides entities of other types behind not found
func (s *entityService) getEntity(ctx context.Context, id string) (*entity.Entity, error) {
	if id == "" {
		return nil, ierr.NewErrorf("%s ID is required", s.entityType).
			WithHintf("%s ID is required", s.entityType).
			Mark(ierr.ErrValidation)
	}

	e, err := s.EntityRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if e.EntityType != s.entityType {
		return nil, ierr.NewErrorf("%s %s not found", s.entityType, id).
			WithHintf("%s not found", s.entityType).
			WithReportableDetails(map[string]any{
				"entity_id":   id,
				"entity_type": s.entityType,
			}).
			Mark(ierr.ErrNotFound)
	}
	return e, nil
}

// findByName returns the live entity of this type named name, nil when none
func (s *entityService) findByName(ctx context.Context, name string) (*entity.Entity, error) {
	filter := types.NewNoLimitEntityFilter(s.entityType)
	filter.Name = name

	entities, err := s.EntityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, nil
	}
	return entities[0], nil
}

// resolveCustomers loads every distinct customer in ids, in first-seen order.
// Any unknown id fails the whole call.
func (s *entityService) resolveCustomers(ctx context.Context, ids []string) ([]*customer.Customer, error) {
	ids = types.NormalizeIDs(ids)
	if len(ids) == 0 {
		return []*customer.Customer{}, nil
	}

	filter := types.NewNoLimitCustomerFilter()
	filter.CustomerIDs = ids

	found, err := s.CustomerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	byID := lo.KeyBy(found, func(c *customer.Customer) string { return c.ID })
	missing := lo.Filter(ids, func(id string, _ int) bool {
		_, ok := byID[id]
		return !ok
	})
	if len(missing) > 0 {
		return nil, ierr.NewErrorf("customers not found: %v", missing).
			WithHint("Some of the selected customers do not exist").
			WithReportableDetails(map[string]any{
				"missing_customer_ids": missing,
			}).
			Mark(ierr.ErrNotFound)
	}

	return lo.Map(ids, func(id string, _ int) *customer.Customer { return byID[id] }), nil
}

// applyChanges writes the assignment changes in one transaction with an audit
// entry per change. When the transaction fails a failure entry is recorded for
// every attempted change instead.
func (s *entityService) applyChanges(
	ctx context.Context,
	e *entity.Entity,
	toAssign []*customer.Customer,
	toUnassign []entity.CustomerInfo,
) (*dto.EntityResponse, error) {
	if len(toAssign) == 0 && len(toUnassign) == 0 {
		return dto.NewEntityResponse(e), nil
	}

	entries := make([]*auditlog.Entry, 0, len(toAssign)+len(toUnassign))
	for _, c := range toAssign {
		entry := auditlog.NewEntry(ctx, e.EntityType, e.ID, e.Name, c.ID, types.AuditActionAssignedToCustomer)
		entry.Details["customer_title"] = c.Title
		entries = append(entries, entry)
	}
	for _, info := range toUnassign {
		entry := auditlog.NewEntry(ctx, e.EntityType, e.ID, e.Name, info.CustomerID, types.AuditActionUnassignedFromCustomer)
		entry.Details["customer_title"] = info.Title
		entries = append(entries, entry)
	}

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		for _, c := range toAssign {
			if err := s.EntityRepo.AssignCustomer(txCtx, e.ID, c.ID); err != nil {
				return err
			}
		}
		for _, info := range toUnassign {
			if err := s.EntityRepo.UnassignCustomer(txCtx, e.ID, info.CustomerID); err != nil {
				return err
			}
		}
		for _, entry := range entries {
			if err := s.AuditLogRepo.Create(txCtx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.recordFailures(ctx, entries, err)
		return nil, err
	}

	assigned := lo.Map(toAssign, func(c *customer.Customer, _ int) string { return c.ID })
	unassigned := lo.Map(toUnassign, func(info entity.CustomerInfo, _ int) string { return info.CustomerID })

	s.Logger.WithContext(ctx).Infow("updated entity customers",
		"entity_type", e.EntityType,
		"entity_id", e.ID,
		"assigned", assigned,
		"unassigned", unassigned,
	)

	updated, err := s.EntityRepo.Get(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	s.publishCustomersEvent(ctx, updated, assigned, unassigned)
	return dto.NewEntityResponse(updated), nil
}

func (s *entityService) recordFailures(ctx context.Context, entries []*auditlog.Entry, cause error) {
	for _, entry := range entries {
		entry.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AUDIT_LOG)
		if err := s.AuditLogRepo.Create(ctx, entry.Failed(cause)); err != nil {
			s.Logger.Errorw("failed to record failed assignment change",
				"entity_id", entry.EntityID,
				"customer_id", entry.CustomerID,
				"error", err,
			)
		}
	}
}

func (s *entityService) publishEntityEvent(ctx context.Context, eventName string, entityID string) {
	payload, err := json.Marshal(webhookDto.InternalEntityEvent{
		EntityID:   entityID,
		EntityType: s.entityType,
		TenantID:   types.GetTenantID(ctx),
	})
	if err != nil {
		s.Logger.Errorw("failed to marshal webhook payload", "error", err)
		return
	}

	publishWebhook(ctx, s.ServiceParams, eventName, payload)
}

func (s *entityService) publishCustomersEvent(ctx context.Context, e *entity.Entity, assigned, unassigned []string) {
	payload, err := json.Marshal(webhookDto.InternalEntityCustomersEvent{
		EntityID:    e.ID,
		EntityType:  e.EntityType,
		TenantID:    types.GetTenantID(ctx),
		Assigned:    assigned,
		Unassigned:  unassigned,
		CustomerIDs: e.AssignedCustomerIDs(),
	})
	if err != nil {
		s.Logger.Errorw("failed to marshal webhook payload", "error", err)
		return
	}

	publishWebhook(ctx, s.ServiceParams, types.WebhookEventEntityCustomersUpdated, payload)
}
