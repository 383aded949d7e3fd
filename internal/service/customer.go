package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flexprice/assignments/internal/api/dto"
	"github.com/flexprice/assignments/internal/cache"
	"github.com/flexprice/assignments/internal/domain/customer"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
	webhookDto "github.com/flexprice/assignments/internal/webhook/dto"
	"github.com/samber/lo"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	GetCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error)
	UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error

	// FindOrCreatePublicCustomer returns the public pseudo-customer of the
	// tenant in ctx, creating it on first use
	FindOrCreatePublicCustomer(ctx context.Context) (*customer.Customer, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{
		ServiceParams: params,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Title == types.PublicCustomerTitle {
		return nil, ierr.NewError("reserved customer title").
			WithHintf("The title %q is reserved for the public customer", types.PublicCustomerTitle).
			Mark(ierr.ErrValidation)
	}

	cust := req.ToCustomer(ctx)
	if err := cust.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Create(ctx, cust); err != nil {
		return nil, err
	}

	s.publishWebhookEvent(ctx, types.WebhookEventCustomerCreated, cust.ID)
	return dto.NewCustomerResponse(cust), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	if id == "" {
		return nil, ierr.NewError("customer ID is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewCustomerResponse(cust), nil
}

func (s *customerService) GetCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error) {
	if filter == nil {
		filter = types.NewCustomerFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation)
	}

	customers, err := s.CustomerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.CustomerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerResponse {
		return dto.NewCustomerResponse(c)
	})

	response := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if cust.IsPublic {
		return nil, ierr.NewError("public customer is read only").
			WithHint("The public customer cannot be modified").
			WithReportableDetails(map[string]any{
				"customer_id": id,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	req.Apply(cust)
	if cust.Title == types.PublicCustomerTitle {
		return nil, ierr.NewError("reserved customer title").
			WithHintf("The title %q is reserved for the public customer", types.PublicCustomerTitle).
			Mark(ierr.ErrValidation)
	}
	if err := cust.Validate(); err != nil {
		return nil, err
	}
	cust.Touch(ctx)

	if err := s.CustomerRepo.Update(ctx, cust); err != nil {
		return nil, err
	}

	s.publishWebhookEvent(ctx, types.WebhookEventCustomerUpdated, cust.ID)
	return dto.NewCustomerResponse(cust), nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if cust.IsPublic {
		return ierr.NewError("public customer cannot be deleted").
			WithHint("The public customer cannot be deleted").
			WithReportableDetails(map[string]any{
				"customer_id": id,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if err := s.CustomerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishWebhookEvent(ctx, types.WebhookEventCustomerDeleted, id)
	return nil
}

func (s *customerService) FindOrCreatePublicCustomer(ctx context.Context) (*customer.Customer, error) {
	tenantID := types.GetTenantID(ctx)
	key := cache.GenerateKey(cache.PrefixPublicCustomer, tenantID)

	span := cache.StartCacheSpan(ctx, "customer", "get_public", map[string]interface{}{
		"tenant_id": tenantID,
	})
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if cust, ok := cached.(*customer.Customer); ok {
			cache.FinishSpan(span, true)
			return cust, nil
		}
	}
	cache.FinishSpan(span, false)

	cust, err := s.CustomerRepo.GetPublic(ctx)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	if cust == nil {
		cust = &customer.Customer{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
			Title:     types.PublicCustomerTitle,
			IsPublic:  true,
			Metadata:  types.Metadata{},
			BaseModel: types.GetDefaultBaseModel(ctx),
		}

		s.Logger.Infow("creating public customer", "tenant_id", tenantID, "customer_id", cust.ID)
		if err := s.CustomerRepo.Create(ctx, cust); err != nil {
			if !ierr.IsAlreadyExists(err) {
				return nil, err
			}
			// created concurrently by another request
			if cust, err = s.CustomerRepo.GetPublic(ctx); err != nil {
				return nil, err
			}
		}
	}

	s.Cache.Set(ctx, key, cust, 0)
	return cust, nil
}

func (s *customerService) publishWebhookEvent(ctx context.Context, eventName string, customerID string) {
	payload, err := json.Marshal(webhookDto.InternalCustomerEvent{
		CustomerID: customerID,
		TenantID:   types.GetTenantID(ctx),
	})
	if err != nil {
		s.Logger.Errorw("failed to marshal webhook payload", "error", err)
		return
	}

	publishWebhook(ctx, s.ServiceParams, eventName, payload)
}

// publishWebhook wraps payload in an event for the tenant in ctx. Failures
// are logged, they never fail the calling operation.
func publishWebhook(ctx context.Context, params ServiceParams, eventName string, payload []byte) {
	if params.WebhookPublisher == nil {
		return
	}

	event := &types.WebhookEvent{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_WEBHOOK_EVENT),
		EventName: eventName,
		TenantID:  types.GetTenantID(ctx),
		UserID:    types.GetUserID(ctx),
		Timestamp: time.Now().UTC(),
		Payload:   json.RawMessage(payload),
	}
	if err := params.WebhookPublisher.PublishWebhook(ctx, event); err != nil {
		params.Logger.Errorf("failed to publish %s event: %v", event.EventName, err)
	}
}
