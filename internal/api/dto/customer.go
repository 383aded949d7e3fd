package dto

import (
	"context"

	"github.com/flexprice/assignments/internal/domain/customer"
	"github.com/flexprice/assignments/internal/types"
	"github.com/flexprice/assignments/internal/validator"
)

type CreateCustomerRequest struct {
	Title    string            `json:"title" validate:"required,max=255"`
	Email    string            `json:"email" validate:"omitempty,email"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type UpdateCustomerRequest struct {
	Title    *string           `json:"title" validate:"omitempty,max=255"`
	Email    *string           `json:"email" validate:"omitempty,email"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type CustomerResponse struct {
	*customer.Customer
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Title:     r.Title,
		Email:     r.Email,
		Metadata:  r.Metadata,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the provided fields onto c
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Metadata != nil {
		c.Metadata = r.Metadata
	}
}

func NewCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{Customer: c}
}
