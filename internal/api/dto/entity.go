package dto

import (
	"context"

	"github.com/flexprice/assignments/internal/domain/entity"
	"github.com/flexprice/assignments/internal/types"
	"github.com/flexprice/assignments/internal/validator"
)

type CreateEntityRequest struct {
	Name     string            `json:"name" validate:"required,max=255"`
	Type     string            `json:"type" validate:"omitempty,max=100"`
	Label    string            `json:"label" validate:"omitempty,max=255"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (r *CreateEntityRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateEntityRequest) ToEntity(ctx context.Context, entityType types.EntityType) *entity.Entity {
	return &entity.Entity{
		ID:                types.GenerateUUIDWithPrefix(entityType.IDPrefix()),
		EntityType:        entityType,
		Name:              r.Name,
		Type:              r.Type,
		Label:             r.Label,
		Metadata:          r.Metadata,
		AssignedCustomers: []entity.CustomerInfo{},
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}
}

// UpdateEntityRequest changes the provided fields only
type UpdateEntityRequest struct {
	Name     *string           `json:"name" validate:"omitempty,min=1,max=255"`
	Type     *string           `json:"type" validate:"omitempty,max=100"`
	Label    *string           `json:"label" validate:"omitempty,max=255"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (r *UpdateEntityRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the provided fields onto e
func (r *UpdateEntityRequest) Apply(e *entity.Entity) {
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.Type != nil {
		e.Type = *r.Type
	}
	if r.Label != nil {
		e.Label = *r.Label
	}
	if r.Metadata != nil {
		e.Metadata = r.Metadata
	}
}

// UpsertEntityRequest creates the entity named Name or updates the existing
// one. When CustomerIDs is set it becomes the complete assignment of the
// entity, when it is omitted the assignment is left untouched.
type UpsertEntityRequest struct {
	Name        string            `json:"name" validate:"required,max=255"`
	Type        string            `json:"type" validate:"omitempty,max=100"`
	Label       string            `json:"label" validate:"omitempty,max=255"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CustomerIDs *[]string         `json:"customer_ids,omitempty" validate:"omitempty,dive,required"`
}

func (r *UpsertEntityRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpsertEntityRequest) ToCreateRequest() CreateEntityRequest {
	return CreateEntityRequest{
		Name:     r.Name,
		Type:     r.Type,
		Label:    r.Label,
		Metadata: r.Metadata,
	}
}

// Apply overwrites the descriptive fields of e. Metadata is replaced only
// when provided.
func (r *UpsertEntityRequest) Apply(e *entity.Entity) {
	e.Type = r.Type
	e.Label = r.Label
	if r.Metadata != nil {
		e.Metadata = r.Metadata
	}
}

// UpsertEntityResponse reports whether the upsert created the entity
type UpsertEntityResponse struct {
	*EntityResponse

	Created bool `json:"created"`
}

// UpdateEntityCustomersRequest carries the customer ids of an add, replace or
// remove call. An empty list is valid.
type UpdateEntityCustomersRequest struct {
	CustomerIDs []string `json:"customer_ids" validate:"omitempty,dive,required"`
}

func (r *UpdateEntityCustomersRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// EntityResponse adds the customer visibility of the entity
type EntityResponse struct {
	*entity.Entity

	IsPublic              bool   `json:"is_public"`
	AssignedCustomersText string `json:"assigned_customers_text"`
}

// ListEntitiesResponse represents the response for listing entities
type ListEntitiesResponse = types.ListResponse[*EntityResponse]

func NewEntityResponse(e *entity.Entity) *EntityResponse {
	if e.AssignedCustomers == nil {
		e.AssignedCustomers = []entity.CustomerInfo{}
	}
	return &EntityResponse{
		Entity:                e,
		IsPublic:              entity.IsPublic(e),
		AssignedCustomersText: entity.AssignedCustomersText(e),
	}
}
