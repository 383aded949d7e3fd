package dto

import (
	"github.com/flexprice/assignments/internal/domain/assignment"
	"github.com/flexprice/assignments/internal/types"
	"github.com/flexprice/assignments/internal/validator"
)

// BulkAssignmentRequest applies one action mode to every listed entity
type BulkAssignmentRequest struct {
	ActionMode  types.ActionMode `json:"action_mode" validate:"required"`
	EntityIDs   []string         `json:"entity_ids" validate:"required,min=1,dive,required"`
	CustomerIDs []string         `json:"customer_ids" validate:"omitempty,dive,required"`
}

func (r *BulkAssignmentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ActionMode.Validate()
}

// BulkAssignmentResponse is returned once every entity task succeeded
type BulkAssignmentResponse struct {
	Success    bool                  `json:"success"`
	Descriptor assignment.Descriptor `json:"descriptor"`
	EntityIDs  []string              `json:"entity_ids"`
	// CustomerIDs is the selection that was applied
	CustomerIDs []string `json:"customer_ids"`
}

// DescribeModeResponse is the descriptor of an action mode
type DescribeModeResponse struct {
	assignment.Descriptor
}
