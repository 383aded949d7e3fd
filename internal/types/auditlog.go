package types

// AuditActionType is the kind of change recorded against an entity
type AuditActionType string

const (
	AuditActionAssignedToCustomer     AuditActionType = "ASSIGNED_TO_CUSTOMER"
	AuditActionUnassignedFromCustomer AuditActionType = "UNASSIGNED_FROM_CUSTOMER"
)

// AuditActionStatus is the outcome of a recorded action
type AuditActionStatus string

const (
	AuditActionStatusSuccess AuditActionStatus = "SUCCESS"
	AuditActionStatusFailure AuditActionStatus = "FAILURE"
)

// AuditLogFilter represents filters for audit log queries
type AuditLogFilter struct {
	*QueryFilter
	*TimeRangeFilter

	EntityType   EntityType        `json:"entity_type,omitempty" form:"entity_type"`
	EntityID     string            `json:"entity_id,omitempty" form:"entity_id"`
	CustomerID   string            `json:"customer_id,omitempty" form:"customer_id"`
	ActionType   AuditActionType   `json:"action_type,omitempty" form:"action_type"`
	ActionStatus AuditActionStatus `json:"action_status,omitempty" form:"action_status"`
}

// NewAuditLogFilter creates a new AuditLogFilter with default values
func NewAuditLogFilter() *AuditLogFilter {
	return &AuditLogFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

func (f AuditLogFilter) Validate() error {
	if f.EntityType != "" {
		if err := f.EntityType.Validate(); err != nil {
			return err
		}
	}
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *AuditLogFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *AuditLogFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

func (f *AuditLogFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

func (f *AuditLogFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

func (f *AuditLogFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
