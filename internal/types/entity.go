package types

import (
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/samber/lo"
)

// EntityType is the kind of an assignable entity
type EntityType string

const (
	EntityTypeAsset  EntityType = "asset"
	EntityTypeDevice EntityType = "device"
)

var entityTypes = []EntityType{EntityTypeAsset, EntityTypeDevice}

// EntityTypes returns every supported entity type
func EntityTypes() []EntityType {
	return append([]EntityType(nil), entityTypes...)
}

func (t EntityType) String() string {
	return string(t)
}

func (t EntityType) Validate() error {
	if !lo.Contains(entityTypes, t) {
		return ierr.NewErrorf("invalid entity type %q", string(t)).
			WithHint("Entity type must be one of asset, device").
			WithReportableDetails(map[string]any{
				"entity_type":   t,
				"allowed_types": entityTypes,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Plural is the collection name used in routes, ex "assets"
func (t EntityType) Plural() string {
	return string(t) + "s"
}

// IDPrefix is the prefix of generated ids for this entity type
func (t EntityType) IDPrefix() string {
	switch t {
	case EntityTypeAsset:
		return UUID_PREFIX_ASSET
	case EntityTypeDevice:
		return UUID_PREFIX_DEVICE
	}
	return ""
}

// EntityTypeFromPlural resolves a route collection name back to its entity type
func EntityTypeFromPlural(plural string) (EntityType, error) {
	t, ok := lo.Find(entityTypes, func(t EntityType) bool { return t.Plural() == plural })
	if !ok {
		return "", ierr.NewErrorf("unknown entity collection %q", plural).
			WithHint("Entity kind must be one of assets, devices").
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

// EntityFilter represents filters for entity queries
type EntityFilter struct {
	*QueryFilter
	*TimeRangeFilter

	EntityType EntityType `json:"-" form:"-"`
	EntityIDs  []string   `json:"entity_ids,omitempty" form:"entity_ids" validate:"omitempty"`
	CustomerID string     `json:"customer_id,omitempty" form:"customer_id" validate:"omitempty"`
	Type       string     `json:"type,omitempty" form:"type" validate:"omitempty"`
	Name       string     `json:"name,omitempty" form:"name" validate:"omitempty"`
}

// NewEntityFilter creates a new EntityFilter with default values
func NewEntityFilter(entityType EntityType) *EntityFilter {
	return &EntityFilter{
		QueryFilter: NewDefaultQueryFilter(),
		EntityType:  entityType,
	}
}

// NewNoLimitEntityFilter creates a new EntityFilter with no pagination limits
func NewNoLimitEntityFilter(entityType EntityType) *EntityFilter {
	return &EntityFilter{
		QueryFilter: NewNoLimitQueryFilter(),
		EntityType:  entityType,
	}
}

func (f EntityFilter) Validate() error {
	if err := f.EntityType.Validate(); err != nil {
		return err
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

func (f *EntityFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *EntityFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

func (f *EntityFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

func (f *EntityFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

func (f *EntityFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

func (f *EntityFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
