package entity

import (
	"strings"

	"github.com/samber/lo"
)

// The predicates below are pure and nil safe. A nil entity, a nil list and an
// empty list all mean that nothing is assigned.

// IsPublic reports whether the entity is assigned to the public customer
func IsPublic(e *Entity) bool {
	if e == nil {
		return false
	}
	return lo.ContainsBy(e.AssignedCustomers, func(c CustomerInfo) bool { return c.Public })
}

// AssignedCustomersText joins the titles of the non public customers with
// ", " in assignment order. Untitled entries are skipped.
func AssignedCustomersText(e *Entity) string {
	if e == nil || len(e.AssignedCustomers) == 0 {
		return ""
	}
	titles := lo.FilterMap(e.AssignedCustomers, func(c CustomerInfo, _ int) (string, bool) {
		return c.Title, !c.Public && c.Title != ""
	})
	return strings.Join(titles, ", ")
}

// IsCurrentPublicCustomer reports whether customerID is the public customer
// the entity is assigned to
func IsCurrentPublicCustomer(e *Entity, customerID string) bool {
	if customerID == "" || e == nil {
		return false
	}
	return lo.ContainsBy(e.AssignedCustomers, func(c CustomerInfo) bool {
		return c.Public && c.CustomerID == customerID
	})
}
