package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	acme   = CustomerInfo{CustomerID: "cust_acme", Title: "Acme"}
	globex = CustomerInfo{CustomerID: "cust_globex", Title: "Globex"}
	public = CustomerInfo{CustomerID: "cust_public", Title: "Public", Public: true}
)

func TestIsPublic(t *testing.T) {
	tests := []struct {
		name   string
		entity *Entity
		want   bool
	}{
		{name: "nil_entity", entity: nil, want: false},
		{name: "nil_list", entity: &Entity{}, want: false},
		{name: "empty_list", entity: &Entity{AssignedCustomers: []CustomerInfo{}}, want: false},
		{name: "only_private", entity: &Entity{AssignedCustomers: []CustomerInfo{acme, globex}}, want: false},
		{name: "only_public", entity: &Entity{AssignedCustomers: []CustomerInfo{public}}, want: true},
		{name: "mixed", entity: &Entity{AssignedCustomers: []CustomerInfo{acme, public}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPublic(tt.entity))
		})
	}
}

func TestAssignedCustomersText(t *testing.T) {
	tests := []struct {
		name   string
		entity *Entity
		want   string
	}{
		{name: "nil_entity", entity: nil, want: ""},
		{name: "nil_list", entity: &Entity{}, want: ""},
		{name: "empty_list", entity: &Entity{AssignedCustomers: []CustomerInfo{}}, want: ""},
		{
			name: "public_excluded",
			entity: &Entity{AssignedCustomers: []CustomerInfo{
				{Title: "A", Public: false},
				{Title: "B", Public: true},
			}},
			want: "A",
		},
		{name: "order_preserved", entity: &Entity{AssignedCustomers: []CustomerInfo{globex, public, acme}}, want: "Globex, Acme"},
		{name: "only_public", entity: &Entity{AssignedCustomers: []CustomerInfo{public}}, want: ""},
		{
			name: "untitled_skipped",
			entity: &Entity{AssignedCustomers: []CustomerInfo{
				{CustomerID: "cust_x"},
				acme,
			}},
			want: "Acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignedCustomersText(tt.entity))
		})
	}
}

func TestIsCurrentPublicCustomer(t *testing.T) {
	e := &Entity{AssignedCustomers: []CustomerInfo{acme, public}}

	assert.True(t, IsCurrentPublicCustomer(e, "cust_public"))
	assert.False(t, IsCurrentPublicCustomer(e, ""), "empty id never matches")
	assert.False(t, IsCurrentPublicCustomer(e, "cust_acme"), "private entry does not match")
	assert.False(t, IsCurrentPublicCustomer(e, "cust_public_other"))
	assert.False(t, IsCurrentPublicCustomer(&Entity{}, "cust_public"))
	assert.False(t, IsCurrentPublicCustomer(nil, "cust_public"))

	// an untitled public entry with an empty id must not match the empty id
	e = &Entity{AssignedCustomers: []CustomerInfo{{Public: true}}}
	assert.False(t, IsCurrentPublicCustomer(e, ""))
}

func TestEntity_AssignedCustomers(t *testing.T) {
	e := &Entity{}
	assert.Equal(t, []string{}, e.AssignedCustomerIDs())

	assert.True(t, e.AddAssignedCustomer(acme))
	assert.False(t, e.AddAssignedCustomer(acme))
	assert.True(t, e.AddAssignedCustomer(public))
	assert.Equal(t, []string{"cust_acme", "cust_public"}, e.AssignedCustomerIDs())

	info, ok := e.GetAssignedCustomerInfo("cust_public")
	assert.True(t, ok)
	assert.Equal(t, public, info)
	assert.True(t, e.IsAssignedToCustomer("cust_acme"))
	assert.False(t, e.IsAssignedToCustomer(""))

	assert.True(t, e.RemoveAssignedCustomer("cust_acme"))
	assert.False(t, e.RemoveAssignedCustomer("cust_acme"))
	assert.Equal(t, []string{"cust_public"}, e.AssignedCustomerIDs())

	var nilEntity *Entity
	assert.Equal(t, []string{}, nilEntity.AssignedCustomerIDs())
	assert.False(t, nilEntity.IsAssignedToCustomer("cust_acme"))
}
