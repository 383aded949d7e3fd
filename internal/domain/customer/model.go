package customer

import (
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/types"
)

// Customer represents a customer entities can be assigned to
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// Title is the display name of the customer, unique per tenant
	Title string `db:"title" json:"title"`

	// Email is the email of the customer
	Email string `db:"email" json:"email"`

	// IsPublic marks the per tenant public pseudo-customer
	IsPublic bool `db:"is_public" json:"is_public"`

	// Metadata
	Metadata types.Metadata `db:"metadata" json:"metadata"`

	types.BaseModel
}

// Validate checks the fields that are not covered by request validation
func (c *Customer) Validate() error {
	if c.Title == "" {
		return ierr.NewError("customer title is required").
			WithHint("Please provide a customer title").
			Mark(ierr.ErrValidation)
	}
	if len(c.Title) > 255 {
		return ierr.NewError("customer title too long").
			WithHint("Customer title must be less than 255 characters").
			Mark(ierr.ErrValidation)
	}
	if c.Email != "" && !types.IsValidEmail(c.Email) {
		return ierr.NewError("invalid email").
			WithHint("Please provide a valid email").
			Mark(ierr.ErrValidation)
	}
	return nil
}
