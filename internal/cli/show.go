package cli

import (
	"fmt"
	"strings"

	"github.com/flexprice/assignments/internal/domain/entity"
	"github.com/spf13/cobra"
)

type ShowOptions struct {
	*RootOptions
	CustomerID string
}

// EntityVisibility is the customer visibility of one entity
type EntityVisibility struct {
	EntityID              string   `json:"entity_id"`
	Name                  string   `json:"name"`
	CustomerIDs           []string `json:"customer_ids"`
	IsPublic              bool     `json:"is_public"`
	AssignedCustomersText string   `json:"assigned_customers_text"`
	// CustomerID and IsCurrentPublicCustomer are only set with --customer
	CustomerID              string `json:"customer_id,omitempty"`
	IsCurrentPublicCustomer *bool  `json:"is_current_public_customer,omitempty"`
}

func (v EntityVisibility) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", v.Name, v.EntityID)
	fmt.Fprintf(&b, "  public:    %t\n", v.IsPublic)
	fmt.Fprintf(&b, "  customers: %s", v.AssignedCustomersText)
	if v.IsCurrentPublicCustomer != nil {
		fmt.Fprintf(&b, "\n  %s is the current public customer: %t", v.CustomerID, *v.IsCurrentPublicCustomer)
	}
	return b.String()
}

// NewShowCommand prints the customer visibility of an entity
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <entity-id>",
		Short: "Show the customer visibility of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.CustomerID, "customer", "c", "", "also check whether this is the current public customer")

	return cmd
}

func runShow(cmd *cobra.Command, opts *ShowOptions, entityID string) error {
	formatter := opts.formatter(cmd)

	entityType, err := opts.entityType()
	if err != nil {
		_ = formatter.Error(err)
		return err
	}

	resp, err := opts.assignmentClient(entityType).GetEntity(commandContext(cmd), entityID)
	if err != nil {
		_ = formatter.Error(err)
		return WrapExitError(ExitFailure, "failed to load entity", err)
	}

	// predicates are evaluated locally from the assigned customers
	e := resp.Entity
	visibility := EntityVisibility{
		EntityID:              e.ID,
		Name:                  e.Name,
		CustomerIDs:           e.AssignedCustomerIDs(),
		IsPublic:              entity.IsPublic(e),
		AssignedCustomersText: entity.AssignedCustomersText(e),
	}
	if opts.CustomerID != "" {
		current := entity.IsCurrentPublicCustomer(e, opts.CustomerID)
		visibility.CustomerID = opts.CustomerID
		visibility.IsCurrentPublicCustomer = &current
	}

	return formatter.Success(visibility)
}
