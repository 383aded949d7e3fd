package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/flexprice/assignments/internal/api/dto"
	"github.com/flexprice/assignments/internal/domain/assignment"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/httpclient"
	"github.com/flexprice/assignments/internal/types"
	"github.com/spf13/cobra"
)

// WorkflowOptions holds the flags shared by assign, manage and unassign
type WorkflowOptions struct {
	*RootOptions
	Mode        types.ActionMode
	EntityIDs   []string
	CustomerIDs []string
	// Add and Remove edit the seeded selection, manage only
	Add    []string
	Remove []string
	// ServerSide sends one bulk request instead of one request per entity
	ServerSide bool
}

// WorkflowResult is printed once every entity was updated
type WorkflowResult struct {
	Descriptor  assignment.Descriptor `json:"descriptor"`
	State       assignment.State      `json:"state"`
	EntityIDs   []string              `json:"entity_ids"`
	CustomerIDs []string              `json:"customer_ids"`
}

func (r WorkflowResult) String() string {
	customers := strings.Join(r.CustomerIDs, ", ")
	if customers == "" {
		customers = "(none)"
	}
	return fmt.Sprintf("%s: %d %s updated\ncustomers: %s",
		r.Descriptor.TitleKey, len(r.EntityIDs), r.Descriptor.EntityType.Plural(), customers)
}

// NewAssignCommand adds customers to every entity
func NewAssignCommand(rootOpts *RootOptions) *cobra.Command {
	return newWorkflowCommand(rootOpts, types.ActionModeAssign,
		"assign",
		"Assign entities to customers",
		"Adds every --customer to every --entity. Existing assignments are kept.")
}

// NewManageCommand replaces the customers of every entity
func NewManageCommand(rootOpts *RootOptions) *cobra.Command {
	return newWorkflowCommand(rootOpts, types.ActionModeManage,
		"manage",
		"Replace the customers of entities",
		"Seeds the selection with the customers of the first --entity, applies "+
			"--customer, --add and --remove, then sets the result on every --entity.")
}

// NewUnassignCommand removes customers from every entity
func NewUnassignCommand(rootOpts *RootOptions) *cobra.Command {
	return newWorkflowCommand(rootOpts, types.ActionModeUnassign,
		"unassign",
		"Unassign entities from customers",
		"Removes every --customer from every --entity.")
}

func newWorkflowCommand(rootOpts *RootOptions, mode types.ActionMode, use, short, long string) *cobra.Command {
	opts := &WorkflowOptions{RootOptions: rootOpts, Mode: mode}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.EntityIDs, "entity", "e", nil, "target entity id (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.CustomerIDs, "customer", "c", nil, "customer id (repeatable)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "max entities updated at once, 0 is unlimited")
	cmd.Flags().BoolVar(&opts.ServerSide, "server-side", false, "let the server update the entities in one bulk request")
	_ = cmd.MarkFlagRequired("entity")

	if mode == types.ActionModeManage {
		cmd.Flags().StringSliceVar(&opts.Add, "add", nil, "customer id added to the seeded selection")
		cmd.Flags().StringSliceVar(&opts.Remove, "remove", nil, "customer id removed from the seeded selection")
	}

	return cmd
}

func runWorkflow(cmd *cobra.Command, opts *WorkflowOptions) error {
	formatter := opts.formatter(cmd)
	ctx := commandContext(cmd)

	entityType, err := opts.entityType()
	if err != nil {
		_ = formatter.Error(err)
		return err
	}
	client := opts.assignmentClient(entityType)

	initial := opts.CustomerIDs
	if opts.Mode == types.ActionModeManage && len(opts.EntityIDs) > 0 {
		// the selection starts from what the first entity has today
		first, err := client.GetEntity(ctx, opts.EntityIDs[0])
		if err != nil {
			_ = formatter.Error(err)
			return WrapExitError(ExitFailure, "failed to load the current assignment", err)
		}
		initial = first.AssignedCustomerIDs()
		formatter.VerboseLog("seeded selection from %s: %v", opts.EntityIDs[0], initial)
	}

	workflow, err := assignment.Open(assignment.Config{
		EntityType:         entityType,
		Mode:               opts.Mode,
		TargetEntityIDs:    opts.EntityIDs,
		InitialCustomerIDs: initial,
		Operations:         client,
		Options:            assignment.Options{MaxConcurrency: opts.Concurrency},
	})
	if err != nil {
		_ = formatter.Error(err)
		return WrapExitError(ExitCommandError, "invalid assignment", err)
	}
	defer workflow.Cancel()

	if opts.Mode == types.ActionModeManage {
		if err := editSelection(cmd, opts, workflow.Selection()); err != nil {
			_ = formatter.Error(err)
			return WrapExitError(ExitCommandError, "invalid selection", err)
		}
	}

	formatter.VerboseLog("%s %d %s with customers %v",
		opts.Mode, len(opts.EntityIDs), entityType.Plural(), workflow.Selection().Current())

	if opts.ServerSide {
		return runServerSide(ctx, formatter, opts, client, workflow)
	}

	if err := workflow.Submit(ctx); err != nil {
		var joint *assignment.JointError
		if ierr.As(err, &joint) {
			err = ierr.WithError(err).
				WithHintf("Failed to %s %d of %d %s", opts.Mode, len(joint.Failures), joint.Total, entityType.Plural()).
				WithReportableDetails(joint.Details()).
				Error()
		}
		_ = formatter.Error(err)
		return WrapExitError(ExitFailure, fmt.Sprintf("%s failed", opts.Mode), err)
	}

	return formatter.Success(WorkflowResult{
		Descriptor:  workflow.Descriptor(),
		State:       workflow.State(),
		EntityIDs:   workflow.Targets(),
		CustomerIDs: workflow.Selection().Current(),
	})
}

// runServerSide posts the edited selection to the bulk endpoint. The server
// runs the same fan-out and reports a partial failure with the failed ids.
func runServerSide(
	ctx context.Context,
	formatter *OutputFormatter,
	opts *WorkflowOptions,
	client *httpclient.AssignmentClient,
	workflow *assignment.Workflow,
) error {
	resp, err := client.BulkAssign(ctx, &dto.BulkAssignmentRequest{
		ActionMode:  opts.Mode,
		EntityIDs:   workflow.Targets(),
		CustomerIDs: workflow.Selection().Current(),
	})
	if err != nil {
		_ = formatter.Error(err)
		return WrapExitError(ExitFailure, fmt.Sprintf("%s failed", opts.Mode), err)
	}

	return formatter.Success(WorkflowResult{
		Descriptor:  resp.Descriptor,
		State:       assignment.StateClosedSuccess,
		EntityIDs:   resp.EntityIDs,
		CustomerIDs: resp.CustomerIDs,
	})
}

// editSelection applies --customer as a full replacement, then --add and --remove
func editSelection(cmd *cobra.Command, opts *WorkflowOptions, selection *assignment.Selection) error {
	if cmd.Flags().Changed("customer") {
		if err := selection.Set(opts.CustomerIDs); err != nil {
			return err
		}
	}
	if err := selection.Add(opts.Add...); err != nil {
		return err
	}
	return selection.Remove(opts.Remove...)
}
