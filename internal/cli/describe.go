package cli

import (
	"fmt"

	"github.com/flexprice/assignments/internal/domain/assignment"
	"github.com/flexprice/assignments/internal/types"
	"github.com/spf13/cobra"
)

type modeDescription struct {
	assignment.Descriptor
}

func (d modeDescription) String() string {
	return fmt.Sprintf("%s %s\n  title:  %s\n  label:  %s\n  action: %s",
		d.EntityType, d.Mode, d.TitleKey, d.LabelKey, d.ActionKey)
}

// NewDescribeModeCommand prints the translation keys of an action mode
func NewDescribeModeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "describe-mode <assign|manage|unassign>",
		Short:     "Print the descriptor of an action mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"assign", "manage", "unassign"},
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)

			entityType, err := rootOpts.entityType()
			if err != nil {
				_ = formatter.Error(err)
				return err
			}

			mode := types.ActionMode(args[0])
			if err := mode.Validate(); err != nil {
				_ = formatter.Error(err)
				return WrapExitError(ExitCommandError, "invalid action mode", err)
			}

			descriptor, err := assignment.ResolveMode(entityType, mode)
			if err != nil {
				_ = formatter.Error(err)
				return WrapExitError(ExitCommandError, "invalid action mode", err)
			}

			return formatter.Success(modeDescription{descriptor})
		},
	}
}
