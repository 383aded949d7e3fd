package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/httpclient"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	Server      string
	APIKey      string
	Kind        string
	RPS         float64
	Retries     int
	Timeout     time.Duration
	Concurrency int

	// client replaces the retrying http client, tests inject a mock here
	client httpclient.Client
}

// ValidFormats defines the allowed output formats
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the assignctl root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignctl",
		Short: "Bulk assign assets and devices to customers",
		Long: "assignctl opens an assignment workflow for a set of entities and " +
			"applies the selected customers to each of them, one request per entity.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !lo.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.applyConfig(cmd)
		},
	}

	defaults := config.GetDefaultConfig().Client

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Server, "server", defaults.BaseURL, "assignments api base url")
	cmd.PersistentFlags().StringVar(&opts.APIKey, "api-key", "", "api key sent as x-api-key")
	cmd.PersistentFlags().StringVar(&opts.Kind, "kind", types.EntityTypeAsset.Plural(), "entity kind (assets|devices)")
	cmd.PersistentFlags().Float64Var(&opts.RPS, "rps", 0, "max requests per second, 0 is unlimited")
	cmd.PersistentFlags().IntVar(&opts.Retries, "retries", defaults.RetryMax, "retries per request")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", defaults.Timeout, "timeout per request")

	cmd.AddCommand(NewAssignCommand(opts))
	cmd.AddCommand(NewManageCommand(opts))
	cmd.AddCommand(NewUnassignCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewDescribeModeCommand(opts))

	return cmd
}

// applyConfig fills every flag the user did not set from the client section
// of the configuration
func (o *RootOptions) applyConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid client configuration: %v", err))
	}

	flags := cmd.Flags()
	if !flags.Changed("server") && cfg.BaseURL != "" {
		o.Server = cfg.BaseURL
	}
	if !flags.Changed("api-key") && cfg.APIKey != "" {
		o.APIKey = cfg.APIKey
	}
	if !flags.Changed("rps") {
		o.RPS = cfg.RequestsPerSecond
	}
	if !flags.Changed("retries") {
		o.Retries = cfg.RetryMax
	}
	if !flags.Changed("timeout") && cfg.Timeout > 0 {
		o.Timeout = cfg.Timeout
	}
	return nil
}

// entityType accepts the plural route name or the singular type
func (o *RootOptions) entityType() (types.EntityType, error) {
	if t := types.EntityType(o.Kind); t.Validate() == nil {
		return t, nil
	}
	t, err := types.EntityTypeFromPlural(o.Kind)
	if err != nil {
		return "", WrapExitError(ExitCommandError, fmt.Sprintf("invalid kind %q", o.Kind), err)
	}
	return t, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func (o *RootOptions) assignmentClient(entityType types.EntityType) *httpclient.AssignmentClient {
	client := o.client
	if client == nil {
		var log *logger.Logger
		if o.Verbose {
			log = logger.L
		}
		client = httpclient.NewDefaultClient(httpclient.ClientConfig{
			Timeout:           o.Timeout,
			RetryMax:          o.Retries,
			RequestsPerSecond: o.RPS,
		}, log)
	}
	return httpclient.NewAssignmentClient(client, o.Server, o.APIKey, entityType)
}

// commandContext tags every request of one invocation with the same id
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return types.SetRequestID(ctx, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))
}
