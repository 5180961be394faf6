// Package cli implements the modelreg command line.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	modelreg "github.com/albertocavalcante/go-modelreg"
	"github.com/albertocavalcante/go-modelreg/internal/config"
)

// ExitError carries a process exit status for a failure that has already
// been reported to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// options holds the state of one invocation.
type options struct {
	configPath string

	// flags receives flag values; cfg is the effective configuration once
	// the config file has been merged underneath them.
	flags config.Config
	cfg   *config.Config

	logger zerolog.Logger
}

// Execute runs the modelreg command line with the given arguments.
func Execute(ctx context.Context, version string, args []string) error {
	cmd := NewRootCmd(version)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Each call returns independent state.
func NewRootCmd(version string) *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "modelreg",
		Short: "Validate a file-based model registry",
		Long: `modelreg checks that a model registry is internally consistent:
every model.json and versions/<version>.json is well formed, sits in the
folder matching its modality, has a PERFORMANCE.md, and agrees with its
versions; and benchmarks/benchmark-registry.json holds a benchmarks list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.complete(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", config.DefaultFileName, "Path to the configuration file")
	flags.StringVar(&o.flags.Format, "format", config.FormatText, "Output format: text or json")
	flags.BoolVar(&o.flags.CollectAll, "all", false, "Report every violation instead of stopping at the first")
	flags.IntVar(&o.flags.MaxErrors, "max-errors", 0, "Stop after this many violations with --all (0 means no limit)")
	flags.BoolVar(&o.flags.StrictVersionLayout, "strict-version-layout", false,
		"Only accept version descriptors directly inside versions/")
	flags.BoolVarP(&o.flags.Verbose, "verbose", "v", false, "Enable verbose logging to console")
	flags.BoolVar(&o.flags.NoColor, "no-color", false, "Disable colour output (also respects NO_COLOR env)")

	rootCmd.AddCommand(newValidateCmd(o))
	rootCmd.AddCommand(newListCmd(o))
	rootCmd.AddCommand(newVersionCmd(version))

	return rootCmd
}

// complete loads the configuration file and lets explicitly set flags win.
func (o *options) complete(cmd *cobra.Command) error {
	fs := cmd.Flags()

	var (
		cfg *config.Config
		err error
	)
	if fs.Changed("config") {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadOrDefault(o.configPath)
	}
	if err != nil {
		return err
	}

	override(fs, "format", &cfg.Format, o.flags.Format)
	override(fs, "all", &cfg.CollectAll, o.flags.CollectAll)
	override(fs, "max-errors", &cfg.MaxErrors, o.flags.MaxErrors)
	override(fs, "strict-version-layout", &cfg.StrictVersionLayout, o.flags.StrictVersionLayout)
	override(fs, "verbose", &cfg.Verbose, o.flags.Verbose)
	override(fs, "no-color", &cfg.NoColor, o.flags.NoColor)

	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.NoColor)
	return nil
}

func override[T any](fs *pflag.FlagSet, name string, dst *T, val T) {
	if fs.Changed(name) {
		*dst = val
	}
}

// root returns the registry root: the positional argument if given,
// otherwise the configured root.
func (o *options) root(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.cfg.Root
}

func (o *options) validateOptions() []modelreg.Option {
	opts := []modelreg.Option{
		modelreg.WithStrictVersionLayout(o.cfg.StrictVersionLayout),
		modelreg.WithLogger(newSlogLogger(o.logger)),
	}
	if o.cfg.CollectAll {
		opts = append(opts, modelreg.WithCollectAll(), modelreg.WithMaxFailures(o.cfg.MaxErrors))
	}
	return opts
}

func (o *options) reporter(cmd *cobra.Command) *reporter {
	return newReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.cfg.Format, o.cfg.NoColor)
}

// run validates the registry at root and hands a passing report to onSuccess.
// Failures are reported here and turned into an *ExitError.
func (o *options) run(cmd *cobra.Command, args []string, onSuccess func(*reporter, *modelreg.Report) error) error {
	root := o.root(args)
	o.logger.Debug().Str("root", root).Str("format", o.cfg.Format).Bool("all", o.cfg.CollectAll).Msg("validating registry")

	rep := o.reporter(cmd)
	report, err := modelreg.Validate(cmd.Context(), root, o.validateOptions()...)
	if err != nil {
		if modelreg.KindOf(err) == modelreg.KindOther {
			// Not a registry violation: scan failure, cancellation.
			return fmt.Errorf("validate %s: %w", root, err)
		}
		if rerr := rep.failure(err); rerr != nil {
			return rerr
		}
		return &ExitError{Code: 1}
	}
	return onSuccess(rep, report)
}
