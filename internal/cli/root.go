package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tagdoc/xmldoc/pkg/buildinfo"
	"github.com/tagdoc/xmldoc/pkg/config"
	"github.com/tagdoc/xmldoc/pkg/mdbook"
	"github.com/tagdoc/xmldoc/pkg/pipeline"
)

// Execute runs the xmldoc CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (check,
// generate, supports), configures logging from xmldoc.toml and the
// --verbose flag, and executes the command tree. Invoking the binary
// without a subcommand runs the mdBook preprocessor protocol over
// stdin/stdout.
//
// Logging:
//   - Default: level from xmldoc.toml (info when absent), to stderr
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. Setup failures (unreadable or invalid configuration)
// carry the INVALID_CONFIG error code so main can map them to a dedicated
// exit status.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "xmldoc",
		Short:        "xmldoc generates markdown reference documentation for XML vocabularies",
		Long: `xmldoc converts a declarative YAML description of an XML vocabulary
(tag names, attributes, parent/child relationships) into markdown reference
documentation. It works standalone (check, generate) and as an mdBook
preprocessor (supports, no-argument stdin/stdout protocol).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level, err := cfg.LogLevel()
			if err != nil {
				return err
			}
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
		// No subcommand: act as an mdBook preprocessor.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocess(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the xmldoc.toml config file")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newSupportsCmd())

	return root.ExecuteContext(ctx)
}

// runPreprocess executes the mdBook preprocessor protocol on the process
// stdio streams, rendering with the configured generate defaults.
func runPreprocess(ctx context.Context) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	runner := pipeline.NewRunner(logger)
	pre := mdbook.New(runner, logger, pipeline.Options{
		Level: cfg.Generate.Level,
		CRLF:  cfg.Generate.CRLF,
	})
	return pre.Run(os.Stdin, os.Stdout)
}
