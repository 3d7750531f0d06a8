package cli

import (
	"github.com/spf13/cobra"

	"github.com/tagdoc/xmldoc/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	level int  // heading level for tag sections
	crlf  bool // use CRLF line endings
}

// newGenerateCmd creates the generate command.
// It loads a taglist file and renders markdown documentation to the given
// output path, or to stdout when the output argument is omitted or "-".
// Flags override xmldoc.toml defaults, which override built-in defaults.
func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <file> [output]",
		Short: "Generate markdown documentation from a taglist file",
		Long: `Generate markdown documentation from a taglist file.

The output argument selects the destination: a filesystem path (created or
truncated) or "-" for stdout. Omitting it also writes to stdout.

Examples:
  xmldoc generate taglist.yml reference.md
  xmldoc generate taglist.yml -            # write to stdout
  xmldoc generate --level 2 taglist.yml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())
			cfg := configFromContext(c.Context())

			level := cfg.Generate.Level
			if c.Flags().Changed("level") {
				level = opts.level
			}
			crlf := cfg.Generate.CRLF
			if c.Flags().Changed("crlf") {
				crlf = opts.crlf
			}

			output := pipeline.StdoutSentinel
			if len(args) == 2 {
				output = args[1]
			}

			runner := pipeline.NewRunner(logger)
			warnings, err := runner.Generate(args[0], output, pipeline.Options{
				Level: level,
				CRLF:  crlf,
			})
			if err != nil {
				return err
			}

			// Warnings never fail the render path on their own.
			for _, warning := range warnings {
				logger.Warn(warning)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.level, "level", 0, "heading level for tag sections (1-6)")
	cmd.Flags().BoolVar(&opts.crlf, "crlf", false, "use CRLF line endings")

	return cmd
}
