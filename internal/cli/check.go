package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagdoc/xmldoc/pkg/errors"
	"github.com/tagdoc/xmldoc/pkg/pipeline"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	strict bool // treat a nonzero warning count as a failure
}

// newCheckCmd creates the check command.
// It loads a taglist file, builds the model, and reports the accumulated
// warnings without rendering anything. Warnings are informational by
// default; --strict turns them into a failure for CI-style callers.
func newCheckCmd() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a taglist file and report warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())
			runner := pipeline.NewRunner(logger)

			list, warnings, err := runner.Check(args[0])
			if err != nil {
				return err
			}

			for _, warning := range warnings {
				logger.Warn(warning)
			}
			logger.Debugf("model holds %d tags in namespace %q", list.Len(), list.Namespace())

			fmt.Println(checkSummary(args[0], len(warnings)))

			if opts.strict && len(warnings) > 0 {
				return errors.New(errors.ErrCodeInvalidSchema, "%d warning(s) in strict mode", len(warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when the taglist produces warnings")

	return cmd
}
