package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tagdoc/xmldoc/pkg/errors"
)

// newSupportsCmd creates the supports command implementing the mdBook
// capability query: mdBook runs "supports <renderer>" before each build and
// only invokes the preprocessor when the command exits successfully. xmldoc
// produces markdown, which only the html renderer consumes.
func newSupportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "supports <renderer>",
		Short:  "mdBook capability query",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if strings.EqualFold(args[0], "html") {
				return nil
			}
			return errors.New(errors.ErrCodeUnsupported, "renderer %q is not supported", args[0])
		},
	}
}
