package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/augmentic/principia/internal/schema"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate <formula|document> <file>",
		Short:         "Validate a content file against its schema",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)

			kind := schema.Kind(args[0])
			path := args[1]

			verrs, err := schema.ValidateFile(kind, path)
			if err != nil {
				return WrapExitError(ExitCommandError, "validation", err)
			}

			if len(verrs) == 0 {
				if f.Format == "json" {
					return f.JSON(map[string]interface{}{
						"file":  path,
						"kind":  string(kind),
						"valid": true,
					})
				}
				fmt.Fprintf(f.Writer, "✓ %s is a valid %s\n", path, kind)
				return nil
			}

			if f.Format == "json" {
				_ = f.Fail(ErrCodeContent, fmt.Sprintf("%s is not a valid %s", path, kind), verrs)
			} else {
				fmt.Fprintf(f.Writer, "✗ %s is not a valid %s\n", path, kind)
				for _, ve := range verrs {
					if ve.Line > 0 {
						fmt.Fprintf(f.Writer, "  [%s] line %d: %s\n", ve.Code, ve.Line, ve.Message)
					} else {
						fmt.Fprintf(f.Writer, "  [%s] %s\n", ve.Code, ve.Message)
					}
				}
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(verrs)))
		},
	}
	return cmd
}
