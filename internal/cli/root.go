package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "text" | "json"
	OutputDir string
	AgentMode bool
	SessionDB string
	Theme     string
}

// ValidFormats are the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the principia root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "principia",
		Short: "Principia - physics document press",
		Long: `Assembles PDF documents, LaTeX sources and chart images from a
static catalog of physics formula definitions.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", "out", "directory for generated files")
	cmd.PersistentFlags().BoolVar(&opts.AgentMode, "agent-mode", false, "record sessions and artifacts in the ledger")
	cmd.PersistentFlags().StringVar(&opts.SessionDB, "session-db", "", "path of the session ledger (default <output-dir>/sessions.db)")
	cmd.PersistentFlags().StringVar(&opts.Theme, "theme", "", "YAML theme file for PDF styling")

	cmd.AddCommand(NewFormulaCommand(opts))
	cmd.AddCommand(NewChartCommand(opts))
	cmd.AddCommand(NewLatexCommand(opts))
	cmd.AddCommand(NewPDFCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSessionCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newFormatter builds the Formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *Formatter {
	return &Formatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// newLogger builds the zap logger for a command invocation. Non-verbose
// runs get a nop logger; diagnostics belong to --verbose only.
func newLogger(opts *RootOptions) *zap.Logger {
	if !opts.Verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
