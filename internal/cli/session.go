package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/augmentic/principia/internal/session"
)

// openLedger opens the session ledger read side, honoring --session-db.
func openLedger(rootOpts *RootOptions) (*session.Store, error) {
	path := rootOpts.SessionDB
	if path == "" {
		path = filepath.Join(rootOpts.OutputDir, "sessions.db")
	}
	return session.Open(path, session.WithLogger(newLogger(rootOpts)))
}

// NewSessionCommand creates the session command group.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect the agent session ledger",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List recorded sessions, most recent first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			store, err := openLedger(rootOpts)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening session ledger", err)
			}
			defer store.Close()

			sessions, err := store.Sessions(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "listing sessions", err)
			}
			if f.Format == "json" {
				return f.JSON(sessions)
			}
			if len(sessions) == 0 {
				fmt.Fprintln(f.Writer, "no sessions recorded")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintf(f.Writer, "%s  %s  %s\n",
					s.ID, s.Mode, s.StartedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "show <id>",
		Short:         "Show the artifacts recorded in one session",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			store, err := openLedger(rootOpts)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening session ledger", err)
			}
			defer store.Close()

			artifacts, err := store.Artifacts(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "listing artifacts", err)
			}
			if f.Format == "json" {
				return f.JSON(artifacts)
			}
			if len(artifacts) == 0 {
				fmt.Fprintln(f.Writer, "no artifacts recorded")
				return nil
			}
			for _, a := range artifacts {
				fmt.Fprintf(f.Writer, "%-4s %-24s %s\n", a.Kind, a.Name, a.Path)
			}
			return nil
		},
	})

	return cmd
}
