package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/pitchshare/internal/store"
)

// SubjectsOptions holds flags for the subjects command.
type SubjectsOptions struct {
	*RootOptions
	Database string
	Filter   string
}

// NewSubjectsCommand creates the subjects command.
func NewSubjectsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SubjectsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List candidate beneficiaries",
		Long: `List the active entries of the candidate subject directory.

Example:
  pitchshare subjects --db club.db
  pitchshare subjects --db club.db --filter smith`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubjects(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "substring filter on code or name")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSubjects(opts *SubjectsOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	subjects, err := st.ListSubjects(cmd.Context(), opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list subjects", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.JSON(subjects)
	}

	for _, sub := range subjects {
		out.Textf("%-10s %s", sub.Code, sub.Name)
	}
	out.Textf("%d subject(s)", len(subjects))
	return nil
}
