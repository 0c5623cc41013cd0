package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pitchshare/internal/commit"
	"github.com/roach88/pitchshare/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <resource-id>",
		Short: "Print a resource's current allocation",
		Long: `Print the authoritative allocation of one resource.

Example:
  pitchshare show --db club.db match-2041
  pitchshare show --db club.db match-2041 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runShow(opts *ShowOptions, resourceID string, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	allocation, err := st.FetchAllocation(cmd.Context(), resourceID)
	if err != nil {
		if errors.Is(err, commit.ErrNotFound) {
			return WrapExitError(ExitFailure, fmt.Sprintf("no allocation for resource %s", resourceID), err)
		}
		return WrapExitError(ExitCommandError, "failed to fetch allocation", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.JSON(allocation)
	}

	out.Textf("%s  (%s)", allocation.Title, allocation.ResourceID)
	total := 0
	for _, row := range allocation.Rows {
		out.Textf("  %-10s %-20s %3d%%  %s", row.SubjectCode, row.SubjectName, row.SharePercent, row.Kind)
		total += row.SharePercent
	}
	out.Textf("  total: %d%%", total)
	return nil
}
