package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/pitchshare/internal/harness"
	"github.com/roach88/pitchshare/internal/store"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Database string
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <session-file>",
		Short: "Run a scripted edit session against the backend",
		Long: `Run a scripted edit session through the allocation engine.

The session file names a resource and a sequence of edit steps (add, select,
share, remove, save). The draft is seeded from the backend's current
allocation; every save is validated and, if approved, committed atomically
and re-fetched. Fixture sections of the file are ignored - apply operates on
the database as it stands.

Exits 1 if any save was rejected, any removal was refused, or a commit
failed; the backend is left untouched by rejected saves.

Example:
  pitchshare apply --db club.db rebalance.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runApply(opts *ApplyOptions, sessionPath string, cmd *cobra.Command) error {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	sc, err := harness.LoadScenario(sessionPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load session", err)
	}
	logger.Debug("session loaded", "name", sc.Name, "resource", sc.Resource, "steps", len(sc.Steps))

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	result, err := harness.Run(cmd.Context(), st, sc)
	if err != nil {
		return WrapExitError(ExitCommandError, "session failed", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		if err := out.JSON(result); err != nil {
			return err
		}
	} else {
		printResult(out, result)
	}

	for _, event := range result.Events {
		if event.Error != "" || event.Verdict == "rejected" {
			return NewExitError(ExitFailure, "session had rejected operations")
		}
	}
	return nil
}

func printResult(out *OutputFormatter, result *harness.Result) {
	for _, event := range result.Events {
		switch {
		case event.Error != "":
			out.Textf("step %d %s: error %s", event.Step, event.Op, event.Error)
		case len(event.Violations) > 0:
			out.Textf("step %d %s: %s (%s)", event.Step, event.Op, event.Verdict, strings.Join(event.Violations, ", "))
		default:
			out.Textf("step %d %s: %s", event.Step, event.Op, event.Verdict)
		}
	}
	out.Textf("final allocation of %s:", result.Final.ResourceID)
	for _, row := range result.Final.Rows {
		out.Textf("  %-10s %-20s %3d%%  %s", row.SubjectCode, row.SubjectName, row.SharePercent, row.Kind)
	}
}
