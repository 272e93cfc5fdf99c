package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/config"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/report"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/roster"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/store/sqlite"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect formation runs recorded in the database",
	Long: `Inspect formation runs recorded by 'teammate form --db'.

The database defaults to paths.database from the configuration.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the teams and unassigned pool of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsExportCmd = &cobra.Command{
	Use:   "export <run-id> <file>",
	Short: "Write the teams of a run to a CSV file",
	Args:  cobra.ExactArgs(2),
	RunE:  runRunsExport,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var (
	runsDB    string
	runsLimit int
	runsJSON  bool
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsExportCmd, runsDeleteCmd)

	runsCmd.PersistentFlags().StringVar(&runsDB, "db", "", "SQLite database (default: paths.database)")
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum runs to list (0 for all)")
	runsShowCmd.Flags().BoolVar(&runsJSON, "json", false, "print the run as JSON")
}

// openRunStore opens the database named by --db or the configuration.
func openRunStore(ctx context.Context) (*sqlite.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	path := runsDB
	if path == "" {
		path = cfg.Paths.Database
	}
	if path == "" {
		return nil, nil, errors.NewValidationError("no database configured; pass --db or set paths.database").WithField("paths.database")
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func runRunsList(cmd *cobra.Command, args []string) error {
	store, _, err := openRunStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	return report.NewPrinter(cmd.OutOrStdout(), report.PlainStyles(), 0).Runs(runs)
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	store, cfg, err := openRunStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	res := report.NewResult(run.ID, run.Teams, run.Unassigned)
	if runsJSON || cfg.Output.Format == "json" {
		return report.WriteJSON(cmd.OutOrStdout(), res)
	}

	p := report.NewPrinter(cmd.OutOrStdout(), report.PlainStyles(), 0)
	_ = p.Note(fmt.Sprintf("Run %s from %s, team size %d, source %s",
		run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"), run.TeamSize, run.Source))
	_ = p.Blank()
	return printResult(p, res, "")
}

func runRunsExport(cmd *cobra.Command, args []string) error {
	store, _, err := openRunStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	teams, err := store.RunTeams(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := roster.SaveTeams(args[1], teams); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d teams to %s\n", len(teams), args[1])
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	store, _, err := openRunStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteRun(cmd.Context(), args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
	return nil
}
