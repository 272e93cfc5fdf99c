package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/allocation"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/config"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/event"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/logging"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/report"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/roster"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/store/sqlite"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/watch"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Form teams from a participant file",
	Long: `Load participants from a CSV file, form balanced teams and report the
result. Participants who cannot be placed stay in the unassigned pool; with
leftover enabled a relaxed second pass tries to build extra teams from them.

Examples:
  # Teams of five from participants.csv, written to formed_teams.csv
  teammate form

  # Teams of four, reproducible, recorded in a database
  teammate form -s 4 --seed 42 --db runs.db

  # Re-form every time the roster is saved
  teammate form -i roster.csv --watch`,
	Args: cobra.NoArgs,
	RunE: runForm,
}

var (
	formWatch            bool
	formProgress         bool
	formUnassignedOutput string
)

func init() {
	rootCmd.AddCommand(formCmd)

	formCmd.Flags().StringP("input", "i", "", "participant CSV file")
	formCmd.Flags().StringP("output", "o", "", "CSV file to write formed teams to")
	formCmd.Flags().IntP("team-size", "s", 0, "members per team")
	formCmd.Flags().IntP("parallel", "p", 0, "placement workers (1 = sequential)")
	formCmd.Flags().Int64("seed", 0, "random seed for reproducible runs (0 = time-based)")
	formCmd.Flags().Bool("leftover", true, "run the relaxed leftover pass on the unassigned pool")
	formCmd.Flags().String("db", "", "SQLite database to record the run in")
	formCmd.Flags().String("format", "", "output format (text/json)")
	formCmd.Flags().Bool("color", true, "style text output")
	formCmd.Flags().BoolVarP(&formWatch, "watch", "w", false, "re-form whenever the input file changes")
	formCmd.Flags().BoolVar(&formProgress, "progress", false, "print formation progress to stderr")
	formCmd.Flags().StringVar(&formUnassignedOutput, "unassigned-output", "", "CSV file to write unassigned participants to")

	bindings := map[string]string{
		"paths.participants_file": "input",
		"paths.teams_file":        "output",
		"paths.database":          "db",
		"formation.team_size":     "team-size",
		"formation.parallelism":   "parallel",
		"formation.seed":          "seed",
		"formation.leftover":      "leftover",
		"output.format":           "format",
		"output.color":            "color",
	}
	for key, flag := range bindings {
		_ = viper.BindPFlag(key, formCmd.Flags().Lookup(flag))
	}
}

func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := newFormRunner(ctx, cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	defer func() { _ = runner.Close() }()
	runner.unassignedFile = formUnassignedOutput
	if formProgress {
		runner.bus.SubscribeAll(progressHandler(cmd.ErrOrStderr()))
	}
	if out, ok := cmd.OutOrStdout().(*os.File); ok {
		runner.width = report.TerminalWidth(out)
		runner.styles = stylesFor(cfg, out)
	}

	err = runner.Run(ctx)
	if !formWatch {
		return err
	}
	return runner.watch(ctx, cmd.ErrOrStderr(), err)
}

// watch reports the outcome of the first run, then re-runs on every change to
// the participant file until ctx ends or a run fails with an internal fault.
func (r *formRunner) watch(ctx context.Context, errOut io.Writer, first error) error {
	if first != nil {
		if !keepWatching(first) {
			return first
		}
		reportError(errOut, first)
	}

	w, err := watch.New(r.cfg.Paths.ParticipantsFile, watch.WithLogger(r.logger), watch.WithEvents(r.bus))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var fatal error
	_, _ = fmt.Fprintf(errOut, "Watching %s (Ctrl+C to stop)\n", w.Path())
	if err := w.Run(ctx, func(ctx context.Context) error {
		_, _ = fmt.Fprintln(r.out)
		err := r.Run(ctx)
		if err != nil && !keepWatching(err) {
			fatal = err
			cancel()
		} else if err != nil {
			reportError(errOut, err)
		}
		return err
	}); err != nil {
		return err
	}
	return fatal
}

// keepWatching reports whether watch mode survives err. Problems the user
// can fix by editing the roster, and transient storage failures, wait for
// the next change; internal faults stop the watch.
func keepWatching(err error) bool {
	return errors.IsUserFacing(err) || errors.IsRetryable(err)
}

func stylesFor(cfg *config.Config, out *os.File) report.Styles {
	if cfg.Output.Color && report.IsTerminal(out) {
		return report.ColorStyles()
	}
	return report.PlainStyles()
}

// formRunner performs one formation per Run call against a fixed
// configuration. Each run gets a fresh session so stored runs never collide.
type formRunner struct {
	cfg            *config.Config
	out            io.Writer
	logger         *logging.Logger
	engine         *allocation.Engine
	session        *allocation.Session
	bus            *event.Bus
	store          *sqlite.Store
	unassignedFile string
	styles         report.Styles
	width          int
}

func newFormRunner(ctx context.Context, cfg *config.Config, out io.Writer, logger *logging.Logger) (*formRunner, error) {
	bus := event.NewBus(logger)
	r := &formRunner{
		cfg:     cfg,
		out:     out,
		logger:  logger,
		bus:     bus,
		session: allocation.NewSession(),
		styles:  report.PlainStyles(),
		width:   report.DefaultWidth,
		engine: allocation.NewEngine(
			allocation.WithLogger(logger),
			allocation.WithEvents(bus),
			allocation.WithSeed(cfg.Formation.Seed),
			allocation.WithParallelism(cfg.Formation.Parallelism),
			allocation.WithCaps(cfg.Formation.ActivityCap, cfg.Formation.ThinkerCap, cfg.Formation.DiversityThreshold),
		),
	}
	if cfg.Paths.Database != "" {
		store, err := sqlite.Open(ctx, cfg.Paths.Database)
		if err != nil {
			return nil, err
		}
		r.store = store
	}
	return r, nil
}

// Close releases the run store, if any.
func (r *formRunner) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// Run loads the roster, forms teams, persists them and prints the report.
func (r *formRunner) Run(ctx context.Context) error {
	cfg := r.cfg
	participants, err := roster.LoadParticipants(cfg.Paths.ParticipantsFile)
	if err != nil {
		return err
	}

	r.session.Reset()
	log := r.logger.WithRun(r.session.ID())
	log.Info("formation requested",
		"source", cfg.Paths.ParticipantsFile,
		"participants", len(participants),
		"team_size", cfg.Formation.TeamSize,
	)

	teams, err := r.engine.FormTeams(ctx, r.session, participants, cfg.Formation.TeamSize)
	if err != nil {
		return errors.Wrap(err, "form teams")
	}
	if cfg.Formation.Leftover {
		extra, err := r.engine.FormLeftoverTeams(ctx, r.session, cfg.Formation.TeamSize)
		if err != nil {
			return errors.Wrap(err, "form leftover teams")
		}
		teams = append(teams, extra...)
	}
	pool := r.session.Unassigned()
	summary := allocation.Summarize(teams, pool)

	if cfg.Paths.TeamsFile != "" {
		if err := roster.SaveTeams(cfg.Paths.TeamsFile, teams); err != nil {
			return err
		}
	}
	if r.unassignedFile != "" {
		if err := roster.SaveUnassigned(r.unassignedFile, pool); err != nil {
			return err
		}
	}
	if r.store != nil {
		run := sqlite.Run{
			ID:         r.session.ID(),
			TeamSize:   cfg.Formation.TeamSize,
			TargetAvg:  summary.TargetAvg,
			Seed:       cfg.Formation.Seed,
			Leftover:   cfg.Formation.Leftover,
			Source:     cfg.Paths.ParticipantsFile,
			Teams:      teams,
			Unassigned: pool,
		}
		err := withRetry(ctx, saveAttempts, saveBackoff, func() error {
			return r.store.SaveRun(ctx, run)
		})
		if err != nil {
			return err
		}
	}

	log.Info("formation finished",
		"teams", len(teams),
		"unassigned", len(pool),
		"spread", summary.Spread,
	)
	return r.render(report.NewResult(r.session.ID(), teams, pool))
}

// Retry budget for store writes that fail with a retryable error, such as
// a busy database.
const (
	saveAttempts = 3
	saveBackoff  = 250 * time.Millisecond
)

// withRetry calls fn until it succeeds, fails with an error that is not
// retryable, or runs out of attempts.
func withRetry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !errors.IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
		}
	}
	return err
}

func (r *formRunner) render(res report.Result) error {
	if r.cfg.Output.Format == "json" {
		return report.WriteJSON(r.out, res)
	}
	return printResult(report.NewPrinter(r.out, r.styles, r.width), res, r.cfg.Paths.TeamsFile)
}

func printResult(p *report.Printer, res report.Result, teamsFile string) error {
	teams := res.TeamList()
	_ = p.Teams(teams)
	_ = p.Blank()
	_ = p.Unassigned(res.Unassigned)
	_ = p.Blank()
	if err := p.Summary(res.Summary); err != nil {
		return err
	}
	if teamsFile != "" && len(teams) > 0 {
		_ = p.Note(fmt.Sprintf("Teams saved to %s", teamsFile))
	}
	return p.Err()
}

// progressHandler prints one line per formation event.
func progressHandler(w io.Writer) event.Handler {
	return func(e event.Event) {
		var line string
		switch ev := e.(type) {
		case event.PhaseCompletedEvent:
			line = fmt.Sprintf("%-11s teams=%d pool=%d", ev.Phase, ev.Teams, ev.Pool)
		case event.FormationCompletedEvent:
			line = fmt.Sprintf("%s pass done: %d teams, %d unassigned", ev.Pass, ev.Teams, ev.Unassigned)
			if ev.Skipped != "" {
				line += " (skipped: " + ev.Skipped + ")"
			}
		case event.FormationFailedEvent:
			line = fmt.Sprintf("formation failed in %s: %v", ev.Stage, ev.Err)
		case event.PlacementFailedEvent:
			line = fmt.Sprintf("participant %s unassigned after a fault in %s: %v", ev.ParticipantID, ev.Phase, ev.Err)
		case event.PlacementReroutedEvent:
			line = fmt.Sprintf("participant %s rerouted to pool (%s)", ev.ParticipantID, ev.Reason)
		case event.RosterChangedEvent:
			line = fmt.Sprintf("%s changed, re-forming", ev.Path)
		default:
			return
		}
		_, _ = fmt.Fprintf(w, "[%s] %s\n", e.Timestamp().Format("15:04:05"), line)
	}
}
