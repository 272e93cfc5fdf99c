package cmd

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/logging"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/report"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View formation logs",
	Long: `View and filter the formation log (teammate.log in the log directory).

Examples:
  # Show the last 50 entries
  teammate logs

  # Everything logged for one run
  teammate logs --run 6f1c... -n 0

  # Warnings and errors from the last hour
  teammate logs --level warn --since 1h

  # Search messages and attributes
  teammate logs --grep "rerouted|invariant"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail  int
	logsLevel string
	logsSince string
	logsRun   string
	logsPhase string
	logsGrep  string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsRun, "run", "", "Only entries for this run id")
	logsCmd.Flags().StringVar(&logsPhase, "phase", "", "Only entries for this phase (leaders/thinkers/generalists/finalize/leftover)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries matching pattern (regex)")
}

// logQuery is the parsed form of the logs command flags.
type logQuery struct {
	filter logging.Filter
	grep   *regexp.Regexp
	tail   int
}

func parseLogQuery(now time.Time) (logQuery, error) {
	q := logQuery{
		tail: logsTail,
		filter: logging.Filter{
			RunID: logsRun,
			Phase: logsPhase,
		},
	}
	if logsLevel != "" {
		q.filter.Level = logging.ParseLevel(logsLevel)
	}
	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return q, errors.NewValidationError("invalid duration").WithField("since").WithValue(logsSince).WithCause(err)
		}
		q.filter.Since = now.Add(-d)
	}
	if logsGrep != "" {
		re, err := regexp.Compile(logsGrep)
		if err != nil {
			return q, errors.NewValidationError("invalid grep pattern").WithField("grep").WithValue(logsGrep).WithCause(err)
		}
		q.grep = re
	}
	return q, nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	q, err := parseLogQuery(time.Now())
	if err != nil {
		return err
	}

	logDir := cfg.Paths.ResolveLogDir()
	entries, err := logging.ReadEntries(logDir)
	if errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No logs found in %s\n", logDir)
		return nil
	}
	if err != nil {
		return err
	}

	color := false
	if out, ok := cmd.OutOrStdout().(*os.File); ok {
		color = cfg.Output.Color && report.IsTerminal(out)
	}
	return displayLogs(cmd.OutOrStdout(), entries, q, color)
}

var levelStyles = map[string]lipgloss.Style{
	logging.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	logging.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
	logging.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	logging.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")),
}

// displayLogs prints the entries matching q, keeping only the last q.tail.
func displayLogs(w io.Writer, entries []logging.Entry, q logQuery, color bool) error {
	var lines []string
	for _, e := range logging.FilterEntries(entries, q.filter) {
		line := e.Format()
		if q.grep != nil && !q.grep.MatchString(line) {
			continue
		}
		if style, ok := levelStyles[e.Level]; ok && color {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}

	if q.tail > 0 && len(lines) > q.tail {
		lines = lines[len(lines)-q.tail:]
	}
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "No matching log entries found.")
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
