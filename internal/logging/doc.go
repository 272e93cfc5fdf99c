// Package logging provides structured JSON logging for formation runs.
//
// Logs are written with log/slog's JSON handler to {logDir}/teammate.log,
// which is rotated by size through RotatingWriter. Each line carries the
// standard slog fields (time, level, msg) plus any context attached with
// WithRun, WithPhase, WithTeam or With.
//
//	logger, err := logging.NewLogger(logging.Options{
//		Dir:      logDir,
//		Level:    "info",
//		Rotation: logging.DefaultRotationConfig(),
//	})
//	if err != nil {
//		return err
//	}
//	defer logger.Close()
//
//	runLog := logger.WithRun(runID).WithPhase("leaders")
//	runLog.Info("seeded team", "team", 1, "leader", "P007")
//
// ReadEntries and FilterEntries read the file back for the "teammate logs"
// command. NopLogger discards everything and is the default for library
// callers that do not configure logging.
package logging
