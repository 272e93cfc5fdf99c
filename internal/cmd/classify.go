package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <score>...",
	Short: "Show the archetype for personality scores",
	Long: `Show the archetype assigned to each personality score (1-100):
90-100 Leader, 70-89 Balanced, 50-69 Thinker, below 50 Motivator.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		score, err := strconv.Atoi(arg)
		if err != nil || score < 1 || score > 100 {
			return errors.NewValidationError("personality score must be an integer from 1 to 100").
				WithField("PersonalityScore").WithValue(arg)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", score, participant.ClassifyPersonality(score))
	}
	return nil
}
