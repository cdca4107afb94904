package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <user-id>",
	Short: "Recommend the next difficulty level from session metrics",
	Long: "Reads study session metrics as JSON (from --file or stdin), classifies\n" +
		"the learner's flow zone and prints the recommended difficulty level.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		file, _ := cmd.Flags().GetString("file")
		retention, _ := cmd.Flags().GetFloat64("target-retention")

		raw, err := readInput(cmd, file)
		if err != nil {
			return err
		}
		var metrics difficulty.SessionMetrics
		if err := json.Unmarshal(raw, &metrics); err != nil {
			return fmt.Errorf("parse session metrics: %w", err)
		}

		eng, backend, err := openEngine(ctx, cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		d, err := eng.Decide(ctx, args[0], metrics, retention)
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return printJSON(cmd.OutOrStdout(), d)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderDecision(args[0], d))
		return nil
	},
}

func init() {
	adjustCmd.Flags().StringP("file", "f", "", "Session metrics JSON file (default stdin)")
	adjustCmd.Flags().Float64("target-retention", difficulty.DefaultTargetRetention, "Target recall probability, recorded with the decision")
}
