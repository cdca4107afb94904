package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eduardo5010/study-cycle-sub001/internal/profile"
)

var assessCmd = &cobra.Command{
	Use:   "assess <user-id>",
	Short: "Build a learner profile from assessment results",
	Long: "Reads assessment results as a JSON object (from --file or stdin) and\n" +
		"replaces the learner's profile. Missing fields take default values.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		file, _ := cmd.Flags().GetString("file")

		raw, err := readInput(cmd, file)
		if err != nil {
			return err
		}
		results, err := profile.ParseAssessmentResults(raw)
		if err != nil {
			return err
		}

		eng, backend, err := openEngine(ctx, cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		p, err := eng.AssessUserProfile(ctx, args[0], results)
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return printJSON(cmd.OutOrStdout(), p)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderProfile(p))
		return nil
	},
}

func init() {
	assessCmd.Flags().StringP("file", "f", "", "Assessment results JSON file (default stdin)")
}
