package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect stored learner profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a learner's cognitive profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, backend, err := openEngine(ctx, cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		p, err := eng.Profile(ctx, args[0])
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("no profile for %q; run `studycycle assess %s` first", args[0], args[0])
		}

		if jsonOutput(cmd) {
			return printJSON(cmd.OutOrStdout(), p)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderProfile(p))
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learners with a stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		b, err := openBackend(ctx, cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		lister, ok := b.Lister()
		if !ok {
			return fmt.Errorf("the selected store cannot list profiles")
		}
		ids, err := lister.List(ctx)
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return printJSON(cmd.OutOrStdout(), ids)
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
}
