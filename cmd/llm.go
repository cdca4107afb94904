package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eduardo5010/study-cycle-sub001/internal/store"
	"github.com/eduardo5010/study-cycle-sub001/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		b, events, err := openEvents(ctx, cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		shown, err := events.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}
		if shown == nil {
			shown = []store.LLMRequestEvent{}
		}

		out := cmd.OutOrStdout()
		if jsonOutput(cmd) {
			return printJSON(out, shown)
		}
		if len(shown) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No LLM requests recorded."))
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-18s  %-12s  %-24s  %6s  %6s  %6s  %s\n",
			"ID", "Time", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 112))
		for _, e := range shown {
			fmt.Fprintf(out, "%-5d  %-19s  %-18s  %-12s  %-24s  %6d  %6d  %6d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				clip(e.Purpose, 18),
				clip(e.Provider, 12),
				clip(e.Model, 24),
				e.InputTokens, e.OutputTokens, e.LatencyMs,
				okMark(e.Success))
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		b, events, err := openEvents(ctx, cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		e, err := events.GetLLMEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("llm event %d not found", id)
		}

		out := cmd.OutOrStdout()
		if jsonOutput(cmd) {
			return printJSON(out, e)
		}

		fmt.Fprintf(out, "Event     %d (seq %d)\n", e.ID, e.Sequence)
		fmt.Fprintf(out, "Time      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Provider  %s / %s\n", e.Provider, e.Model)
		fmt.Fprintf(out, "Purpose   %s\n", e.Purpose)
		fmt.Fprintf(out, "Tokens    %d in, %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(out, "Latency   %dms\n", e.LatencyMs)
		fmt.Fprintf(out, "Result    %s\n", okMark(e.Success))
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "Error     %s\n", theme.Warn.Render(e.ErrorMessage))
		}

		section(out, "REQUEST", e.RequestBody)
		section(out, "RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize LLM usage by purpose",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		b, events, err := openEvents(ctx, cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		usage, err := events.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query llm usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput(cmd) {
			return printJSON(out, usage)
		}
		if len(usage) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No LLM usage recorded."))
			return nil
		}

		fmt.Fprintf(out, "%-20s  %6s  %6s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "OK", "Input", "Output", "Avg ms")
		fmt.Fprintln(out, strings.Repeat("─", 70))

		var calls, ok, in, outTok int
		for _, u := range usage {
			fmt.Fprintf(out, "%-20s  %6d  %6d  %10d  %10d  %8d\n",
				clip(u.Purpose, 20), u.Calls, u.Succeeded, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			calls += u.Calls
			ok += u.Succeeded
			in += u.InputTokens
			outTok += u.OutputTokens
		}
		fmt.Fprintln(out, strings.Repeat("─", 70))
		fmt.Fprintf(out, "%-20s  %6d  %6d  %10d  %10d\n", "TOTAL", calls, ok, in, outTok)
		return nil
	},
}

func section(w io.Writer, title, body string) {
	rule := strings.Repeat("─", 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, theme.Title.Render(title), rule)
	if body == "" {
		body = theme.Hint.Render("(not captured)")
	}
	fmt.Fprintln(w, body)
}

func okMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Max events to show")
	llmListCmd.Flags().String("purpose", "", "Only show events with this purpose")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
