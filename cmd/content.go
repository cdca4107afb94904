package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eduardo5010/study-cycle-sub001/internal/content"
	"github.com/eduardo5010/study-cycle-sub001/internal/llm"
	"github.com/eduardo5010/study-cycle-sub001/internal/rewrite"
	"github.com/eduardo5010/study-cycle-sub001/internal/store"
)

var contentCmd = &cobra.Command{
	Use:   "content <user-id>",
	Short: "Generate difficulty variations of study material for a learner",
	Long: "Takes study material from --text, --file or stdin and prints five\n" +
		"difficulty variations with learner hints, cognitive demand and time\n" +
		"estimates. JSON input is kept structured; anything else is treated as\n" +
		"text. With --rewrite the transformed variations are rewritten by the\n" +
		"configured LLM provider.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		text, _ := cmd.Flags().GetString("text")
		file, _ := cmd.Flags().GetString("file")
		scFlag, _ := cmd.Flags().GetString("context")
		useLLM, _ := cmd.Flags().GetBool("rewrite")

		sc, err := content.ParseStudyContext(scFlag)
		if err != nil {
			return err
		}

		base := any(text)
		if text == "" {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			base = decodeMaterial(raw)
		}

		eng, backend, err := openEngine(ctx, cmd)
		if err != nil {
			return err
		}
		defer backend.Close()

		ac, err := eng.GenerateAdaptiveContent(ctx, base, args[0], sc)
		if err != nil {
			return err
		}

		if useLLM {
			ac, err = rewriteContent(cmd, backend, ac)
			if err != nil {
				return err
			}
		}

		if jsonOutput(cmd) {
			return printJSON(cmd.OutOrStdout(), ac)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderContent(ac))
		return nil
	},
}

// decodeMaterial keeps JSON documents structured and falls back to text.
func decodeMaterial(raw []byte) any {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	}
	return trimmed
}

func rewriteContent(cmd *cobra.Command, backend *store.Backend, ac content.AdaptiveContent) (content.AdaptiveContent, error) {
	ctx := cmd.Context()
	provider, err := llm.NewProviderFromEnv(ctx, backend.Events, logger)
	if err != nil {
		return ac, fmt.Errorf("configure llm provider: %w", err)
	}

	cfg := rewrite.DefaultConfig()
	if p, _ := cmd.Flags().GetInt("parallel"); p > 0 {
		cfg.Parallelism = p
	}
	svc := rewrite.NewService(provider, cfg)

	out, err := svc.Rewrite(ctx, ac)
	if err != nil {
		return ac, fmt.Errorf("rewrite variations: %w", err)
	}
	return out, nil
}

func init() {
	f := contentCmd.Flags()
	f.StringP("text", "t", "", "Study material as text")
	f.StringP("file", "f", "", "Read study material from a file (default stdin)")
	f.String("context", string(content.ContextStudy), "Study context: study, review or practice")
	f.Bool("rewrite", false, "Rewrite variations with the configured LLM provider")
	f.Int("parallel", 0, "Concurrent LLM rewrites (default from config)")
}
