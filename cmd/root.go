package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eduardo5010/study-cycle-sub001/internal/engine"
	"github.com/eduardo5010/study-cycle-sub001/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studycycle",
	Short: "Adaptive difficulty engine for study sessions",
	Long: "studycycle assesses learners, adjusts the difficulty of their next study\n" +
		"material from session telemetry, and tailors content to their profile.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		configureLogger(cmd)
		return nil
	},
}

// logger is shared by every command.
var logger = logrus.New()

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides STUDYCYCLE_DB)")
	pf.String("store", "", "Profile store: sqlite, memory, cache or redis (overrides STUDYCYCLE_STORE)")
	pf.String("redis-addr", "", "Redis address for the redis store (overrides STUDYCYCLE_REDIS_ADDR)")
	pf.BoolP("verbose", "v", false, "Log engine decisions")
	pf.Bool("json", false, "Print results as JSON")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// configureLogger applies --verbose and STUDYCYCLE_LOG_FORMAT. Logs go to
// stderr so JSON output on stdout stays clean.
func configureLogger(cmd *cobra.Command) {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		logger.SetLevel(logrus.DebugLevel)
	}
	if os.Getenv("STUDYCYCLE_LOG_FORMAT") == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
}

// storeConfig resolves the store configuration: flags first, then
// STUDYCYCLE_* env vars, then defaults.
func storeConfig(cmd *cobra.Command) store.Config {
	cfg := store.ConfigFromEnv()
	if b, _ := cmd.Flags().GetString("store"); b != "" {
		cfg.Backend = b
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if a, _ := cmd.Flags().GetString("redis-addr"); a != "" {
		cfg.RedisAddr = a
	}
	return cfg
}

// openBackend opens the configured store. Callers must Close it.
func openBackend(ctx context.Context, cmd *cobra.Command) (*store.Backend, error) {
	b, err := store.OpenBackend(ctx, storeConfig(cmd))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return b, nil
}

// openEngine opens the store and builds an engine over it.
func openEngine(ctx context.Context, cmd *cobra.Command) (*engine.Engine, *store.Backend, error) {
	b, err := openBackend(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}
	opts := []engine.Option{engine.WithLogger(logger)}
	if b.Events != nil {
		opts = append(opts, engine.WithEvents(b.Events))
	}
	return engine.New(b.Profiles, opts...), b, nil
}

// jsonOutput reports whether --json was set.
func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
