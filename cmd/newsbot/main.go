// newsbot is the command-line frontend of the dashboard data layer.
// It can fetch the dashboard once, watch it on an interval, or run a local
// mock backend for development.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	coordinator "github.com/justbuildpd-sudo/newsbot-sub000"
	"github.com/justbuildpd-sudo/newsbot-sub000/config"
	"github.com/justbuildpd-sudo/newsbot-sub000/fetch"
	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

var (
	// Global flags
	configPath string
	baseURL    string
	logLevel   string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "newsbot",
	Short: "Political-news dashboard data layer",
	Long: `newsbot coordinates the data behind the political-news dashboard:
it fetches politician rosters, bill scores, news statistics, and trend
series from the backend, caches each with its own TTL, and only hits the
network for keys whose cache has gone stale.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "newsbot.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (overrides config and "+config.EnvBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func setupLogger() error {
	return buildLogger("info")
}

func buildLogger(level string) error {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// The --log-level flag wins over the config file.
	if logLevel != "" {
		level = logLevel
	}
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(parsed)

	logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies the command-line overrides
// on top of it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if cfg.LogLevel != "" {
		if err := buildLogger(cfg.LogLevel); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newCoordinator wires a coordinator from the effective configuration.
func newCoordinator(cfg config.Config, metrics types.Metrics) *coordinator.Coordinator {
	fetcher := fetch.NewHTTPFetcher(cfg.BaseURL,
		fetch.WithTimeout(cfg.Timeout()),
		fetch.WithLogger(logger.Named("fetch")),
	)
	return coordinator.New(fetcher,
		coordinator.WithTTLs(cfg.TTLs()),
		coordinator.WithSweepInterval(cfg.Sweep()),
		coordinator.WithMetrics(metrics),
		coordinator.WithLogger(logger.Named("coordinator")),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
