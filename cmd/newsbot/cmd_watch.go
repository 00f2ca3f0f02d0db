package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the dashboard data fresh on an interval",
	Long: `watch calls FetchAll repeatedly. Keys whose TTL has not elapsed are
served from cache, so each round only hits the network for data that has
actually gone stale. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		metrics := &types.CounterMetrics{}
		coord := newCoordinator(cfg, metrics)
		defer coord.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		for {
			coord.FetchAll(ctx)

			logger.Info("fetch round settled",
				zap.Int64("hits", metrics.Hits.Load()),
				zap.Int64("misses", metrics.Misses.Load()),
				zap.Int64("fetch_errors", metrics.FetchErrors.Load()),
				zap.Int64("expired", metrics.Expires.Load()),
				zap.Int("cached_entries", coord.CacheLen()),
				zap.Bool("has_errors", coord.HasErrors()),
			)

			select {
			case <-ctx.Done():
				logger.Info("watch stopped")
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Minute, "Time between fetch rounds")
	rootCmd.AddCommand(watchCmd)
}
