package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justbuildpd-sudo/newsbot-sub000/dashboard"
	"github.com/justbuildpd-sudo/newsbot-sub000/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch every dashboard key once and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		coord := newCoordinator(cfg, types.NoopMetrics{})
		defer coord.Close()

		coord.FetchAll(cmd.Context())
		snap := coord.Snapshot()

		type keyReport struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
			Value  any    `json:"value,omitempty"`
		}

		report := make(map[dashboard.Key]keyReport, len(snap.Data))
		for _, k := range dashboard.Keys() {
			r := keyReport{Status: snap.Status[k].String()}
			if msg, ok := snap.Errors[k]; ok {
				r.Error = msg
			} else {
				r.Value = snap.Data[k]
			}
			report[k] = r
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		if snap.HasErrors() {
			return fmt.Errorf("%d of %d keys failed", len(snap.Errors), len(snap.Data))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
