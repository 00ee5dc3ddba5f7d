package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/format"
	"github.com/agentic-research/codegraph/internal/metrics"
	"github.com/agentic-research/codegraph/internal/query"
)

// statsReport is stats() (api.Stats, the fixed schema) plus the current
// process's metrics snapshot, the shape `stats --json` actually prints.
// The plain-text path only renders the api.Stats half — process metrics
// reset every invocation and aren't meaningful without a long-lived
// `serve`/`watch` process behind them.
type statsReport struct {
	api.Stats
	Metrics metrics.Snapshot `json:"metrics"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Counts of files, symbols, and edges, plus the last index run's timing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		start := time.Now()
		st, err := query.Stats(ctx.Store)
		ctx.Metrics.QueryLatency.WithLabelValues("stats").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if jsonOut {
			return format.JSON(cmd.OutOrStdout(), statsReport{Stats: st, Metrics: ctx.Metrics.Snapshot()})
		}
		format.Stats(cmd.OutOrStdout(), st)
		return nil
	},
}
