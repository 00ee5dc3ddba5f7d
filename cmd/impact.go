package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/format"
	"github.com/agentic-research/codegraph/internal/query"
)

var impactDepth int

var impactCmd = &cobra.Command{
	Use:   "impact <name>",
	Short: "Bounded breadth-first traversal over the reverse edge graph from <name>",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		depth := impactDepth
		if depth < 0 {
			depth = ctx.Config.ImpactDepth
		}

		start := time.Now()
		rows, err := query.Impact(ctx.Store, args[0], depth)
		ctx.Metrics.QueryLatency.WithLabelValues("impact").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if jsonOut {
			return format.JSON(cmd.OutOrStdout(), rows)
		}
		format.Impact(cmd.OutOrStdout(), rows)
		return nil
	},
}

func init() {
	impactCmd.Flags().IntVar(&impactDepth, "depth", -1, "Maximum BFS depth (unset = use the project's configured default; 0 = seed rows only)")
}
