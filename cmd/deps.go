package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/codegraph/internal/format"
	"github.com/agentic-research/codegraph/internal/query"
)

var depsCmd = &cobra.Command{
	Use:   "deps <file>",
	Short: "List every import edge originating in <file>, ordered by line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := openContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		start := time.Now()
		rows, err := query.Deps(ctx.Store, args[0])
		ctx.Metrics.QueryLatency.WithLabelValues("deps").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if jsonOut {
			return format.JSON(cmd.OutOrStdout(), rows)
		}
		format.Edges(cmd.OutOrStdout(), rows)
		return nil
	},
}
